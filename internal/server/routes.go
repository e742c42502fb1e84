package server

import (
	"fmt"
	"html/template"
	"io"
	"net/http"

	"medsafe/internal/geminiservice"
	"medsafe/internal/transcript"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// TemplateRenderer is a custom html/template renderer for Echo framework
type TemplateRenderer struct {
	templates *template.Template
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"https://*", "http://*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:       300,
	}))

	e.Use(RequestIDMiddleware)

	// Errors the router itself produces (unknown route, disallowed method)
	// are the only non-200 responses this service sends; shape them as a
	// structured JSON error body.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := http.StatusText(code)
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			message = fmt.Sprintf("%v", he.Message)
		}
		if code == http.StatusMethodNotAllowed {
			message = "Method not allowed. Use GET or POST."
		}
		if jsonErr := c.JSON(code, map[string]string{"error": message}); jsonErr != nil {
			log.Error().Err(jsonErr).Msg("Failed to write error response")
		}
	}

	// The transcript preview page is optional tooling: when the templates
	// directory is not present (tests, stripped deployments) the API
	// endpoints still work.
	if tmpl, err := template.ParseGlob("web/templates/*.html"); err == nil {
		e.Renderer = &TemplateRenderer{templates: tmpl}
		e.GET("/", s.renderPreviewHandler)
	} else {
		log.Warn().Err(err).Msg("Transcript preview templates not found, serving API only")
	}

	e.GET("/health", s.healthHandler)

	// Chat endpoint. All reachable handler paths answer 200; anything other
	// than GET/POST is rejected by the router with 405.
	e.GET("/api/chat", s.chat.Probe)
	e.POST("/api/chat", s.chat.Chat)

	e.POST("/transcript/preview", s.previewFragmentHandler)

	return e
}

// RequestIDMiddleware tags every request with an ID and a derived logger, so
// one chat round trip can be traced through the Gemini call logs.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		c.Set("logger", &logger)

		return next(c)
	}
}

/* ====================================================================
                   	Transcript preview handlers
==================================================================== */

// renderPreviewHandler serves the transcript preview page.
func (s *Server) renderPreviewHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "preview.html", map[string]interface{}{
		"Headings": geminiservice.AllHeadings(),
	})
}

// previewFragmentHandler classifies a pasted assistant message and returns
// the rendered HTML fragment, styled with the urgency tag derived from the
// accompanying user message. Cosmetic only: the safety enforcement lives in
// the prompt preamble, not here.
func (s *Server) previewFragmentHandler(c echo.Context) error {
	userText := c.FormValue("user_message")
	botText := c.FormValue("bot_message")

	renderer := transcript.NewRenderer(geminiservice.AllHeadings())
	fragment := renderer.RenderHTML(botText)

	html := fmt.Sprintf(`<div class="message bot %s">%s</div>`,
		transcript.BubbleEmotion(userText), fragment)
	return c.HTML(http.StatusOK, html)
}
