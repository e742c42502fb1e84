package chat

import (
	"errors"
	"fmt"
	"net/http"

	"medsafe/internal/geminiservice"
	"medsafe/internal/utility"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// In-band degraded replies. The product never shows a broken UI: every
// failure mode downgrades to an assistant-authored chat message, so the
// client has no non-200 path to special-case.
const (
	configErrorReply = "I'm not able to answer right now because the server is missing its AI configuration (no API key is set). Please ask whoever runs this service to configure it, then try again."

	throttleReply = "You're sending messages a little faster than I can keep up with. Please wait a moment and try again."
)

func connectionTroubleReply(detail string) string {
	return fmt.Sprintf("I'm having trouble connecting right now. Please try sending your message again. (technical detail: %s)", detail)
}

// Handler serves the chat endpoint. It holds no per-session state: the
// client re-transmits the whole conversation on every call.
type Handler struct {
	gemini  *geminiservice.Client
	limiter *utility.RateLimiter
}

// NewHandler wires the chat endpoint. limiter may be nil to disable
// throttling.
func NewHandler(gemini *geminiservice.Client, limiter *utility.RateLimiter) *Handler {
	return &Handler{gemini: gemini, limiter: limiter}
}

// Probe handles GET /api/chat: a static liveness and config-presence check.
func (h *Handler) Probe(c echo.Context) error {
	return c.JSON(http.StatusOK, ProbeResponse{
		OK:        true,
		Message:   "Medsafe chat endpoint is up.",
		HasAPIKey: h.gemini.HasAPIKey(),
	})
}

// Chat handles POST /api/chat. One synchronous round trip: compose the
// prompt, call Gemini once, reduce whatever happened to a single in-band
// assistant message.
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		// Tolerated: whatever decoded before the error is kept, the rest
		// renders as "not provided" placeholders downstream.
		log.Warn().Err(err).Msg("Chat request did not fully decode, continuing with partial data")
	}

	if h.limiter != nil && !h.limiter.Allow(utility.GetRealIP(c)) {
		log.Warn().Str("ip", utility.GetRealIP(c)).Msg("Chat request throttled")
		return c.JSON(http.StatusOK, ChatResponse{Response: throttleReply})
	}

	if !h.gemini.HasAPIKey() {
		log.Error().Msg("GEMINI_API_KEY is not set; answering with in-band configuration error")
		return c.JSON(http.StatusOK, ChatResponse{Response: configErrorReply})
	}

	prompt := geminiservice.ComposePrompt(geminiservice.PromptInput{
		Path:       req.Path(),
		Patient:    req.PatientInfo,
		History:    req.ChatHistory,
		Message:    req.Message,
		Attachment: req.File,
	})

	text, err := h.gemini.Generate(ctx, prompt, req.File)
	if err != nil {
		detail := err.Error()
		var up *geminiservice.UpstreamError
		if errors.As(err, &up) {
			detail = fmt.Sprintf("upstream status %d %s", up.StatusCode, http.StatusText(up.StatusCode))
			if up.Body != "" {
				detail += ": " + up.Body
			}
		}
		log.Error().Err(err).Str("path", string(req.Path())).Msg("Gemini call failed")
		return c.JSON(http.StatusOK, ChatResponse{Response: connectionTroubleReply(detail)})
	}

	return c.JSON(http.StatusOK, ChatResponse{Response: text})
}
