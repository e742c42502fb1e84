/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and wires the chat
handler with its dependencies.
*/
package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"medsafe/internal/chat"
	"medsafe/internal/geminiservice"
	"medsafe/internal/utility"

	_ "github.com/joho/godotenv/autoload"
)

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// port specifies the TCP port the server will listen on.
	port int

	// chat serves the /api/chat endpoint.
	chat *chat.Handler

	// started is used by the health endpoint to report uptime.
	started time.Time
}

// NewServer initializes a new Server instance and returns a configured
// *http.Server. Configuration comes from environment variables, resolved
// once here and injected into the handlers; there is no hidden
// process-wide state beyond this wiring.
func NewServer() *http.Server {
	// Attempt to parse port from environment; fallback to 8080 if not set or invalid.
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port == 0 {
		port = 8080
	}

	gemini := geminiservice.NewClient(geminiservice.ConfigFromEnv())

	// Optional per-IP throttle. 0 (or unset) disables it, keeping the
	// endpoint's observable behaviour untouched by default.
	var limiter *utility.RateLimiter
	if perMin, err := strconv.Atoi(os.Getenv("RATE_LIMIT_PER_MINUTE")); err == nil && perMin > 0 {
		limiter = utility.NewRateLimiter(perMin, time.Minute)
	}

	newApp := &Server{
		port:    port,
		chat:    chat.NewHandler(gemini, limiter),
		started: time.Now(),
	}

	// Configure the standard library http.Server with the application's router and timeouts.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newApp.port),
		Handler:      newApp.RegisterRoutes(), // Injected from routes.go
		IdleTimeout:  time.Minute,             // Time to wait for the next request on keep-alive connections.
		ReadTimeout:  10 * time.Second,        // Maximum duration for reading the entire request.
		WriteTimeout: 30 * time.Second,        // Maximum duration before timing out writes of the response.
	}

	return server
}
