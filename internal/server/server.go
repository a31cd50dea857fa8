// Package server exposes the expression engine over HTTP with a JSON
// envelope. It owns everything the engine itself must not know about:
// request parsing, CORS, status-code mapping, and logging.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/smartcalc/calc"
)

// Version reported by the banner endpoint.
const Version = "2.0"

// endpoints is the public API surface, reported by the banner and by the 404
// handler.
var endpoints = map[string]string{
	"/api/evaluate":      "POST - Evaluate expression",
	"/api/functions":     "GET - List available functions",
	"/api/health":        "GET - Health check",
	"/api/clear-history": "POST - Clear history (frontend only)",
}

// Server is the HTTP interface of the calculator service.
type Server struct {
	log    *slog.Logger
	router *httprouter.Router
	server *http.Server
}

// New creates a server. The logger must not be nil.
func New(log *slog.Logger) *Server {
	s := &Server{
		log:    log,
		router: httprouter.New(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/api/evaluate", s.handleEvaluate)
	s.router.GET("/api/functions", s.handleFunctions)
	s.router.GET("/api/health", s.handleHealth)
	s.router.POST("/api/clear-history", s.handleClearHistory)

	s.router.NotFound = http.HandlerFunc(s.handleNotFound)
	s.router.MethodNotAllowed = http.HandlerFunc(s.handleMethodNotAllowed)
	s.router.PanicHandler = s.handlePanic
	s.router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// Handler returns the root handler: the router wrapped with CORS headers for
// the /api/ routes.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
		}
		s.router.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server on addr and blocks until it stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.log.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Stop shuts the HTTP server down, waiting for in-flight requests.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Smart Calculator Backend Running!",
		"version":   Version,
		"endpoints": endpoints,
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Expression *string `json:"expression"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "No data provided")
		return
	}
	if req.Expression == nil {
		s.writeError(w, http.StatusBadRequest, "Expression missing")
		return
	}
	expr := strings.TrimSpace(*req.Expression)
	if expr == "" {
		s.writeError(w, http.StatusBadRequest, "Empty expression")
		return
	}

	result, err := calc.Evaluate(expr)
	if err != nil {
		if calc.KindOf(err) == calc.KindInternal {
			// Never detail internal faults to the caller.
			s.log.Error("evaluation fault", "expression", expr, "error", err)
			s.writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"expression": expr,
		"result":     resultValue(result),
		"success":    true,
	})
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"functions": calc.Functions(),
		"message":   "Available mathematical functions",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "Smart Calculator Backend",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// The engine is stateless; history lives in the frontend.
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "History cleared (frontend only)",
		"success": true,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	paths := make([]string, 0, len(endpoints))
	for p := range endpoints {
		paths = append(paths, p)
	}
	s.writeJSON(w, http.StatusNotFound, map[string]any{
		"error":               "Endpoint not found",
		"available_endpoints": paths,
	})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"error": "Method not allowed",
	})
}

func (s *Server) handlePanic(w http.ResponseWriter, r *http.Request, v any) {
	s.log.Error("panic serving request", "path", r.URL.Path, "panic", v)
	s.writeError(w, http.StatusInternalServerError, "Internal server error")
}

// resultValue renders a result for the JSON envelope. Integral floats become
// JSON integers and infinities become strings, since JSON has no token for
// them; this is presentation only and never changes the computed value.
func resultValue(x float64) any {
	if math.IsInf(x, 1) {
		return "Infinity"
	}
	if math.IsInf(x, -1) {
		return "-Infinity"
	}
	if calc.Integral(x) {
		return int64(x)
	}
	return x
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]any{
		"error":   msg,
		"success": false,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("writing response", "error", err)
	}
}
