// Package server exposes the expression evaluator over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/exprlang/mathexpr"
)

// Server serves POST /eval and GET /health.
type Server struct {
	router *httprouter.Router
	server *http.Server
	port   int
}

// New creates a server listening on the given port.
func New(port int) *Server {
	s := &Server{
		router: httprouter.New(),
		port:   port,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.POST("/eval", s.handleEval)
	s.router.GET("/health", s.handleHealth)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}
	log.Printf("listening on port %d", s.port)
	return s.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for embedding or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// EvalRequest is the body of POST /eval. Type selects the numeric backend;
// the default is decimal. Variables are given as literals the backend
// parses.
type EvalRequest struct {
	Expression string            `json:"expression"`
	Type       string            `json:"type,omitempty"`
	Variables  map[string]string `json:"variables,omitempty"`
}

// EvalResponse carries either the formatted result or the evaluation error.
type EvalResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req EvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, EvalResponse{Error: "invalid JSON"})
		return
	}
	switch req.Type {
	case "", "decimal":
		writeJSON(w, http.StatusOK, evalAs(mathexpr.NewDecimalContext(), req))
	case "float":
		writeJSON(w, http.StatusOK, evalAs(mathexpr.NewFloatContext(), req))
	case "int":
		writeJSON(w, http.StatusOK, evalAs(mathexpr.NewIntContext(), req))
	case "complex":
		writeJSON(w, http.StatusOK, evalAs(mathexpr.NewComplexContext(), req))
	case "bigfloat":
		writeJSON(w, http.StatusOK, evalAs(mathexpr.NewBigFloatContext(0), req))
	default:
		writeJSON(w, http.StatusBadRequest, EvalResponse{Error: fmt.Sprintf("unknown backend type %q", req.Type)})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// evalAs binds the request variables into the context and evaluates the
// expression over it.
func evalAs[N any](ctx *mathexpr.Context[N], req EvalRequest) EvalResponse {
	b := ctx.Backend()
	for name, lit := range req.Variables {
		v, err := b.Parse(lit)
		if err != nil {
			return EvalResponse{Error: fmt.Sprintf("variable %s: %v", name, err)}
		}
		ctx.SetVar(name, v)
	}
	v, err := mathexpr.New(ctx).Eval(req.Expression)
	if err != nil {
		return EvalResponse{Error: err.Error()}
	}
	return EvalResponse{Result: b.Format(v)}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}
