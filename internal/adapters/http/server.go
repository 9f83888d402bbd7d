package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodySize bounds POST /execute bodies.
const maxBodySize = 1 << 20

// Executor runs traced executions. *tracehook.Session implements it.
type Executor interface {
	Execute(ctx context.Context, code, input []byte) (*domain.Result, error)
	Deploy(ctx context.Context, initCode []byte) (*domain.Result, error)
}

// ExecutorFactory builds an Executor printing its trace lines to out.
// The server calls it once per request.
type ExecutorFactory func(out io.Writer) (Executor, error)

// PluginLister lists registered plugin names. *registry.Registry implements it.
type PluginLister interface {
	Names() []string
}

// Server serves executions and plugin metadata over HTTP.
type Server struct {
	NewExecutor ExecutorFactory
	Plugins     PluginLister
	Gatherer    prometheus.Gatherer
	Logger      *slog.Logger
}

// ExecuteRequest is the body of POST /execute. Code and Input are hex strings.
type ExecuteRequest struct {
	Code   string `json:"code"`
	Input  string `json:"input,omitempty"`
	Deploy bool   `json:"deploy,omitempty"`
}

// ExecuteResponse reports a traced execution.
type ExecuteResponse struct {
	Steps      uint64          `json:"steps"`
	Calls      uint64          `json:"calls"`
	GasUsed    uint64          `json:"gas_used"`
	ReturnData hexutil.Bytes   `json:"return_data"`
	Contract   *common.Address `json:"contract,omitempty"`
	Error      string          `json:"error,omitempty"`
	Trace      []string        `json:"trace"`
}

// NewHandler creates the HTTP handler for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.Gatherer == nil {
		s.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/plugins", s.ListPlugins)
	r.Post("/execute", s.Execute)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListPlugins handles GET /plugins.
func (s *Server) ListPlugins(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if s.Plugins != nil {
		names = append(names, s.Plugins.Names()...)
	}
	writeJSON(w, s.Logger, http.StatusOK, map[string][]string{"plugins": names})
}

// Execute handles the POST /execute request.
func (s *Server) Execute(w http.ResponseWriter, r *http.Request) {
	var body ExecuteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Execute: Invalid request body", "error", err)
		return
	}

	code, err := domain.DecodeHex(body.Code)
	if err == nil && len(code) == 0 {
		err = fmt.Errorf("%w: empty code", domain.ErrInvalidCode)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid code: %v", err), http.StatusBadRequest)
		return
	}
	input, err := domain.DecodeHex(body.Input)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		return
	}

	if s.NewExecutor == nil {
		http.Error(w, "Session error: no executor configured", http.StatusInternalServerError)
		s.Logger.Error("Execute: no executor configured")
		return
	}
	trace := &bytes.Buffer{}
	exec, err := s.NewExecutor(trace)
	if err != nil {
		http.Error(w, fmt.Sprintf("Session error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Execute: session setup failed", "error", err)
		return
	}

	var res *domain.Result
	if body.Deploy {
		res, err = exec.Deploy(r.Context(), code)
	} else {
		res, err = exec.Execute(r.Context(), code, input)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidCode) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("Execute error: %v", err), status)
		s.Logger.Error("Execute failed", "error", err)
		return
	}

	resp := ExecuteResponse{
		Steps:      res.Steps,
		Calls:      res.Calls,
		GasUsed:    res.GasUsed,
		ReturnData: res.ReturnData,
		Contract:   res.Contract,
		Trace:      splitLines(trace.String()),
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	writeJSON(w, s.Logger, http.StatusOK, resp)
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
