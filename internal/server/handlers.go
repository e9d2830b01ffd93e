package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/planarity/pkg/buildinfo"
	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
	pio "github.com/matzehuels/planarity/pkg/io"
	"github.com/matzehuels/planarity/pkg/pipeline"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  perrors.Code `json:"code"`
	Error string       `json:"error"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Store  bool   `json:"store"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Store: s.store() != nil})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.request(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	q := r.URL.Query()
	opts.Algorithm = q.Get("algorithm")
	if opts.Algorithm == "" {
		opts.Algorithm = s.opts.Algorithm
	}
	if st := q.Get("st"); st != "" {
		if opts.ST, err = parseST(st); err != nil {
			s.writeError(w, err)
			return
		}
	}
	res, hit, err := s.opts.Runner.Check(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeResult(w, hit, res)
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.request(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, hit, err := s.opts.Runner.Embed(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeResult(w, hit, res)
}

func (s *Server) handlePlanarize(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.request(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if vs := r.URL.Query().Get("virtual_start"); vs != "" {
		opts.VirtualStart, err = strconv.ParseInt(vs, 10, 64)
		if err != nil || opts.VirtualStart < 0 {
			s.writeError(w, perrors.New(perrors.ErrCodeInvalidInput, "invalid virtual_start %q", vs))
			return
		}
	}
	res, hit, err := s.opts.Runner.Planarize(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeResult(w, hit, res)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	st := s.store()
	if st == nil {
		s.writeError(w, perrors.New(perrors.ErrCodeUnsupported, "no report store configured"))
		return
	}
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			s.writeError(w, perrors.New(perrors.ErrCodeInvalidInput, "invalid limit %q", l))
			return
		}
		limit = min(n, 1000)
	}
	reports, err := st.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	st := s.store()
	if st == nil {
		s.writeError(w, perrors.New(perrors.ErrCodeUnsupported, "no report store configured"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := perrors.ValidateReportID(id); err != nil {
		s.writeError(w, err)
		return
	}
	rep, err := st.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// request decodes the graph body and the options every operation shares.
func (s *Server) request(w http.ResponseWriter, r *http.Request) (*graph.Graph, pipeline.Options, error) {
	opts := pipeline.Options{Limits: s.opts.Limits}
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	g, err := pio.ReadJSON(body)
	if err != nil {
		return nil, opts, err
	}
	opts.Refresh, _ = strconv.ParseBool(r.URL.Query().Get("refresh"))
	return g, opts, nil
}

func parseST(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "st must be two node labels, got %q", s)
	}
	out := make([]int64, 2)
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "invalid node label %q", p)
		}
		out[i] = n
	}
	return out, nil
}

func writeResult(w http.ResponseWriter, hit bool, v any) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.opts.Logger.Error("request failed", "err", err)
	}
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	msg := strings.TrimPrefix(err.Error(), string(code)+": ")
	writeJSON(w, status, ErrorResponse{Code: code, Error: msg})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return perrors.HTTPStatus(err)
}
