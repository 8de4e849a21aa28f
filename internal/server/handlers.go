package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalError", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

// fail logs the error, counts it and writes the mapped response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classify(err)
	if s.metrics != nil {
		s.metrics.Failure(kind)
	}
	fields := []zap.Field{
		zap.String("kind", kind),
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestID(r)),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", fields...)
	} else {
		s.log.Warn("request failed", fields...)
	}
	writeError(w, status, kind, err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pipe.Pairs())
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	selector := mux.Vars(r)["selector"]
	switch format := r.URL.Query().Get("format"); format {
	case "", "png":
		s.servePlot(w, r, selector)
	case "json":
		out, err := s.pipe.Fit(selector)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if s.metrics != nil {
			s.metrics.RowsDropped(out.Pair.Selector, out.Dropped)
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, out)
	default:
		writeError(w, http.StatusBadRequest, "BadRequest", fmt.Sprintf("unsupported format %q (use png or json)", format))
	}
}

func (s *Server) legacyPlot(selector string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.servePlot(w, r, selector)
	}
}

func (s *Server) servePlot(w http.ResponseWriter, r *http.Request, selector string) {
	img, out, err := s.pipe.Plot(selector)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RowsDropped(out.Pair.Selector, out.Dropped)
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Fit-R", strconv.FormatFloat(out.Fit.R, 'f', -1, 64))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "html" {
		writeError(w, http.StatusBadRequest, "BadRequest", fmt.Sprintf("unsupported format %q (use json or html)", format))
		return
	}
	summary, err := s.pipe.Stats()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	if format == "json" {
		writeJSON(w, http.StatusOK, summary)
		return
	}
	var buf bytes.Buffer
	if err := statsTemplate.Execute(&buf, summary); err != nil {
		s.fail(w, r, fmt.Errorf("render stats page: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
