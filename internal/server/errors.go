package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KaramelBytes/cfbstats/internal/analysis"
	"github.com/KaramelBytes/cfbstats/internal/dataset"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// classify maps a pipeline error to its HTTP status and kind.
func classify(err error) (int, string) {
	var (
		unavailable *dataset.DataUnavailableError
		schema      *dataset.SchemaError
		tooFew      *analysis.InsufficientDataError
		flat        *analysis.InsufficientVarianceError
		unknown     *analysis.UnknownPairError
	)
	switch {
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable, "DataUnavailableError"
	case errors.As(err, &schema):
		return http.StatusUnprocessableEntity, "SchemaError"
	case errors.As(err, &tooFew):
		return http.StatusUnprocessableEntity, "InsufficientDataError"
	case errors.As(err, &flat):
		return http.StatusUnprocessableEntity, "InsufficientVarianceError"
	case errors.As(err, &unknown):
		return http.StatusNotFound, "UnknownPairError"
	default:
		return http.StatusInternalServerError, "InternalError"
	}
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: kind, Message: msg})
}
