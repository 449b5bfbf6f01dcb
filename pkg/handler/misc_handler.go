// Handler for miscellaneous endpoints such as health check

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yumyai/ddrcohort/logger"
	"github.com/yumyai/ddrcohort/pkg/middle"
	"github.com/yumyai/ddrcohort/pkg/model"
)

type HealthResponse struct {
	Health    string    `json:"health"`
	Timestamp time.Time `json:"timestamp"`
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {

	response := HealthResponse{
		Health:    "ok",
		Timestamp: time.Now(),
	}

	writeJSON(w, http.StatusOK, response)
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", zap.Error(err))
	}
}

// writeError maps configuration errors to 400 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *model.ConfigError
	if errors.As(err, &ce) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: ce.Field, Value: ce.Value})
		return
	}
	middle.FromContext(r.Context(), logger.Logger()).Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: msg})
}

// decodeBody reads a JSON body, rejecting unknown fields and trailing data.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

type GenesResponse struct {
	Genes []string `json:"genes"`
}

// Genes lists the genes predicates may refer to.
func (app *AppContext) Genes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GenesResponse{Genes: app.Data.Matrix.Genes()})
}

type CancerTypesResponse struct {
	CancerTypes []model.CancerTypeCount `json:"cancer_types"`
}

// CancerTypes lists the cancer types in the gene loss matrix with their
// sample counts, in first-seen order.
func (app *AppContext) CancerTypes(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int)
	for _, s := range app.Data.Matrix.Samples() {
		counts[s.CancerType]++
	}
	var out []model.CancerTypeCount
	for _, ct := range app.Data.Matrix.CancerTypes() {
		out = append(out, model.CancerTypeCount{CancerType: ct, Name: model.CancerTypeName(ct), Count: counts[ct]})
	}
	writeJSON(w, http.StatusOK, CancerTypesResponse{CancerTypes: out})
}
