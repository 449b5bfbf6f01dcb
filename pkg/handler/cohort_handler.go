package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yumyai/ddrcohort/logger"
	"github.com/yumyai/ddrcohort/pkg/handler/request"
	"github.com/yumyai/ddrcohort/pkg/middle"
	"github.com/yumyai/ddrcohort/pkg/model"
	"github.com/yumyai/ddrcohort/pkg/render"
	"github.com/yumyai/ddrcohort/pkg/store"
)

// UndefinedResponse is the empty state: no partition has been saved.
type UndefinedResponse struct {
	Defined bool `json:"defined"`
}

type CohortResponse struct {
	Defined     bool                  `json:"defined"`
	ID          string                `json:"id"`
	CreatedAt   time.Time             `json:"created_at"`
	Predicates  []model.Predicate     `json:"predicates"`
	CancerTypes []string              `json:"cancer_types"`
	Universe    int                   `json:"universe"`
	Cohorts     []model.CohortSummary `json:"cohorts"`
	Samples     map[string][]string   `json:"samples,omitempty"`
	Warnings    []string              `json:"warnings,omitempty"`
}

type CohortSamplesResponse struct {
	Name    string   `json:"name"`
	Status  string   `json:"status,omitempty"`
	Size    int      `json:"size"`
	Samples []string `json:"samples"`
}

func (app *AppContext) cohortResponse(p *model.Partition) CohortResponse {
	return CohortResponse{
		Defined:     true,
		ID:          p.ID,
		CreatedAt:   p.CreatedAt,
		Predicates:  p.Predicates,
		CancerTypes: p.CancerTypes,
		Universe:    p.Size(),
		Cohorts:     model.Summarize(p, app.Data.Matrix),
	}
}

// CreateCohorts validates a definition, partitions the matrix and saves the
// result as the current partition.
func (app *AppContext) CreateCohorts(w http.ResponseWriter, r *http.Request) {
	log := middle.FromContext(r.Context(), logger.Logger())

	var req request.CohortRequest
	if err := decodeBody(w, r, &req); err != nil {
		badRequest(w, fmt.Sprintf("invalid cohort definition: %v", err))
		return
	}

	p, err := model.Run(app.Data.Matrix, req.Config())
	if err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = uuid.NewString()
	p.CreatedAt = app.now().UTC()

	if err := app.Cohorts.Save(r.Context(), p); err != nil {
		writeError(w, r, fmt.Errorf("save partition: %w", err))
		return
	}

	sizes := make(map[string]int, len(p.Cohorts))
	for _, c := range p.Cohorts {
		sizes[c.Name] = c.Samples.Len()
	}
	if app.Metrics != nil {
		app.Metrics.ObservePartition(sizes)
	}

	resp := app.cohortResponse(p)
	if p.Size() == 0 {
		resp.Warnings = append(resp.Warnings, "no sample passes the cancer type filter with complete data for every predicate; all cohorts are empty")
		log.Warn("Empty cohort universe", zap.String("partition", p.ID), zap.Strings("cancer_types", p.CancerTypes))
	}
	log.Info("Cohorts defined",
		zap.String("partition", p.ID),
		zap.Int("predicates", len(p.Predicates)),
		zap.Int("cohorts", len(p.Cohorts)),
		zap.Int("samples", p.Size()))

	writeJSON(w, http.StatusCreated, resp)
}

// loadPartition writes the empty state and returns nil when nothing has been
// saved yet.
func (app *AppContext) loadPartition(w http.ResponseWriter, r *http.Request) *model.Partition {
	p, err := app.Cohorts.Load(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, UndefinedResponse{Defined: false})
		return nil
	}
	if err != nil {
		writeError(w, r, fmt.Errorf("load partition: %w", err))
		return nil
	}
	return p
}

// GetCohorts returns the current partition with its sample lists.
func (app *AppContext) GetCohorts(w http.ResponseWriter, r *http.Request) {
	p := app.loadPartition(w, r)
	if p == nil {
		return
	}
	resp := app.cohortResponse(p)
	resp.Samples = p.Map()
	writeJSON(w, http.StatusOK, resp)
}

// GetCohort returns the sample list of one named cohort.
func (app *AppContext) GetCohort(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	p, err := app.Cohorts.Load(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		notFound(w, "no cohorts have been defined")
		return
	}
	if err != nil {
		writeError(w, r, fmt.Errorf("load partition: %w", err))
		return
	}
	c, ok := p.Lookup(name)
	if !ok {
		notFound(w, fmt.Sprintf("unknown cohort %q", name))
		return
	}
	writeJSON(w, http.StatusOK, CohortSamplesResponse{
		Name:    c.Name,
		Status:  string(statusBytes(c.Status)),
		Size:    c.Samples.Len(),
		Samples: c.Samples.Sorted(),
	})
}

func statusBytes(st []model.Status) []byte {
	b := make([]byte, len(st))
	for i, s := range st {
		b[i] = byte(s)
	}
	return b
}

// CohortPage renders the HTML summary of the current partition.
func (app *AppContext) CohortPage(w http.ResponseWriter, r *http.Request) {
	p, err := app.Cohorts.Load(r.Context())
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Error loading cohorts", http.StatusInternalServerError)
		logger.Error("Error loading cohorts", zap.Error(err))
		return
	}

	var summaries []model.CohortSummary
	if p != nil {
		summaries = model.Summarize(p, app.Data.Matrix)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderCohortPage(w, p, summaries); err != nil {
		logger.Error("Error rendering cohort page", zap.Error(err))
	}
}
