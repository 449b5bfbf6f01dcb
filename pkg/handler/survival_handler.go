package handler

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/yumyai/ddrcohort/logger"
	"github.com/yumyai/ddrcohort/pkg/handler/request"
	"github.com/yumyai/ddrcohort/pkg/middle"
	"github.com/yumyai/ddrcohort/pkg/model"
	"github.com/yumyai/ddrcohort/pkg/render"
	"github.com/yumyai/ddrcohort/pkg/survival"
)

const defaultEndpoint = survival.EndpointOS

type EndpointInfo struct {
	Endpoint      survival.Endpoint `json:"endpoint"`
	Label         string            `json:"label"`
	TimeColumn    string            `json:"time_column"`
	CompetingRisk bool              `json:"competing_risk"`
}

type EndpointsResponse struct {
	Set       string         `json:"set"`
	Endpoints []EndpointInfo `json:"endpoints"`
}

func isAnalysisInputError(err error) bool {
	return errors.Is(err, survival.ErrNoGroups) ||
		errors.Is(err, survival.ErrUnknownEndpoint) ||
		errors.Is(err, model.ErrUnknownCohort)
}

// analyze runs the survival adapter and writes any error response itself.
func (app *AppContext) analyze(w http.ResponseWriter, r *http.Request, groups []string, endpoint string) *survival.Result {
	if app.Data.Survival == nil {
		notFound(w, "no survival table is loaded")
		return nil
	}
	p := app.loadPartition(w, r)
	if p == nil {
		return nil
	}
	e := survival.Endpoint(endpoint)
	if e == "" {
		e = defaultEndpoint
	}

	res, err := survival.Analyze(app.Data.Survival, p, groups, e)
	if isAnalysisInputError(err) {
		badRequest(w, err.Error())
		return nil
	}
	if err != nil {
		writeError(w, r, err)
		return nil
	}
	middle.FromContext(r.Context(), logger.Logger()).Debug("Survival analysis",
		zap.String("endpoint", string(e)),
		zap.Strings("groups", groups),
		zap.Bool("competing_risk", res.CompetingRisk))
	return res
}

// SurvivalAPI fits the chosen endpoint for the chosen cohorts.
func (app *AppContext) SurvivalAPI(w http.ResponseWriter, r *http.Request) {
	var req request.SurvivalRequest
	if err := decodeBody(w, r, &req); err != nil {
		badRequest(w, fmt.Sprintf("invalid survival request: %v", err))
		return
	}
	res := app.analyze(w, r, req.Groups, req.Endpoint)
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SurvivalPlot renders the curves as PNG. Groups are repeated group query
// parameters.
func (app *AppContext) SurvivalPlot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := app.analyze(w, r, q["group"], q.Get("endpoint"))
	if res == nil {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.RenderSurvivalPlot(w, res); err != nil {
		logger.Error("Error rendering survival plot", zap.Error(err))
	}
}

// SurvivalEndpoints lists the endpoints of a set that the survival table
// actually carries.
func (app *AppContext) SurvivalEndpoints(w http.ResponseWriter, r *http.Request) {
	if app.Data.Survival == nil {
		notFound(w, "no survival table is loaded")
		return
	}
	set := request.ParseEndpointSet(r.URL.Query().Get("set"))
	resp := EndpointsResponse{Set: set.String(), Endpoints: []EndpointInfo{}}
	for _, e := range set.Endpoints() {
		if !app.Data.Survival.HasEndpoint(e) {
			continue
		}
		resp.Endpoints = append(resp.Endpoints, EndpointInfo{
			Endpoint:      e,
			Label:         e.Label(),
			TimeColumn:    e.TimeColumn(),
			CompetingRisk: e.CompetingRisk(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
