package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yumyai/ddrcohort/pkg/handler/request"
	"github.com/yumyai/ddrcohort/pkg/model"
)

type FootprintResponse struct {
	Means []model.FootprintMean `json:"means"`
}

type FeatureInfo struct {
	Feature     string `json:"feature"`
	Description string `json:"description,omitempty"`
}

type FeaturesResponse struct {
	Features []FeatureInfo `json:"features"`
}

// Footprints averages footprint features per cohort. No groups means every
// cohort, no features means every feature.
func (app *AppContext) Footprints(w http.ResponseWriter, r *http.Request) {
	ft := app.Data.Footprints
	if ft == nil {
		notFound(w, "no footprint table is loaded")
		return
	}
	var req request.FootprintRequest
	if err := decodeBody(w, r, &req); err != nil {
		badRequest(w, fmt.Sprintf("invalid footprint request: %v", err))
		return
	}
	p := app.loadPartition(w, r)
	if p == nil {
		return
	}

	groups := req.Groups
	if len(groups) == 0 {
		groups = p.Names()
	}
	features := req.Features
	if len(features) == 0 {
		features = ft.Features()
	}

	means, err := model.FootprintMeans(ft, p, groups, features, req.SplitByCancerType)
	if errors.Is(err, model.ErrUnknownCohort) || errors.Is(err, model.ErrUnknownFeature) {
		badRequest(w, err.Error())
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FootprintResponse{Means: means})
}

func (app *AppContext) FootprintFeatures(w http.ResponseWriter, r *http.Request) {
	ft := app.Data.Footprints
	if ft == nil {
		notFound(w, "no footprint table is loaded")
		return
	}
	resp := FeaturesResponse{Features: []FeatureInfo{}}
	for _, f := range ft.Features() {
		resp.Features = append(resp.Features, FeatureInfo{Feature: f, Description: ft.Description(f)})
	}
	writeJSON(w, http.StatusOK, resp)
}
