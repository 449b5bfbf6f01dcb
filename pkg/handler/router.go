package handler

import (
	"mime"
	"net/http"
)

func NewRouter(app *AppContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Pages
	mux.HandleFunc("GET /cohorts", app.CohortPage)
	mux.HandleFunc("GET /survival/plot.png", app.SurvivalPlot)

	// API routes
	mux.HandleFunc("GET /api/v1/health", HealthCheck)
	mux.HandleFunc("GET /api/v1/genes", app.Genes)
	mux.HandleFunc("GET /api/v1/cancer-types", app.CancerTypes)
	mux.HandleFunc("POST /api/v1/cohorts", app.CreateCohorts)
	mux.HandleFunc("GET /api/v1/cohorts", app.GetCohorts)
	mux.HandleFunc("GET /api/v1/cohorts/{name}", app.GetCohort)
	mux.HandleFunc("POST /api/v1/survival", app.SurvivalAPI)
	mux.HandleFunc("GET /api/v1/survival/endpoints", app.SurvivalEndpoints)
	mux.HandleFunc("POST /api/v1/footprints", app.Footprints)
	mux.HandleFunc("GET /api/v1/footprints/features", app.FootprintFeatures)

	if app.Metrics != nil {
		mux.Handle("GET /metrics", app.Metrics.Handler())
	}

	setupStaticFiles(mux)
	return mux
}

// Manually add static for all route that use this
func setupStaticFiles(mux *http.ServeMux) {
	_ = mime.AddExtensionType(".css", "text/css")
	fs := http.FileServer(http.Dir("./static/"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
}
