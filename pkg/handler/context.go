package handler

// DI for all handlers and models alike.

import (
	"time"

	"github.com/yumyai/ddrcohort/pkg/db"
	"github.com/yumyai/ddrcohort/pkg/middle"
	"github.com/yumyai/ddrcohort/pkg/store"
)

type AppContext struct {
	Data    *db.Dataset
	Cohorts *store.Session
	Metrics *middle.Metrics  // optional
	Now     func() time.Time // defaults to time.Now
}

func (app *AppContext) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}
