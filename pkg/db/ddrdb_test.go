package db

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/yumyai/ddrcohort/pkg/model"
	"github.com/yumyai/ddrcohort/pkg/survival"
)

func newTestDB(t *testing.T, stmts ...string) *sql.DB {
	t.Helper()
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "ddr.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	return db
}

var fixture = []string{
	`CREATE TABLE gene_loss ("TCGA Sample" TEXT, "Cancer type" TEXT, MLH1 INTEGER, MSH2 TEXT, TP53 REAL)`,
	`INSERT INTO gene_loss VALUES ('S1', 'COAD', 1, 'false', 0)`,
	`INSERT INTO gene_loss VALUES ('S2', 'COAD', 0, 'TRUE', 1.0)`,
	`INSERT INTO gene_loss VALUES ('S3', 'UCEC', 0, NULL, 0)`,
	`INSERT INTO gene_loss VALUES ('S4', 'UCEC', NULL, '', 0)`,

	`CREATE TABLE survival ("TCGA Sample" TEXT, "OS" INTEGER, "OS.time" REAL, "DSS.cr" INTEGER, "DSS.time.cr" REAL, "Stage" TEXT)`,
	`INSERT INTO survival VALUES ('S1', 1, 120, 2, 120, 'I')`,
	`INSERT INTO survival VALUES ('S2', 0, 300, 0, 300, 'II')`,
	`INSERT INTO survival VALUES ('S3', NULL, 50, 1, 50, 'III')`,

	`CREATE TABLE footprint ("TCGA Sample" TEXT, "Cancer type" TEXT, "HRD_score" REAL, "TMB" REAL)`,
	`INSERT INTO footprint VALUES ('S1', 'COAD', 10, 2.5)`,
	`INSERT INTO footprint VALUES ('S2', 'COAD', NULL, 3.5)`,
	`CREATE TABLE footprint_descriptions ("DDR Score" TEXT, "Brief Description" TEXT)`,
	`INSERT INTO footprint_descriptions VALUES ('HRD_score', 'Homologous recombination deficiency')`,
	`INSERT INTO footprint_descriptions VALUES ('Unused', 'not a column')`,
}

func TestLoadGeneLossMatrix(t *testing.T) {
	db := newTestDB(t, fixture...)
	m, err := LoadGeneLossMatrix(context.Background(), db, "gene_loss")
	if err != nil {
		t.Fatalf("LoadGeneLossMatrix: %v", err)
	}
	if got := m.Genes(); len(got) != 3 || got[0] != "MLH1" || got[2] != "TP53" {
		t.Fatalf("genes = %v", got)
	}
	checks := []struct {
		id, gene string
		want     model.Flag
	}{
		{"S1", "MLH1", model.FlagLost},
		{"S1", "MSH2", model.FlagRetained},
		{"S2", "MSH2", model.FlagLost},
		{"S2", "TP53", model.FlagLost},
		{"S3", "MSH2", model.FlagMissing},
		{"S4", "MLH1", model.FlagMissing},
		{"S4", "MSH2", model.FlagMissing},
	}
	for _, c := range checks {
		if got := m.Flag(c.id, c.gene); got != c.want {
			t.Errorf("Flag(%s, %s) = %v, want %v", c.id, c.gene, got, c.want)
		}
	}
	if got := m.CancerTypes(); len(got) != 2 || got[0] != "COAD" {
		t.Fatalf("cancer types = %v", got)
	}
}

func TestLoadGeneLossMatrix_BadCell(t *testing.T) {
	db := newTestDB(t,
		`CREATE TABLE gene_loss ("TCGA Sample" TEXT, "Cancer type" TEXT, MLH1 TEXT)`,
		`INSERT INTO gene_loss VALUES ('S1', 'COAD', 'maybe')`,
	)
	if _, err := LoadGeneLossMatrix(context.Background(), db, "gene_loss"); err == nil {
		t.Fatal("expected an error for an unreadable flag")
	}
}

func TestLoadGeneLossMatrix_MissingColumn(t *testing.T) {
	db := newTestDB(t, `CREATE TABLE gene_loss (sample TEXT, MLH1 INTEGER)`)
	_, err := LoadGeneLossMatrix(context.Background(), db, "gene_loss")
	if !errors.Is(err, ErrColumnMissing) {
		t.Fatalf("expected ErrColumnMissing, got %v", err)
	}
}

func TestLoadSurvivalTable(t *testing.T) {
	db := newTestDB(t, fixture...)
	tbl, err := LoadSurvivalTable(context.Background(), db, "survival")
	if err != nil {
		t.Fatalf("LoadSurvivalTable: %v", err)
	}
	eps := tbl.Endpoints()
	if len(eps) != 2 || eps[0] != survival.EndpointOS || eps[1] != survival.EndpointDSSCR {
		t.Fatalf("endpoints = %v", eps)
	}
	obs, err := tbl.Observations(model.NewSampleSet("S1", "S2", "S3"), survival.EndpointOS)
	if err != nil {
		t.Fatal(err)
	}
	// S3 has no OS event
	if len(obs) != 2 || obs[0].Sample != "S1" || obs[0].Event != 1 || obs[1].Time != 300 {
		t.Fatalf("observations = %+v", obs)
	}
	cr, _ := tbl.Observations(model.NewSampleSet("S1", "S3"), survival.EndpointDSSCR)
	if len(cr) != 2 || cr[0].Event != 2 {
		t.Fatalf("competing-risk observations = %+v", cr)
	}
}

func TestLoadFootprintTable(t *testing.T) {
	db := newTestDB(t, fixture...)
	ft, err := LoadFootprintTable(context.Background(), db, "footprint", "footprint_descriptions")
	if err != nil {
		t.Fatalf("LoadFootprintTable: %v", err)
	}
	if !ft.HasFeature("HRD score") || ft.HasFeature("HRD_score") {
		t.Fatalf("features = %v", ft.Features())
	}
	if got := ft.Description("HRD score"); got != "Homologous recombination deficiency" {
		t.Fatalf("description = %q", got)
	}

	p := &model.Partition{Cohorts: []model.Cohort{{Name: "all", Samples: model.NewSampleSet("S1", "S2")}}}
	means, err := model.FootprintMeans(ft, p, []string{"all"}, []string{"HRD score", "TMB"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if means[0].Cohorts[0].N != 1 || means[0].Cohorts[0].Mean != 10 {
		t.Fatalf("HRD mean = %+v", means[0].Cohorts[0])
	}
	if math.Abs(means[1].Cohorts[0].Mean-3) > 1e-9 {
		t.Fatalf("TMB mean = %+v", means[1].Cohorts[0])
	}
}

func TestLoadDataset_OptionalTables(t *testing.T) {
	db := newTestDB(t, fixture[:5]...)
	ds, err := LoadDataset(context.Background(), db, DefaultTableNames())
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if ds.Matrix == nil || ds.Survival != nil || ds.Footprints != nil {
		t.Fatalf("unexpected dataset %+v", ds)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "x"); err == nil {
		t.Fatal("expected error")
	}
}
