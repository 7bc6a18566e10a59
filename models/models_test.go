package models

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "models.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Run{}, &Finding{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "runs", Run{}.TableName())
	assert.Equal(t, "findings", Finding{}.TableName())
}

func TestFindingKey(t *testing.T) {
	f := Finding{
		Path:      "src/app.ts",
		Line:      3,
		Column:    7,
		Selector:  "variable",
		Name:      "bad_name",
		MessageID: "doesNotMatchFormat",
	}
	assert.Equal(t, "src/app.ts:3:7 variable `bad_name` doesNotMatchFormat", f.Key())
}

func TestRunWithFindings(t *testing.T) {
	db := setupTestDB(t)

	run := Run{
		ID:           "run_0123456789abcdef",
		StartedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Paths:        datatypes.JSON(`["src"]`),
		FilesScanned: 2,
		Diagnostics:  2,
		Findings: []Finding{
			{Path: "src/a.ts", Line: 1, Column: 7, Selector: "variable", Name: "bad_name", MessageID: "doesNotMatchFormat"},
			{Path: "src/b.ts", Line: 2, Column: 1, Selector: "class", Name: "lowerClass", MessageID: "doesNotMatchFormat",
				Data: datatypes.JSON(`{"name":"lowerClass","type":"Class"}`)},
		},
	}
	require.NoError(t, db.Create(&run).Error)

	var loaded Run
	require.NoError(t, db.Preload("Findings").First(&loaded, "id = ?", run.ID).Error)

	assert.Equal(t, 2, loaded.FilesScanned)
	assert.JSONEq(t, `["src"]`, string(loaded.Paths))
	require.Len(t, loaded.Findings, 2)
	assert.Equal(t, run.ID, loaded.Findings[0].RunID)
	assert.JSONEq(t, `{"name":"lowerClass","type":"Class"}`, string(loaded.Findings[1].Data))
}

func TestFindingRequiresPath(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&Run{ID: "run_a"}).Error)
	err := db.Exec("INSERT INTO findings (run_id) VALUES (?)", "run_a").Error
	assert.Error(t, err)
}
