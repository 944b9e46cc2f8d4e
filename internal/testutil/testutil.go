package testutil

import (
	"database/sql"
	"testing"

	"martinotron/internal/components/telemetry"
	"martinotron/internal/db"
)

// SetupDB opens an in-memory sqlite database with the schema applied, it is
// closed when the test ends.
func SetupDB(t testing.TB) *sql.DB {
	sqlite, err := db.Config{File: ":memory:"}.Open()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		sqlite.Close()
	})
	return sqlite
}

// SetupTelemetry returns a recorder for reports made during the test, when
// testing.Verbose() is set reports are also logged.
func SetupTelemetry(t testing.TB) *telemetry.Recorder {
	if testing.Verbose() {
		telemetry.InitSlog(true)
	}
	return telemetry.NewRecorder()
}
