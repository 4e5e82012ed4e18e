package health

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeExport(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
}

func testSensor(t *testing.T, content string, now time.Time) *ExportSensor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "health.json")
	writeExport(t, path, content)
	s, err := NewExportSensor(path, time.UTC)
	if err != nil {
		t.Fatalf("new sensor: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	s.now = func() time.Time { return now }
	return s
}

func TestNoopSensor_ReportsZeros(t *testing.T) {
	var s NoopSensor
	if s.TodaySteps() != 0 || s.WeeklySleepMinutes() != 0 {
		t.Error("noop sensor must report zeros")
	}
}

func TestExportSensor_TodaySteps(t *testing.T) {
	// Wednesday 2025-03-12, noon UTC.
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	s := testSensor(t, `{
		"steps": [
			{"date": "2025-03-12", "count": 4200},
			{"date": "2025-03-12", "count": 1800},
			{"date": "2025-03-11", "count": 9000}
		]
	}`, now)

	if got := s.TodaySteps(); got != 6000 {
		t.Errorf("expected 6000 steps today, got %d", got)
	}
}

func TestExportSensor_WeeklySleepClipsToWeek(t *testing.T) {
	// Wednesday noon; the week started Monday 2025-03-10 00:00.
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	s := testSensor(t, `{
		"sleep": [
			{"start": "2025-03-11T23:00:00Z", "end": "2025-03-12T07:00:00Z"},
			{"start": "2025-03-09T23:30:00Z", "end": "2025-03-10T06:30:00Z"},
			{"start": "2025-03-08T23:00:00Z", "end": "2025-03-09T07:00:00Z"}
		]
	}`, now)

	// 8h in-week + 6.5h of the sample straddling Monday midnight; the
	// fully previous-week sample is excluded.
	if got := s.WeeklySleepMinutes(); got != 870 {
		t.Errorf("expected 870 sleep minutes, got %d", got)
	}
}

func TestExportSensor_MissingFileReportsZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	s, err := NewExportSensor(path, time.UTC)
	if err != nil {
		t.Fatalf("new sensor: %v", err)
	}
	defer s.Close()

	if s.TodaySteps() != 0 || s.WeeklySleepMinutes() != 0 {
		t.Error("sensor without data must report zeros")
	}
}

func TestExportSensor_LoadsFileCreatedAfterStartup(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "health.json")

	s, err := NewExportSensor(path, time.UTC)
	if err != nil {
		t.Fatalf("new sensor: %v", err)
	}
	defer s.Close()
	s.now = func() time.Time { return now }

	if got := s.TodaySteps(); got != 0 {
		t.Fatalf("expected 0 steps before the export exists, got %d", got)
	}

	// The sync tool drops the file after the sensor started.
	writeExport(t, path, `{"steps": [{"date": "2025-03-12", "count": 5000}]}`)

	deadline := time.Now().Add(2 * time.Second)
	for s.TodaySteps() != 5000 {
		if time.Now().After(deadline) {
			t.Fatalf("export created after startup was never loaded, got %d steps", s.TodaySteps())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestExportSensor_ReloadsAfterRenameReplace(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	s := testSensor(t, `{"steps": [{"date": "2025-03-12", "count": 1000}]}`, now)

	if got := s.TodaySteps(); got != 1000 {
		t.Fatalf("expected 1000 steps, got %d", got)
	}

	// Atomic replace: write a sibling temp file, then rename over the
	// export, the way sync tools publish updates.
	tmp := s.path + ".tmp"
	writeExport(t, tmp, `{"steps": [{"date": "2025-03-12", "count": 7000}]}`)
	if err := os.Rename(tmp, s.path); err != nil {
		t.Fatalf("rename: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.TodaySteps() != 7000 {
		if time.Now().After(deadline) {
			t.Fatalf("replaced export was never reloaded, got %d steps", s.TodaySteps())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestExportSensor_BadJSONKeepsLastSnapshot(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	s := testSensor(t, `{"steps": [{"date": "2025-03-12", "count": 5000}]}`, now)

	if got := s.TodaySteps(); got != 5000 {
		t.Fatalf("expected 5000 steps, got %d", got)
	}

	writeExport(t, s.path, `{not json`)
	s.reload()
	if got := s.TodaySteps(); got != 5000 {
		t.Errorf("bad reload should keep last good snapshot, got %d", got)
	}
}
