package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/valentine/pkg/embedded"
)

const testAsset = `
name: test
artboard:
  width: 480
  height: 400
viewModel:
  name: TestVM
  properties:
    - name: closeness
      type: number
    - name: eyeTargetX
      type: number
    - name: eyeTargetY
      type: number
character:
  faceRadius: 120
  eyeSpacing: 84
  eyeRadius: 26
  pupilRadius: 11
  gazeRange: 200
  maxPupilOffset: 12
  armRestOffset: 190
  armHugOffset: 110
  hugScale: 0.15
`

// writeDataDir 在临时目录下写入 data/valentine.yaml 和 data/animation.yaml
func writeDataDir(t *testing.T, appConfig string) {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "data")
	if err := os.MkdirAll(data, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"valentine.yaml": appConfig,
		"animation.yaml": testAsset,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(data, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	embedded.Init(os.DirFS(dir))
}

func testOptions() options {
	return options{
		ConfigPath: "data/valentine.yaml",
		Frames:     120,
		HoldFrom:   0,
		HoldTo:     59,
		HoverFrom:  -1,
		HoverTo:    -1,
		Seed:       1,
	}
}

func TestRunReportsInputs(t *testing.T) {
	writeDataDir(t, "renderer:\n  asset: data/animation.yaml\n")

	report, err := run(testOptions())
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if report.Closeness == nil || report.EyeTargetX == nil || report.EyeTargetY == nil {
		t.Fatalf("inputs missing from report: %+v", report)
	}
	if len(report.Unbound) != 0 {
		t.Errorf("Unbound = %v, want none", report.Unbound)
	}
	if report.PeakCloseness <= 0 {
		t.Errorf("PeakCloseness = %v, want > 0 after holding", report.PeakCloseness)
	}
	if report.HeartsSpawned == 0 {
		t.Error("HeartsSpawned = 0, want hearts while held")
	}
	if report.LeakedSprites != 0 {
		t.Errorf("LeakedSprites = %d, want 0", report.LeakedSprites)
	}
}

func TestRunWithMissingInput(t *testing.T) {
	writeDataDir(t, "renderer:\n  asset: data/animation.yaml\n  slots:\n    closeness: hug\n")

	report, err := run(testOptions())
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if report.Closeness != nil {
		t.Errorf("Closeness = %v, want omitted for an undeclared input", *report.Closeness)
	}
	if len(report.Unbound) != 1 || report.Unbound[0] != "hug" {
		t.Errorf("Unbound = %v, want [hug]", report.Unbound)
	}
	if report.EyeTargetX == nil || report.EyeTargetY == nil {
		t.Errorf("eye inputs missing from report: %+v", report)
	}
	if report.HeartsSpawned == 0 {
		t.Error("HeartsSpawned = 0, want the loop to keep running without the closeness input")
	}
}

func TestParseFrameRange(t *testing.T) {
	tests := []struct {
		in       string
		from, to int
		wantErr  bool
	}{
		{"0-99", 0, 99, false},
		{" 10 - 20 ", 10, 20, false},
		{"", -1, -2, false},
		{"5", 0, 0, true},
		{"a-3", 0, 0, true},
		{"9-3", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			from, to, err := parseFrameRange(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFrameRange(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && (from != tt.from || to != tt.to) {
				t.Errorf("parseFrameRange(%q) = %d, %d; want %d, %d", tt.in, from, to, tt.from, tt.to)
			}
		})
	}
}
