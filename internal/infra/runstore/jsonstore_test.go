package runstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/acuetara/humo/internal/domain"
)

func sampleReport() domain.Report {
	r := domain.Report{
		SuiteName:  "Smoke Suite",
		SuitePath:  "suites/smoke.yaml",
		TargetName: "local",
		BaseURL:    "https://127.0.0.1",
		StartedAt:  time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		Results: []domain.CheckResult{
			{
				Name:       "home",
				StatusCode: 200,
				Assertions: []domain.AssertionResult{{Name: "status", Passed: true}},
				Response: domain.ResponseSnapshot{
					Headers: map[string][]string{
						"Content-Type":  {"text/html"},
						"Authorization": {"Bearer abc123"},
						"X-Auth-Token":  {"tok"},
					},
				},
			},
		},
	}
	r.Summarize()
	return r
}

func TestSaveReport_WritesFile(t *testing.T) {
	root := t.TempDir()
	store := NewJSONStore(root, domain.DefaultConfig())

	id, err := store.SaveReport(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if id != "20260829T103000Z_smoke-suite" {
		t.Fatalf("id = %q", id)
	}

	path := filepath.Join(root, "runs", id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var saved domain.Report
	if err := json.Unmarshal(b, &saved); err != nil {
		t.Fatal(err)
	}
	if saved.SuiteName != "Smoke Suite" || saved.Total != 1 {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestSaveReport_MasksSensitiveHeaders(t *testing.T) {
	root := t.TempDir()
	store := NewJSONStore(root, domain.DefaultConfig())

	report := sampleReport()
	id, err := store.SaveReport(report)
	if err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(root, "runs", id+".json"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(b)
	if strings.Contains(content, "Bearer abc123") || strings.Contains(content, `"tok"`) {
		t.Fatalf("sensitive values leaked into the artifact")
	}
	if !strings.Contains(content, "********") {
		t.Fatalf("expected masked placeholder in artifact")
	}

	// Masking must not mutate the caller's report.
	if report.Results[0].Response.Headers["Authorization"][0] != "Bearer abc123" {
		t.Fatalf("input report was mutated")
	}
}

func TestSaveReport_MaskingDisabled(t *testing.T) {
	root := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Masking.Enabled = false
	store := NewJSONStore(root, cfg)

	id, err := store.SaveReport(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(root, "runs", id+".json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "Bearer abc123") {
		t.Fatalf("masking disabled should keep values")
	}
}

func TestSaveReport_AppendsIndex(t *testing.T) {
	root := t.TempDir()
	store := NewJSONStore(root, domain.DefaultConfig(), WithIndex(true))

	if _, err := store.SaveReport(sampleReport()); err != nil {
		t.Fatal(err)
	}
	second := sampleReport()
	second.StartedAt = second.StartedAt.Add(time.Minute)
	if _, err := store.SaveReport(second); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(root, "runs", "index.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 index lines, got %d", len(lines))
	}

	var entry struct {
		ID     string `json:"id"`
		Suite  string `json:"suite"`
		Passed int    `json:"passed"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Suite != "Smoke Suite" || entry.Passed != 1 {
		t.Fatalf("entry = %+v", entry)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Smoke Suite":    "smoke-suite",
		"  weird--name ": "weird-name",
		"UPPER":          "upper",
		"---":            "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
