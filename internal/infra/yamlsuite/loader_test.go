package yamlsuite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/acuetara/humo/internal/domain"
)

func writeSuite(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const smokeYAML = `name: smoke
vars:
  app: chat
checks:
  - name: home
    path: /
    assert:
      status: 200
      headers:
        - name: Content-Type
          equals: "text/html; charset=utf-8"
        - name: X-Process-Time
          present: true
          numeric: true
  - name: chat
    method: head
    path: /apps/{{app}}
    assert:
      status: 200
`

func TestLoadSuite(t *testing.T) {
	dir := t.TempDir()
	p := writeSuite(t, dir, "smoke.yaml", smokeYAML)

	l := NewLoader()
	suite, err := l.LoadSuite(p)
	if err != nil {
		t.Fatal(err)
	}

	if suite.Name != "smoke" {
		t.Fatalf("name = %q", suite.Name)
	}
	if suite.Vars["app"] != "chat" {
		t.Fatalf("vars = %v", suite.Vars)
	}
	if len(suite.Checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(suite.Checks))
	}

	home := suite.Checks[0]
	if home.Method != domain.MethodGet {
		t.Fatalf("empty method should default to GET, got %q", home.Method)
	}
	if home.Assert.Status == nil || *home.Assert.Status != 200 {
		t.Fatalf("status assertion missing")
	}
	// one entry per set predicate: equals + (present, numeric)
	if len(home.Assert.Headers) != 3 {
		t.Fatalf("expected 3 header assertions, got %d", len(home.Assert.Headers))
	}
	ops := []domain.HeaderOp{home.Assert.Headers[0].Op, home.Assert.Headers[1].Op, home.Assert.Headers[2].Op}
	want := []domain.HeaderOp{domain.HeaderOpEquals, domain.HeaderOpPresent, domain.HeaderOpNumeric}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("header op %d = %q, want %q", i, ops[i], want[i])
		}
	}

	if suite.Checks[1].Method != domain.MethodHead {
		t.Fatalf("lowercase head should normalize, got %q", suite.Checks[1].Method)
	}
}

func TestLoadSuite_MissingFile(t *testing.T) {
	l := NewLoader()
	_, err := l.LoadSuite(filepath.Join(t.TempDir(), "nope.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestLoadSuite_Invalid(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader()

	cases := []struct {
		name    string
		yaml    string
		wantSub string
	}{
		{"no suite name", "checks: []\n", "suite name is required"},
		{"no check name", "name: s\nchecks:\n  - path: /\n    assert: {status: 200}\n", "check name is required"},
		{"no check path", "name: s\nchecks:\n  - name: c\n    assert: {status: 200}\n", "check path is required"},
		{"bad method", "name: s\nchecks:\n  - name: c\n    method: POST\n    path: /\n", "unsupported method"},
		{"empty header assertion", "name: s\nchecks:\n  - name: c\n    path: /\n    assert:\n      headers:\n        - name: X-Foo\n", "one of equals/present/numeric"},
		{"unnamed header assertion", "name: s\nchecks:\n  - name: c\n    path: /\n    assert:\n      headers:\n        - present: true\n", "name is required"},
		{"not yaml", "{{{{", ""},
	}

	for _, tc := range cases {
		p := writeSuite(t, dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml", tc.yaml)
		_, err := l.LoadSuite(p)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("%s: expected invalid_config, got %v", tc.name, err)
		}
		if tc.wantSub != "" && !strings.Contains(err.Error(), tc.wantSub) {
			t.Fatalf("%s: error %q missing %q", tc.name, err, tc.wantSub)
		}
	}
}

func TestListSuites(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "suites")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSuite(t, dir, "b.yaml", "name: beta\nchecks: []\n")
	writeSuite(t, dir, "a.yml", "name: alpha\nchecks: []\n")
	writeSuite(t, dir, "unnamed.yaml", "checks: []\n")
	writeSuite(t, dir, "notes.txt", "ignored")

	l := NewLoader()
	refs, err := l.ListSuites(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 suites, got %d", len(refs))
	}
	// sorted by name; the unnamed file falls back to its filename stem
	names := []string{refs[0].Name, refs[1].Name, refs[2].Name}
	want := []string{"alpha", "beta", "unnamed"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}
