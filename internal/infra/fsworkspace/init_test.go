package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/acuetara/humo/internal/domain"
	"github.com/acuetara/humo/internal/infra/yamlsuite"
	"github.com/acuetara/humo/internal/infra/yamltarget"
)

func TestInit_CreatesWorkspace(t *testing.T) {
	root := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatal(err)
	}

	for _, d := range []string{"suites", "targets", "runs", "reports", filepath.Join(".humo", "logs")} {
		info, err := os.Stat(filepath.Join(root, d))
		if err != nil || !info.IsDir() {
			t.Fatalf("missing directory %s: %v", d, err)
		}
	}
	for _, f := range []string{"humo.yaml", filepath.Join("suites", "smoke.yaml"), filepath.Join("targets", "local.yaml"), ".gitignore"} {
		if _, err := os.Stat(filepath.Join(root, f)); err != nil {
			t.Fatalf("missing file %s: %v", f, err)
		}
	}
}

func TestInit_TemplatesAreLoadable(t *testing.T) {
	root := t.TempDir()
	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatal(err)
	}

	suite, err := yamlsuite.NewLoader().LoadSuite(filepath.Join(root, "suites", "smoke.yaml"))
	if err != nil {
		t.Fatalf("scaffolded suite must load: %v", err)
	}
	if len(suite.Checks) == 0 {
		t.Fatalf("scaffolded suite has no checks")
	}

	target, err := yamltarget.NewLoader(root).LoadTarget("local")
	if err != nil {
		t.Fatalf("scaffolded target must load: %v", err)
	}
	if target.BaseURL != "https://127.0.0.1" {
		t.Fatalf("default base URL = %q", target.BaseURL)
	}
	if err := domain.ValidateBaseURL(target.BaseURL); err != nil {
		t.Fatalf("default base URL must validate: %v", err)
	}
}

func TestInit_DoesNotOverwriteWithoutForce(t *testing.T) {
	root := t.TempDir()
	init := NewInitializer()
	if err := init.Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatal(err)
	}

	suitePath := filepath.Join(root, "suites", "smoke.yaml")
	if err := os.WriteFile(suitePath, []byte("name: edited\nchecks: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := init.Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(suitePath)
	if !strings.Contains(string(b), "name: edited") {
		t.Fatalf("init without force overwrote an existing file")
	}

	if err := init.Init(domain.WorkspaceSpec{Root: root}, true); err != nil {
		t.Fatal(err)
	}
	b, _ = os.ReadFile(suitePath)
	if strings.Contains(string(b), "name: edited") {
		t.Fatalf("init --force should restore templates")
	}
}

func TestEnsureGitignore_AppendsMissingEntries(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".gitignore")
	if err := os.WriteFile(path, []byte("node_modules/\nruns/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ensureGitignore(root); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(b)
	for _, e := range []string{"node_modules/", "runs/", "reports/", ".humo/", "targets/secrets.local.yaml"} {
		if !strings.Contains(content, e) {
			t.Fatalf("missing %q in:\n%s", e, content)
		}
	}
	if strings.Count(content, "runs/") != 1 {
		t.Fatalf("duplicated existing entry:\n%s", content)
	}
}
