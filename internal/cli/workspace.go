package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/acuetara/humo/internal/domain"
	"github.com/acuetara/humo/internal/infra/httpclient"
	"github.com/acuetara/humo/internal/infra/httprunner"
	"github.com/acuetara/humo/internal/infra/runstore"
	"github.com/acuetara/humo/internal/infra/workspacefinder"
	"github.com/acuetara/humo/internal/infra/yamlsuite"
	"github.com/acuetara/humo/internal/infra/yamltarget"
	"github.com/acuetara/humo/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	suites ports.SuiteLoader

	targets       ports.TargetLoader
	targetCatalog ports.TargetCatalog

	runner ports.CheckRunner
	store  ports.ArtifactStore
}

func loadWorkspace(workspaceFlag string, timeoutMS int) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	if timeoutMS > 0 {
		cfg.HTTP.TimeoutMS = timeoutMS
	}

	suiteLoader := yamlsuite.NewLoader(
		yamlsuite.WithSuitesDir(cfg.Paths.SuitesDir),
	)

	targetLoader := yamltarget.NewLoader(
		root,
		yamltarget.WithTargetDir(cfg.Paths.TargetsDir),
	)

	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = time.Duration(cfg.HTTP.TimeoutMS) * time.Millisecond
	runner := httprunner.New(httpclient.New(clientCfg))

	store := runstore.NewJSONStore(root, cfg, runstore.WithIndex(true))

	return &workspaceCtx{
		root:          root,
		cfg:           cfg,
		suites:        suiteLoader,
		targets:       targetLoader,
		targetCatalog: targetLoader,
		runner:        runner,
		store:         store,
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `humo init`): %w", wd, err)
	}
	return root, nil
}

func resolveSuitePath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("suite is required (use --suite or -s)")
	}

	// If arg looks like a path (contains separators), resolve relative to workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	suitesDir := filepath.Join(ws.root, ws.cfg.Paths.SuitesDir)

	// If user provided "smoke.yaml", treat it as file under suites dir.
	if hasYAMLExt(in) {
		p := filepath.Join(suitesDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	// If user provided "smoke", try smoke.yaml / smoke.yml in suites dir.
	p1 := filepath.Join(suitesDir, in+".yaml")
	if fileExists(p1) {
		return p1, nil
	}
	p2 := filepath.Join(suitesDir, in+".yml")
	if fileExists(p2) {
		return p2, nil
	}

	// As a last resort: match by suite "name" field.
	refs, err := ws.suites.ListSuites(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("suite %q not found in %q", in, suitesDir)
}

func resolveTargetArg(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return ws.cfg.Defaults.Target, nil
	}

	// If arg is a path, resolve relative to workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	if hasYAMLExt(in) {
		return filepath.Join(ws.root, ws.cfg.Paths.TargetsDir, in), nil
	}

	// Otherwise, treat it as a target name ("local") and let the loader resolve it.
	return in, nil
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
