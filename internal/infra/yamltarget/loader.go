package yamltarget

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/acuetara/humo/internal/domain"
	"github.com/acuetara/humo/internal/ports"
)

type Loader struct {
	rootDir     string
	targetDir   string
	secretsFile string
}

type Option func(*Loader)

func WithTargetDir(dir string) Option {
	return func(l *Loader) { l.targetDir = dir }
}

func WithSecretsFile(name string) Option {
	return func(l *Loader) { l.secretsFile = name }
}

func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		rootDir:     root,
		targetDir:   "targets",
		secretsFile: "secrets.local.yaml",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.TargetLoader = (*Loader)(nil)
var _ ports.TargetCatalog = (*Loader)(nil)

// LoadTarget accepts either a target name (e.g., "local") or a full path
// to a YAML file.
func (l *Loader) LoadTarget(nameOrPath string) (domain.Target, error) {
	var targetPath string
	var targetName string

	if strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") || strings.Contains(nameOrPath, string(filepath.Separator)) {
		targetPath = filepath.Clean(nameOrPath)
		targetName = strings.TrimSuffix(filepath.Base(targetPath), filepath.Ext(targetPath))
	} else {
		targetName = nameOrPath
		targetPath = filepath.Join(l.rootDir, l.targetDir, targetName+".yaml")
	}

	base, err := readTarget(targetPath)
	if err != nil {
		return domain.Target{}, err
	}

	// Secrets are optional; they override base vars.
	secretsPath := filepath.Join(filepath.Dir(targetPath), l.secretsFile)
	secrets, secErr := readVarsOptional(secretsPath)
	if secErr != nil {
		return domain.Target{}, secErr
	}

	return domain.Target{
		Name:    targetName,
		BaseURL: base.BaseURL,
		Vars:    domain.Merge(domain.Vars(base.Vars), secrets),
	}, nil
}

// ListTargets returns the target names available under the targets dir.
func (l *Loader) ListTargets() ([]string, error) {
	dir := filepath.Join(l.rootDir, l.targetDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamltarget.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == l.secretsFile {
			continue
		}
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, filepath.Ext(name)))
	}

	sort.Strings(names)
	return names, nil
}

type yamlTarget struct {
	BaseURL string            `yaml:"base_url"`
	Vars    map[string]string `yaml:"vars"`
}

func readTarget(path string) (yamlTarget, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return yamlTarget{}, &domain.OpError{
			Op:   "yamltarget.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlTarget
	if err := yaml.Unmarshal(b, &y); err != nil {
		return yamlTarget{}, &domain.OpError{
			Op:   "yamltarget.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if y.Vars == nil {
		y.Vars = map[string]string{}
	}

	return y, nil
}

func readVarsOptional(path string) (domain.Vars, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Vars{}, nil
		}
		return nil, &domain.OpError{
			Op:   "yamltarget.secrets",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	t, err := readTarget(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	return domain.Vars(t.Vars), nil
}
