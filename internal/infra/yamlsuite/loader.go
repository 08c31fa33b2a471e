package yamlsuite

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
	suitesDir string
}

type Option func(*Loader)

func WithSuitesDir(dir string) Option {
	return func(l *Loader) { l.suitesDir = dir }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{suitesDir: "suites"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.SuiteLoader = (*Loader)(nil)

func (l *Loader) LoadSuite(path string) (domain.Suite, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Suite{}, &domain.OpError{
			Op:   "yamlsuite.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var ys yamlSuite
	if err := yaml.Unmarshal(b, &ys); err != nil {
		return domain.Suite{}, &domain.OpError{
			Op:   "yamlsuite.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, ys)
}

func (l *Loader) ListSuites(root string) ([]domain.SuiteRef, error) {
	dir := filepath.Join(root, l.suitesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlsuite.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.SuiteRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readSuiteName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.SuiteRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readSuiteName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlSuite struct {
	Name   string            `yaml:"name"`
	Vars   map[string]string `yaml:"vars"`
	Checks []yamlCheck       `yaml:"checks"`
}

type yamlCheck struct {
	Name    string            `yaml:"name"`
	Method  string            `yaml:"method"`
	Path    string            `yaml:"path"`
	Headers map[string]string `yaml:"headers"`

	Assert yamlAssertions `yaml:"assert"`
}

type yamlAssertions struct {
	Status *int `yaml:"status"`
	MaxMS  *int `yaml:"max_ms"`

	Headers  []yamlHeaderAssertion            `yaml:"headers"`
	JSONPath map[string]yamlJSONPathAssertion `yaml:"jsonpath"`
}

type yamlHeaderAssertion struct {
	Name    string  `yaml:"name"`
	Equals  *string `yaml:"equals"`
	Present bool    `yaml:"present"`
	Numeric bool    `yaml:"numeric"`
}

type yamlJSONPathAssertion struct {
	Exists  bool    `yaml:"exists"`
	Eq      *string `yaml:"eq"`
	Matches *string `yaml:"matches"`
}

func mapAndValidate(path string, ys yamlSuite) (domain.Suite, error) {
	if strings.TrimSpace(ys.Name) == "" {
		return domain.Suite{}, invalidField(path, "name", "suite name is required")
	}

	suite := domain.Suite{
		Name:   ys.Name,
		Vars:   domain.Vars(ys.Vars),
		Checks: make([]domain.CheckSpec, 0, len(ys.Checks)),
	}

	for i, c := range ys.Checks {
		fieldPrefix := fmt.Sprintf("checks[%d]", i)

		if strings.TrimSpace(c.Name) == "" {
			return domain.Suite{}, invalidField(path, fieldPrefix+".name", "check name is required")
		}
		if strings.TrimSpace(c.Path) == "" {
			return domain.Suite{}, invalidField(path, fieldPrefix+".path", "check path is required")
		}

		method, err := parseMethod(c.Method)
		if err != nil {
			return domain.Suite{}, invalidField(path, fieldPrefix+".method", err.Error())
		}

		headerAsserts, err := mapHeaderAssertions(c.Assert.Headers)
		if err != nil {
			return domain.Suite{}, invalidField(path, fieldPrefix+".assert.headers", err.Error())
		}

		chk := domain.CheckSpec{
			Name:    c.Name,
			Method:  method,
			Path:    c.Path,
			Headers: domain.Headers(c.Headers),
			Assert: domain.AssertionsSpec{
				Status:       c.Assert.Status,
				MaxLatencyMS: c.Assert.MaxMS,
				Headers:      headerAsserts,
				JSONPath:     mapJSONPath(c.Assert.JSONPath),
			},
		}

		if chk.Headers == nil {
			chk.Headers = domain.Headers{}
		}
		if chk.Assert.JSONPath == nil {
			chk.Assert.JSONPath = map[string]domain.JSONPathAssertion{}
		}

		suite.Checks = append(suite.Checks, chk)
	}

	return suite, nil
}

// mapHeaderAssertions expands one YAML entry into one assertion per set
// predicate, so a single entry may assert presence AND numeric-ness.
func mapHeaderAssertions(in []yamlHeaderAssertion) ([]domain.HeaderAssertion, error) {
	var out []domain.HeaderAssertion
	for _, h := range in {
		if strings.TrimSpace(h.Name) == "" {
			return nil, fmt.Errorf("header assertion name is required")
		}

		n := 0
		if h.Equals != nil {
			out = append(out, domain.HeaderAssertion{Name: h.Name, Op: domain.HeaderOpEquals, Value: *h.Equals})
			n++
		}
		if h.Present {
			out = append(out, domain.HeaderAssertion{Name: h.Name, Op: domain.HeaderOpPresent})
			n++
		}
		if h.Numeric {
			out = append(out, domain.HeaderAssertion{Name: h.Name, Op: domain.HeaderOpNumeric})
			n++
		}
		if n == 0 {
			return nil, fmt.Errorf("header %q: one of equals/present/numeric is required", h.Name)
		}
	}
	return out, nil
}

func mapJSONPath(in map[string]yamlJSONPathAssertion) map[string]domain.JSONPathAssertion {
	if in == nil {
		return nil
	}
	out := make(map[string]domain.JSONPathAssertion, len(in))
	for k, v := range in {
		out[k] = domain.JSONPathAssertion{Exists: v.Exists, Eq: v.Eq, Matches: v.Matches}
	}
	return out
}

func parseMethod(m string) (domain.HTTPMethod, error) {
	up := strings.ToUpper(strings.TrimSpace(m))
	if up == "" {
		return domain.MethodGet, nil
	}
	switch domain.HTTPMethod(up) {
	case domain.MethodGet, domain.MethodHead:
		return domain.HTTPMethod(up), nil
	default:
		return "", fmt.Errorf("unsupported method %q (smoke checks are GET/HEAD)", m)
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlsuite.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
