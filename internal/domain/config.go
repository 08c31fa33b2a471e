package domain

// Config represents the minimal Humo configuration loaded from humo.yaml.
type Config struct {
	Masking  MaskingConfig
	Defaults DefaultsConfig
	Paths    PathsConfig
	HTTP     HTTPConfig
}

type MaskingConfig struct {
	Enabled bool
}

type DefaultsConfig struct {
	Target string
}

type PathsConfig struct {
	SuitesDir  string
	TargetsDir string
	RunsDir    string
	ReportsDir string
}

type HTTPConfig struct {
	// TimeoutMS bounds each individual check request.
	TimeoutMS int

	// Concurrency is the number of checks in flight at once.
	Concurrency int
}

// DefaultConfig provides sane defaults if humo.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Masking: MaskingConfig{Enabled: true},
		Defaults: DefaultsConfig{
			Target: "local",
		},
		Paths: PathsConfig{
			SuitesDir:  "suites",
			TargetsDir: "targets",
			RunsDir:    "runs",
			ReportsDir: "reports",
		},
		HTTP: HTTPConfig{
			TimeoutMS:   5000,
			Concurrency: 1,
		},
	}
}
