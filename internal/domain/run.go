package domain

import "time"

// RunErrorKind is a high-level classification of runtime errors.
type RunErrorKind string

const (
	RunErrorUnknown RunErrorKind = "unknown"
	RunErrorTimeout RunErrorKind = "timeout"
	RunErrorDNS     RunErrorKind = "dns"
	RunErrorConn    RunErrorKind = "connection"
	RunErrorTLS     RunErrorKind = "tls"
)

// RunError represents a structured error produced by a check runner.
type RunError struct {
	Kind    RunErrorKind `json:"kind"`
	Message string       `json:"message"`
}

// AssertionResult is the output of a single assertion.
type AssertionResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// ResponseSnapshot stores a bounded view of the response.
// Keep it generic so the domain does not depend on net/http types.
type ResponseSnapshot struct {
	Headers   map[string][]string `json:"headers"`
	Body      []byte              `json:"body,omitempty"`
	Truncated bool                `json:"truncated,omitempty"`
}

// CheckResult represents the outcome of executing a single check.
type CheckResult struct {
	Name   string     `json:"name"`
	Method HTTPMethod `json:"method"`
	URL    string     `json:"url"`

	StatusCode int   `json:"status_code"`
	LatencyMS  int64 `json:"latency_ms"`

	Assertions []AssertionResult `json:"assertions"`

	Response ResponseSnapshot `json:"response"`
	Error    *RunError        `json:"error,omitempty"`
}

// Failed reports whether the check failed: either the request itself
// errored or at least one assertion did not pass.
func (c CheckResult) Failed() bool {
	if c.Error != nil {
		return true
	}
	for _, a := range c.Assertions {
		if !a.Passed {
			return true
		}
	}
	return false
}

// Report is the aggregate outcome of one suite execution.
// Results preserve suite declaration order regardless of how the
// checks were scheduled.
type Report struct {
	SuiteName  string `json:"suite"`
	SuitePath  string `json:"suite_path,omitempty"`
	TargetName string `json:"target"`
	BaseURL    string `json:"base_url"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`

	Results []CheckResult `json:"results"`
}

// Summarize recomputes the counters from Results.
// Invariant afterwards: Passed + Failed == Total == len(Results).
func (r *Report) Summarize() {
	r.Total = len(r.Results)
	r.Passed = 0
	r.Failed = 0
	for _, c := range r.Results {
		if c.Failed() {
			r.Failed++
		} else {
			r.Passed++
		}
	}
}
