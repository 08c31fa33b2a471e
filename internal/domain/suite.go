package domain

// HTTPMethod represents an HTTP method. Smoke checks are read-only,
// so only GET and HEAD are accepted.
type HTTPMethod string

const (
	MethodGet  HTTPMethod = "GET"
	MethodHead HTTPMethod = "HEAD"
)

// Headers is a map representation of HTTP request headers.
type Headers map[string]string

// HeaderOp selects the predicate applied to a response header.
type HeaderOp string

const (
	// HeaderOpEquals passes iff the header value equals the expected string
	// byte-for-byte (including parameters such as "charset=utf-8").
	HeaderOpEquals HeaderOp = "equals"

	// HeaderOpPresent passes iff the header exists with a non-empty value.
	HeaderOpPresent HeaderOp = "present"

	// HeaderOpNumeric passes iff the header value parses as a finite
	// floating-point number (decimal or scientific notation).
	HeaderOpNumeric HeaderOp = "numeric"
)

// HeaderAssertion defines a single check against a response header.
// Header name lookup is case-insensitive; value comparison is exact.
type HeaderAssertion struct {
	Name  string
	Op    HeaderOp
	Value string // Expected value, only meaningful for HeaderOpEquals.
}

// JSONPathAssertion defines a JSONPath-based check against the response body.
type JSONPathAssertion struct {
	Exists  bool
	Eq      *string
	Matches *string
}

// AssertionsSpec defines the assertions evaluated for one check.
// All configured assertions are evaluated; a failure never short-circuits
// the remaining ones.
type AssertionsSpec struct {
	// Status is an expected HTTP status code (optional).
	Status *int

	// MaxLatencyMS is a maximum allowed latency in milliseconds (optional).
	MaxLatencyMS *int

	// Headers contains response-header assertions (optional).
	Headers []HeaderAssertion

	// JSONPath contains JSONPath assertions keyed by expression (optional).
	JSONPath map[string]JSONPathAssertion
}

// CheckSpec describes a single smoke check: one request plus its
// expected-response assertions. Path is joined onto the target base URL.
type CheckSpec struct {
	Name    string
	Method  HTTPMethod
	Path    string
	Headers Headers

	Assert AssertionsSpec
}

// Suite groups multiple checks under one logical unit (Git-friendly).
type Suite struct {
	Name string

	// Vars are default variables available to all checks in the suite.
	// Target vars override them.
	Vars Vars

	Checks []CheckSpec
}

// SuiteRef is a lightweight reference to a suite file on disk.
type SuiteRef struct {
	Name string
	Path string
}
