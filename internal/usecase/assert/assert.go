// Package assert implements the pass/fail predicates evaluated against
// a single check's response.
package assert

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/acuetara/humo/internal/domain"
)

func Status(expected int, got int) domain.AssertionResult {
	if got == expected {
		return domain.AssertionResult{
			Name:    "status",
			Passed:  true,
			Message: fmt.Sprintf("status %d", got),
		}
	}

	return domain.AssertionResult{
		Name:    "status",
		Passed:  false,
		Message: fmt.Sprintf("expected status %d, got %d", expected, got),
	}
}

func MaxLatency(maxMs int, latencyMs int64) domain.AssertionResult {
	if latencyMs <= int64(maxMs) {
		return domain.AssertionResult{
			Name:    "max_ms",
			Passed:  true,
			Message: fmt.Sprintf("latency %dms <= %dms", latencyMs, maxMs),
		}
	}

	return domain.AssertionResult{
		Name:    "max_ms",
		Passed:  false,
		Message: fmt.Sprintf("expected latency <= %dms, got %dms", maxMs, latencyMs),
	}
}

// HeaderEquals compares the header value byte-for-byte. Name lookup is
// case-insensitive, the value comparison is not.
func HeaderEquals(name string, expected string, headers map[string][]string) domain.AssertionResult {
	val, ok := domain.HeaderValue(headers, name)
	if !ok {
		return domain.AssertionResult{
			Name:    "header.equals",
			Passed:  false,
			Message: fmt.Sprintf("header %q: expected %q, header is missing", name, expected),
		}
	}
	if val != expected {
		return domain.AssertionResult{
			Name:    "header.equals",
			Passed:  false,
			Message: fmt.Sprintf("header %q: expected %q, got %q", name, expected, val),
		}
	}
	return domain.AssertionResult{
		Name:    "header.equals",
		Passed:  true,
		Message: fmt.Sprintf("header %q is %q", name, val),
	}
}

func HeaderPresent(name string, headers map[string][]string) domain.AssertionResult {
	val, ok := domain.HeaderValue(headers, name)
	if !ok || val == "" {
		return domain.AssertionResult{
			Name:    "header.present",
			Passed:  false,
			Message: fmt.Sprintf("header %q is missing", name),
		}
	}
	return domain.AssertionResult{
		Name:    "header.present",
		Passed:  true,
		Message: fmt.Sprintf("header %q is present", name),
	}
}

// HeaderNumeric passes iff the header exists and parses as a finite float.
// Decimal and scientific forms are accepted; "NaN" and infinities are not
// measurements and fail the check.
func HeaderNumeric(name string, headers map[string][]string) domain.AssertionResult {
	val, ok := domain.HeaderValue(headers, name)
	if !ok {
		return domain.AssertionResult{
			Name:    "header.numeric",
			Passed:  false,
			Message: fmt.Sprintf("header %q is missing", name),
		}
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return domain.AssertionResult{
			Name:    "header.numeric",
			Passed:  false,
			Message: fmt.Sprintf("header %q: value %q is not numeric", name, val),
		}
	}
	return domain.AssertionResult{
		Name:    "header.numeric",
		Passed:  true,
		Message: fmt.Sprintf("header %q is numeric (%s)", name, val),
	}
}

func header(a domain.HeaderAssertion, headers map[string][]string) domain.AssertionResult {
	switch a.Op {
	case domain.HeaderOpEquals:
		return HeaderEquals(a.Name, a.Value, headers)
	case domain.HeaderOpPresent:
		return HeaderPresent(a.Name, headers)
	case domain.HeaderOpNumeric:
		return HeaderNumeric(a.Name, headers)
	default:
		return domain.AssertionResult{
			Name:    "header",
			Passed:  false,
			Message: fmt.Sprintf("header %q: unsupported op %q", a.Name, a.Op),
		}
	}
}

// Evaluate applies the assertions spec against the observed response data.
// Every configured assertion is evaluated; a failure never short-circuits
// the remaining ones, so all failures of a check are reported together.
// The body is parsed as JSON only if JSONPath assertions are present.
func Evaluate(spec domain.AssertionsSpec, status int, latencyMs int64, headers map[string][]string, body []byte) []domain.AssertionResult {
	var out []domain.AssertionResult

	if spec.Status != nil {
		out = append(out, Status(*spec.Status, status))
	}
	if spec.MaxLatencyMS != nil {
		out = append(out, MaxLatency(*spec.MaxLatencyMS, latencyMs))
	}
	for _, h := range spec.Headers {
		out = append(out, header(h, headers))
	}

	if len(spec.JSONPath) == 0 {
		return out
	}

	doc, err := parseJSON(body)
	if err != nil {
		for expr, a := range spec.JSONPath {
			out = append(out, jsonPathChecks(expr, a, nil,
				fmt.Errorf("response body is not valid JSON"))...)
		}
		return out
	}

	for expr, a := range spec.JSONPath {
		val, getErr := jsonpath.Get(expr, doc)
		out = append(out, jsonPathChecks(expr, a, val, getErr)...)
	}

	return out
}

func jsonPathChecks(expr string, a domain.JSONPathAssertion, val any, getErr error) []domain.AssertionResult {
	var out []domain.AssertionResult
	if a.Exists {
		out = append(out, checkExists(expr, val, getErr))
	}
	if a.Eq != nil {
		out = append(out, checkEq(expr, val, getErr, *a.Eq))
	}
	if a.Matches != nil {
		out = append(out, checkMatches(expr, val, getErr, *a.Matches))
	}
	return out
}

func checkExists(expr string, val any, getErr error) domain.AssertionResult {
	if getErr != nil {
		return domain.AssertionResult{
			Name:    "jsonpath.exists",
			Passed:  false,
			Message: fmt.Sprintf("invalid jsonpath %q: %v", expr, getErr),
		}
	}
	if isEmptyJSONPathValue(val) {
		return domain.AssertionResult{
			Name:    "jsonpath.exists",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: expected value to exist, got empty", expr),
		}
	}
	return domain.AssertionResult{
		Name:    "jsonpath.exists",
		Passed:  true,
		Message: fmt.Sprintf("jsonpath %q exists", expr),
	}
}

func checkEq(expr string, val any, getErr error, expected string) domain.AssertionResult {
	if getErr != nil {
		return domain.AssertionResult{
			Name:    "jsonpath.eq",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: %v", expr, getErr),
		}
	}
	s, err := jsonPathToString(val)
	if err != nil {
		return domain.AssertionResult{
			Name:    "jsonpath.eq",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: %v", expr, err),
		}
	}
	if s != expected {
		return domain.AssertionResult{
			Name:    "jsonpath.eq",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: expected %q, got %q", expr, expected, s),
		}
	}
	return domain.AssertionResult{
		Name:    "jsonpath.eq",
		Passed:  true,
		Message: fmt.Sprintf("jsonpath %q eq %q", expr, expected),
	}
}

func checkMatches(expr string, val any, getErr error, pattern string) domain.AssertionResult {
	if getErr != nil {
		return domain.AssertionResult{
			Name:    "jsonpath.matches",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: %v", expr, getErr),
		}
	}
	s, err := jsonPathToString(val)
	if err != nil {
		return domain.AssertionResult{
			Name:    "jsonpath.matches",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: %v", expr, err),
		}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return domain.AssertionResult{
			Name:    "jsonpath.matches",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: invalid regex %q: %v", expr, pattern, err),
		}
	}
	if !re.MatchString(s) {
		return domain.AssertionResult{
			Name:    "jsonpath.matches",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: %q does not match %q", expr, s, pattern),
		}
	}
	return domain.AssertionResult{
		Name:    "jsonpath.matches",
		Passed:  true,
		Message: fmt.Sprintf("jsonpath %q matches %q", expr, pattern),
	}
}

func jsonPathToString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		return fmt.Sprint(v), nil
	}
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isEmptyJSONPathValue(v any) bool {
	if v == nil {
		return true
	}

	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
