package domain

import "testing"

func passResult(name string) CheckResult {
	return CheckResult{
		Name:       name,
		Assertions: []AssertionResult{{Name: "status", Passed: true}},
	}
}

func failResult(name string) CheckResult {
	return CheckResult{
		Name:       name,
		Assertions: []AssertionResult{{Name: "status", Passed: false}},
	}
}

func TestCheckResult_FailedOnError(t *testing.T) {
	r := CheckResult{Error: &RunError{Kind: RunErrorConn, Message: "request error: refused"}}
	if !r.Failed() {
		t.Fatalf("expected transport error to fail the check")
	}
}

func TestCheckResult_FailedOnAssertion(t *testing.T) {
	if !failResult("x").Failed() {
		t.Fatalf("expected failing assertion to fail the check")
	}
	if passResult("x").Failed() {
		t.Fatalf("expected passing assertions to pass the check")
	}
}

func TestCheckResult_NoAssertionsPasses(t *testing.T) {
	if (CheckResult{}).Failed() {
		t.Fatalf("expected check without assertions or error to pass")
	}
}

func TestReport_SummarizeInvariant(t *testing.T) {
	rep := Report{
		Results: []CheckResult{passResult("a"), failResult("b"), passResult("c")},
	}
	rep.Summarize()

	if rep.Total != 3 {
		t.Fatalf("expected Total=3, got %d", rep.Total)
	}
	if rep.Passed+rep.Failed != rep.Total {
		t.Fatalf("invariant broken: %d + %d != %d", rep.Passed, rep.Failed, rep.Total)
	}
	if rep.Passed != 2 || rep.Failed != 1 {
		t.Fatalf("expected 2 passed / 1 failed, got %d/%d", rep.Passed, rep.Failed)
	}
}

func TestReport_SummarizeEmpty(t *testing.T) {
	var rep Report
	rep.Summarize()
	if rep.Total != 0 || rep.Passed != 0 || rep.Failed != 0 {
		t.Fatalf("expected zeroed counters, got %+v", rep)
	}
}
