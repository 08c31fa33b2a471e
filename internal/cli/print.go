package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/acuetara/humo/internal/domain"
)

type theme struct {
	pass    lipgloss.Style
	fail    lipgloss.Style
	faint   lipgloss.Style
	heading lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		faint:   lipgloss.NewStyle().Faint(true),
		heading: lipgloss.NewStyle().Bold(true),
	}
}

func printReport(w io.Writer, report domain.Report, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		// Include runID (optional) as a wrapper to avoid changing the domain model.
		payload := map[string]any{
			"run_id": runID,
			"report": report,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, report, runID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReport(w io.Writer, report domain.Report, runID string) {
	th := defaultTheme()

	total := report.EndedAt.Sub(report.StartedAt)
	if report.StartedAt.IsZero() || report.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "%s %s\n", th.heading.Render("Suite:"), report.SuiteName)
	fmt.Fprintf(w, "%s %s (%s)\n", th.heading.Render("Target:"), report.TargetName, report.BaseURL)
	fmt.Fprintf(w, "%s %s\n", th.heading.Render("Started:"), report.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "%s %s\n", th.heading.Render("Duration:"), total)
	if runID != "" {
		fmt.Fprintf(w, "%s %s\n", th.heading.Render("Run ID:"), runID)
	}
	fmt.Fprintln(w)

	for _, r := range report.Results {
		status := th.pass.Render("OK")
		if r.Failed() {
			status = th.fail.Render("FAIL")
		}

		fmt.Fprintf(w, "- [%s] %s (%s) %dms\n", status, r.Name, r.Method, r.LatencyMS)

		if r.Error != nil {
			fmt.Fprintf(w, "  %s %s (%s)\n", th.fail.Render("error:"), r.Error.Message, r.Error.Kind)
		} else {
			fmt.Fprintf(w, "  status: %d\n", r.StatusCode)
		}

		if len(r.Assertions) > 0 {
			pass, fail := countAssertionPassFail(r.Assertions)
			fmt.Fprintf(w, "  assertions: %d pass / %d fail\n", pass, fail)
			for _, a := range r.Assertions {
				mark := th.pass.Render("✓")
				if !a.Passed {
					mark = th.fail.Render("✗")
				}
				fmt.Fprintf(w, "    %s %s %s\n", mark, a.Name, th.faint.Render(a.Message))
			}
		}

		fmt.Fprintln(w)
	}

	summary := fmt.Sprintf("%d total / %d passed / %d failed", report.Total, report.Passed, report.Failed)
	if report.Failed > 0 {
		fmt.Fprintln(w, th.fail.Render(summary))
	} else {
		fmt.Fprintln(w, th.pass.Render(summary))
	}
}

func countAssertionPassFail(in []domain.AssertionResult) (pass int, fail int) {
	for _, a := range in {
		if a.Passed {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}
