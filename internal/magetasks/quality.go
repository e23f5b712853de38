package magetasks

import "fmt"

// QualityCheck runs linters, tests and the build in order. Lint findings
// are reported but do not stop the run.
func QualityCheck() error {
	PrintHeader("Quality Checks")

	if err := LintAll(); err != nil {
		PrintWarning("Linting issues found")
	}
	if err := TestAll(); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	if err := Build(); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	PrintSuccess("Quality checks complete")
	return nil
}
