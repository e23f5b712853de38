package magetasks

import (
	"errors"
	"fmt"

	"github.com/magefile/mage/sh"
)

var golangciDisabled = "--disable=exhaustruct,varnamelen,ireturn,wrapcheck,nlreturn,gochecknoglobals,mnd,depguard,tagalign"

// LintAll runs all linters. Optional linters that are not installed are
// skipped with a warning.
func LintAll() error {
	PrintHeader("Lint")
	var errs []error
	for _, lint := range []func() error{LintFormat, LintVet, LintStaticcheck, LintGolangci} {
		if err := lint(); err != nil && !toolMissing(err) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	PrintSuccess("All linters passed")
	return nil
}

// LintFormat checks code formatting.
func LintFormat() error {
	return sh.RunV("go", "fmt", "./...")
}

// LintVet runs go vet.
func LintVet() error {
	return sh.RunV("go", "vet", "./...")
}

// LintStaticcheck runs staticcheck.
func LintStaticcheck() error {
	return optional("staticcheck", "honnef.co/go/tools/cmd/staticcheck@latest", "./...")
}

// LintGolangci runs golangci-lint.
func LintGolangci() error {
	return optional("golangci-lint", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
		"run", golangciDisabled, "--timeout=5m", "./...")
}

// LintGolangciFix runs golangci-lint with auto-fixes.
func LintGolangciFix() error {
	return optional("golangci-lint", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
		"run", "--fix", golangciDisabled, "--timeout=5m", "./...")
}

func optional(tool, install string, args ...string) error {
	if err := sh.RunV(tool, args...); err != nil {
		if toolMissing(err) {
			PrintWarning(fmt.Sprintf("%s not found (install: go install %s)", tool, install))
			return err
		}
		return fmt.Errorf("%s failed: %w", tool, err)
	}
	return nil
}
