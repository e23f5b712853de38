package magetasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/magefile/mage/sh"
)

// Build builds the peek binary with version metadata in its ldflags.
func Build() error {
	PrintHeader("Build")

	ldflags := LDFlags(gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*"),
		gitOutput("unknown", "rev-parse", "--short", "HEAD"),
		time.Now().UTC().Format(time.RFC3339))

	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", BinPath, MainPackage); err != nil {
		PrintError("Build failed")
		return err
	}
	PrintSuccess("Built: " + BinPath)
	return nil
}

// LDFlags returns the linker flags that stamp the version package.
func LDFlags(version, commit, date string) string {
	pkg := ModulePath + "/internal/version"
	return fmt.Sprintf("-s -w -X '%s.Version=%s' -X '%s.CommitHash=%s' -X '%s.BuildDate=%s'",
		pkg, version, pkg, commit, pkg, date)
}

// Clean removes build artifacts.
func Clean() error {
	PrintHeader("Clean")
	if err := sh.Rm(BinPath); err != nil {
		return err
	}
	if err := sh.Rm("coverage.out"); err != nil {
		return err
	}
	PrintSuccess("Cleaned build artifacts")
	return nil
}

func gitOutput(fallback string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}
