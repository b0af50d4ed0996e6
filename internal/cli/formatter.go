package cli

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/utils"
)

// Formatter runs the project's own formatter over a generated tree. The
// pass is cosmetic: generated output is already valid, so callers treat
// a failure as a warning, never as a generation failure.
type Formatter struct {
	diag    *utils.DiagnosticSystem
	timeout time.Duration
}

// NewFormatter creates a formatter with the configured per-tree timeout
func NewFormatter(diag *utils.DiagnosticSystem, timeout time.Duration) *Formatter {
	return &Formatter{diag: diag, timeout: timeout}
}

// Prettify formats every file under dir through npx prettier
func (f *Formatter) Prettify(ctx context.Context, dir string) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "npx", "prettier", "--write", "--log-level", "warn", ".")
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.Newf(errors.FormatterErrorCode,
				"formatter did not finish within %s", f.timeout)
		}
		return errors.Wrapf(errors.FormatterErrorCode, err,
			"prettier failed: %s", strings.TrimSpace(string(out))).
			WithSuggestion("rerun with --skip-format if prettier is not installed")
	}
	f.diag.Verbose("Formatted %s", dir)
	return nil
}
