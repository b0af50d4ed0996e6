package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/sdkwire/sdkwire/internal/errors"
)

// Reporter renders pipeline failures for humans. It unwraps the rich
// error types into a header, location, context and suggestions instead of
// dumping one long wrapped string.
type Reporter struct {
	out     io.Writer
	verbose bool
}

// NewReporter creates a reporter writing to stderr
func NewReporter(verbose bool) *Reporter {
	return &Reporter{out: os.Stderr, verbose: verbose}
}

// NewWriterReporter creates a reporter writing to w; used by tests
func NewWriterReporter(w io.Writer, verbose bool) *Reporter {
	return &Reporter{out: w, verbose: verbose}
}

// Report renders one failure
func (r *Reporter) Report(err error) {
	fmt.Fprintf(r.out, "\n")
	header := color.New(color.FgRed, color.Bold)
	header.Fprintf(r.out, "ERROR: SDK Generation Failed\n")
	fmt.Fprintf(r.out, "============================\n\n")

	switch typed := err.(type) {
	case *errors.MultipleErrors:
		fmt.Fprintf(r.out, "%d problems were found:\n\n", typed.Count())
		for i, sub := range typed.Errors {
			fmt.Fprintf(r.out, "--- problem %d ---\n", i+1)
			r.reportOne(sub)
		}
	case errors.WireError:
		r.reportOne(typed)
	default:
		fmt.Fprintf(r.out, "Message: %s\n", err.Error())
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *Reporter) reportOne(err errors.WireError) {
	fmt.Fprintf(r.out, "Type: %s\n", headerFor(err.ErrorCode()))
	fmt.Fprintf(r.out, "Message: %s\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Where: %s\n", loc)
	}

	if ctx := err.Context(); len(ctx) > 0 {
		keys := make([]string, 0, len(ctx))
		for k := range ctx {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(r.out, "Details:\n")
		for _, k := range keys {
			fmt.Fprintf(r.out, "  %s: %v\n", k, ctx[k])
		}
	}

	if r.verbose {
		if base, ok := err.(*errors.BaseError); ok && base.Unwrap() != nil {
			fmt.Fprintf(r.out, "Cause: %s\n", base.Unwrap().Error())
		}
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		fmt.Fprintf(r.out, "Suggestions:\n")
		for _, s := range suggestions {
			fmt.Fprintf(r.out, "  - %s\n", s)
		}
	}

	if errors.IsInternal(err) {
		fmt.Fprintf(r.out, "\nThis is an internal consistency failure, not a problem with your source.\n")
		fmt.Fprintf(r.out, "Please report it together with the snapshot that triggered it.\n")
	}
	fmt.Fprintf(r.out, "\n")
}

func headerFor(code errors.ErrorCode) string {
	switch code {
	case errors.RouteFormatErrorCode:
		return "Route Format Error"
	case errors.MarkerArgumentErrorCode:
		return "Marker Argument Error"
	case errors.AmbiguousVerbErrorCode:
		return "Ambiguous Verb Error"
	case errors.ParamContractErrorCode:
		return "Parameter Contract Error"
	case errors.GenerationErrorCode:
		return "Code Generation Error"
	case errors.ConfigurationErrorCode:
		return "Configuration Error"
	case errors.SnapshotErrorCode:
		return "Snapshot Error"
	case errors.FileSystemErrorCode:
		return "File System Error"
	case errors.FormatterErrorCode:
		return "Formatter Error"
	case errors.InternalErrorCode:
		return "Internal Error"
	default:
		return "Error"
	}
}
