package report

import (
	"bytes"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/bebop-bio/isocor"
)

// Diff renders a unified diff between a reference result's table (e.g. a
// checked-in expected output) and a freshly computed one, for regression
// validation (§7). An empty string means the two tables render identically.
func Diff(reference, actual *isocor.Result) (string, error) {
	var refBuf, actualBuf bytes.Buffer
	if err := WriteTable(&refBuf, reference); err != nil {
		return "", fmt.Errorf("io/report: %w", err)
	}
	if err := WriteTable(&actualBuf, actual); err != nil {
		return "", fmt.Errorf("io/report: %w", err)
	}

	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(refBuf.String()),
		B:        difflib.SplitLines(actualBuf.String()),
		FromFile: "reference",
		ToFile:   "actual",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(d)
}
