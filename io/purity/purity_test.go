package purity

import (
	"strings"
	"testing"
)

func TestParseSingleLine(t *testing.T) {
	p, err := Parse(strings.NewReader("C12 C13 : 0.01 0.99\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p["C12"] != 0.01 || p["C13"] != 0.99 {
		t.Errorf("p = %+v, want C12=0.01 C13=0.99", p)
	}
}

func TestParseNoDataLineReturnsNil(t *testing.T) {
	p, err := Parse(strings.NewReader("# just a comment\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p != nil {
		t.Errorf("p = %+v, want nil", p)
	}
}

func TestParseRejectsMismatchedCounts(t *testing.T) {
	if _, err := Parse(strings.NewReader("C12 C13 : 0.01\n")); err == nil {
		t.Error("expected an error for mismatched name/value counts")
	}
}

func TestParseRejectsMissingColon(t *testing.T) {
	if _, err := Parse(strings.NewReader("C12 C13 0.01 0.99\n")); err == nil {
		t.Error("expected an error for a missing ':' separator")
	}
}
