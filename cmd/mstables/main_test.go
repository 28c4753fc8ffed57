// Package main provides tests for the mstables CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/mstables/internal/cli"
	"github.com/leapstack-labs/mstables/internal/testutil"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(out, "mstables") {
		t.Errorf("version output should contain 'mstables', got: %s", out)
	}
}

func TestShowValuation(t *testing.T) {
	path := testutil.WriteFixture(t)

	out, stderr, err := run(t, "show", "valuation", "--store", path, "--limit", "0")
	if err != nil {
		t.Fatalf("show valuation error = %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{"exchange_id", "ticker_id", "PE_2022-12-31", "PB_TTM", "(3 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestShowVerbose(t *testing.T) {
	path := testutil.WriteFixture(t)

	_, stderr, err := run(t, "show", "growth", "--store", path, "-v")
	if err != nil {
		t.Fatalf("show growth error = %v", err)
	}
	for _, want := range []string{"Creating frame 'timerefs' ...", "Creating frame 'msratio_growth' ...", "Initial frames created."} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr should contain %q, got: %s", want, stderr)
		}
	}
}

func TestInvalidResolution(t *testing.T) {
	path := testutil.WriteFixture(t)

	_, _, err := run(t, "show", "growth", "--store", path, "--resolution", "inner")
	if err == nil || !strings.Contains(err.Error(), "unknown resolution mode") {
		t.Errorf("expected resolution error, got %v", err)
	}
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out, "mstables") {
		t.Errorf("completion script should mention mstables")
	}
}
