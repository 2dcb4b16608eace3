package main

import (
	"strings"
	"testing"
)

func TestColorizeRespectsNoColor(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	if got := colorize(ansiGreen, "hello"); strings.Contains(got, "\033") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", got)
	}

	noColor = false
	if got := colorize(ansiGreen, "hello"); !strings.Contains(got, "\033") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", got)
	}
}

func TestRootCommandsRegistered(t *testing.T) {
	want := map[string]bool{"serve": false, "ingest": false, "status": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestIngestAcceptsAtMostOneArg(t *testing.T) {
	if err := ingestCmd.Args(ingestCmd, []string{"a", "b"}); err == nil {
		t.Error("expected error for two positional args")
	}
	if err := ingestCmd.Args(ingestCmd, []string{"a"}); err != nil {
		t.Errorf("one arg should be accepted: %v", err)
	}
}
