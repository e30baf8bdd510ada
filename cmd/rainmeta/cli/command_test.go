// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	ran := false
	root := &Command{
		Name: "rainmeta",
		Subcommands: []*Command{
			{
				Name: "decode",
				Run: func(args []string) error {
					ran = true
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"decode"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ran {
		t.Error("subcommand did not run")
	}
}

func TestExecuteUnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "rainmeta",
		Subcommands: []*Command{
			{Name: "decode", Run: func([]string) error { return nil }},
			{Name: "generate", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"decoed"})
	if err == nil {
		t.Fatal("unknown command accepted")
	}
	if !strings.Contains(err.Error(), `"decode"`) {
		t.Errorf("error %q does not suggest decode", err)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var compact bool
	var got []string
	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flags.BoolVarP(&compact, "compact", "c", false, "")
			return flags
		},
		Run: func(args []string) error {
			got = args
			return nil
		},
	}

	if err := command.Execute([]string{"-c", "0xff"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !compact {
		t.Error("flag not parsed")
	}
	if len(got) != 1 || got[0] != "0xff" {
		t.Errorf("positional args = %v", got)
	}
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flags.Bool("compact", false, "")
			return flags
		},
		Run: func([]string) error { return nil },
	}

	err := command.Execute([]string{"--compcat"})
	if err == nil {
		t.Fatal("unknown flag accepted")
	}
	if !strings.Contains(err.Error(), "--compact") {
		t.Errorf("error %q does not suggest --compact", err)
	}
}

func TestSubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "rainmeta",
		Subcommands: []*Command{{Name: "decode", Run: func([]string) error { return nil }}},
	}
	if err := root.Execute(nil); err == nil {
		t.Error("missing subcommand accepted")
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	root := &Command{
		Name:    "rainmeta",
		Summary: "Rain metadata tooling",
		Subcommands: []*Command{
			{Name: "decode", Summary: "Decode a document"},
			{Name: "generate", Summary: "Generate deployment data"},
		},
	}

	var output strings.Builder
	root.PrintHelp(&output)
	help := output.String()
	for _, want := range []string{"decode", "generate", "Decode a document"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"decode", "decode", 0},
		{"decoed", "decode", 2},
		{"kitten", "sitting", 3},
		{"magic", "", 5},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
