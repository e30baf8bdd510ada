// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/rainlanguage/rain.metadata/cmd/rainmeta/cli"
	"github.com/rainlanguage/rain.metadata/lib/metaboard"
)

func generateCommand() *cli.Command {
	var (
		inputPath  string
		outputPath string
		compact    bool
	)

	return &cli.Command{
		Name:    "generate",
		Summary: "Generate MetaBoard deployment data from dotrain source",
		Description: `Read dotrain source text and write MetaBoard deployment data as JSON:
the subject hash, the CBOR-encoded meta bytes, and the complete
emitMeta calldata, all 0x-prefixed hex.

Input comes from -i or stdin; output goes to -o or stdout.`,
		Usage: "rainmeta generate [-i <file>] [-o <file>] [-c]",
		Examples: []cli.Example{
			{
				Description: "Generate deployment data from a .rain file",
				Command:     "rainmeta generate -i order.rain -o deployment.json",
			},
			{
				Description: "Pipe source through",
				Command:     "rainmeta generate < order.rain",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flags.StringVarP(&inputPath, "input", "i", "", "read dotrain source from this file instead of stdin")
			flags.StringVarP(&outputPath, "output", "o", "", "write deployment JSON to this file instead of stdout")
			flags.BoolVarP(&compact, "compact", "c", false, "compact single-line JSON output")
			return flags
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("generate takes no positional arguments, got %q", args[0])
			}
			content, err := readInput(inputPath)
			if err != nil {
				return err
			}
			deployment, err := metaboard.GenerateDotrainDeployment(string(content))
			if err != nil {
				return err
			}

			var output []byte
			if compact {
				output, err = json.Marshal(deployment)
			} else {
				output, err = json.MarshalIndent(deployment, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("encode JSON: %w", err)
			}

			if outputPath == "" {
				fmt.Println(string(output))
				return nil
			}
			return os.WriteFile(outputPath, append(output, '\n'), 0o644)
		},
	}
}

// readInput reads the named file, or stdin when path is empty. An
// interactive terminal on stdin is refused rather than silently
// blocking on a read the user did not intend.
func readInput(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return data, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is a terminal; pipe input or pass -i <file>")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
