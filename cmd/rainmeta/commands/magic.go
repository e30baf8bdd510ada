// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rainlanguage/rain.metadata/cmd/rainmeta/cli"
	"github.com/rainlanguage/rain.metadata/lib/meta"
)

func magicCommand() *cli.Command {
	return &cli.Command{
		Name:    "magic",
		Summary: "List known magic numbers",
		Description: `List every registered magic number with its name and 64-bit value.
The value doubles as the 8-byte big-endian prefix of encoded sequences
tagged with that magic.`,
		Usage: "rainmeta magic",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("magic takes no positional arguments, got %q", args[0])
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(tw, "NAME\tVALUE\n")
			for _, magic := range meta.KnownMagics() {
				fmt.Fprintf(tw, "%s\t%#016x\n", magic, uint64(magic))
			}
			return tw.Flush()
		},
	}
}
