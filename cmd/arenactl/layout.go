package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Report the chunk layout contract constants",
		Long: `The layout command prints the in-memory layout contract every chunk in
this process obeys: footer size, chunk alignment, and the minimum size and
alignment a raw block must satisfy for a raw transfer. Two components
exchanging raw chunks must agree on all four values exactly.

Example:
  arenactl layout
  arenactl layout --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout()
		},
	}
	return cmd
}

type layoutContract struct {
	FooterSize  uintptr `json:"footer_size"`
	ChunkAlign  uintptr `json:"chunk_align"`
	RawMinSize  uintptr `json:"raw_min_size"`
	RawMinAlign uintptr `json:"raw_min_align"`
}

func runLayout() error {
	c := layoutContract{
		FooterSize:  arena.FooterSize,
		ChunkAlign:  arena.ChunkAlign,
		RawMinSize:  arena.RawMinSize,
		RawMinAlign: arena.RawMinAlign,
	}

	if jsonOut {
		return printJSON(c)
	}

	printInfo("Chunk layout contract:\n")
	printInfo("  Footer size:       %d bytes\n", c.FooterSize)
	printInfo("  Chunk alignment:   %d bytes\n", c.ChunkAlign)
	printInfo("  Raw min size:      %d bytes\n", c.RawMinSize)
	printInfo("  Raw min alignment: %d bytes\n", c.RawMinAlign)
	return nil
}
