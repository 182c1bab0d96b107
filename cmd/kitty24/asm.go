package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emma-elyon/kitty24/assembler"
)

func newAsmCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "asm [source.kasm]",
		Short: "Assemble a source file into a flat ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			rom, err := assembler.Assemble(string(src))
			if err != nil {
				return fmt.Errorf("assembling %s: %w", args[0], err)
			}
			if output == "" {
				output = args[0] + ".rom"
			}
			if err := os.WriteFile(output, rom, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("wrote %d bytes to %s\n", len(rom), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output ROM path (default: <source>.rom)")
	return cmd
}
