package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadtower/pkg/handoff"
)

// handoffCommand creates the handoff slot management command.
func (c *CLI) handoffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handoff",
		Short: "Manage the slot that hands roadmaps to the render step",
	}

	cmd.AddCommand(c.handoffClearCommand())
	cmd.AddCommand(c.handoffPathCommand())

	return cmd
}

// handoffClearCommand creates the "handoff clear" subcommand.
func (c *CLI) handoffClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the payload waiting in the handoff slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.Config.Handoff.Backend == handoff.BackendMemory {
				printInfo("The memory handoff slot is always empty between runs")
				return nil
			}

			slot, err := c.openSlot(ctx)
			if err != nil {
				return fmt.Errorf("open handoff slot: %w", err)
			}
			defer slot.Close()

			if err := slot.Clear(ctx); err != nil {
				return fmt.Errorf("clear handoff slot: %w", err)
			}
			printSuccess("Cleared handoff slot %q", slot.Name())
			printDetail("Location: %s", slotLocation(slot))
			return nil
		},
	}
}

// handoffPathCommand creates the "handoff path" subcommand.
func (c *CLI) handoffPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the handoff slot is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := c.openSlot(cmd.Context())
			if err != nil {
				return fmt.Errorf("open handoff slot: %w", err)
			}
			defer slot.Close()

			fmt.Fprintln(stdout, slotLocation(slot))
			return nil
		},
	}
}

// slotLocation describes where a slot keeps its payload: a file path, a
// redis key, or the process memory.
func slotLocation(s handoff.Slot) string {
	switch s := s.(type) {
	case *handoff.File:
		return s.Path()
	case *handoff.Redis:
		return "redis key " + s.Key()
	default:
		return "memory (" + s.Name() + ")"
	}
}
