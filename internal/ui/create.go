package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"quorum/internal/event"
)

func (a *App) createCmd() *cobra.Command {
	var (
		start    string
		end      string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new event",
		Long: `Create a new event spanning a date range of candidate slots.

Example:
  quorum create "Team offsite" --start=2025-01-20 --end=2025-01-24 --duration=30`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			e, err := event.New(args[0], start, end, duration)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.repo.CreateEvent(ctx, e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			fmt.Printf("Created event %s: %s  %s to %s, %d-minute slots\n",
				shortID(e.ID),
				e.Name,
				e.DateRangeStart.Format("2006-01-02"),
				e.DateRangeEnd.Format("2006-01-02"),
				e.SlotDuration,
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First candidate date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&end, "end", "", "Last candidate date (YYYY-MM-DD, default: start)")
	cmd.Flags().IntVar(&duration, "duration", 30, "Slot duration in minutes: 15, 30, or 60")

	return cmd
}
