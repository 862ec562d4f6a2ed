package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long: `List all events, newest first.

Example:
  quorum list`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			events, err := a.repo.ListEvents(ctx)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			if len(events) == 0 {
				fmt.Println("No events yet. Create one with: quorum create")
				return nil
			}

			fmt.Println(formatHeader("Events:"))
			for _, e := range events {
				fmt.Printf("  %s  %s  %s\n",
					formatMuted(shortID(e.ID)),
					formatEvent(e.Name),
					fmt.Sprintf("%s to %s, %d min",
						e.DateRangeStart.Format("2006-01-02"),
						e.DateRangeEnd.Format("2006-01-02"),
						e.SlotDuration),
				)
			}
			return nil
		},
	}
}
