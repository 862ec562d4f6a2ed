package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"quorum/internal/aggregate"
)

func (a *App) resultsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "results [event]",
		Short: "Show aggregated availability for an event",
		Long: `Aggregate every submission for an event and print the best slots.

The event may be given by ID, ID prefix, or name.

Example:
  quorum results "Team offsite" --top=3`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			e, err := resolveEvent(ctx, a.repo, args[0])
			if err != nil {
				return err
			}

			rows, err := a.repo.ListAvailabilityRows(ctx, e.ID)
			if err != nil {
				return fmt.Errorf("loading availability: %w", err)
			}

			result := aggregate.Aggregate(rows)
			best := aggregate.BestSlots(result, top)
			printResults(e.Name, result, best)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", aggregate.DefaultBestSlots, "How many best slots to show")

	return cmd
}

func printResults(name string, result aggregate.Result, best []aggregate.RankedSlot) {
	fmt.Printf("%s  %s\n\n",
		formatEvent(name),
		formatMuted(fmt.Sprintf("%d participants", result.TotalParticipants)))

	if result.TotalParticipants == 0 {
		fmt.Println("No submissions yet.")
		return
	}

	barWidth := 20
	if termWidth() < 60 {
		barWidth = 10
	}

	fmt.Println(formatHeader("Best slots:"))
	for i, rs := range best {
		fmt.Printf("  %d. %-22s %s  %d of %d (%.0f%%)\n",
			i+1,
			formatSlotRange(rs.SlotAggregation),
			availabilityBar(rs.Count, result.TotalParticipants, barWidth),
			rs.Count, result.TotalParticipants, rs.Percent)
		for _, p := range rs.Participants {
			fmt.Printf("       %s\n", formatMuted(p.DisplayName))
		}
	}
}
