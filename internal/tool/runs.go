package tool

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/me/sailfish/internal/store"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewSQLiteStore(flagDB, logger)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer st.Close()
			if err := st.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate history: %w", err)
			}

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return nil
			}

			fmt.Printf("%-36s  %10s  %10s  %10s  %s\n", "ID", "ZONES", "ITER", "TIME", "STARTED")
			fmt.Printf("%-36s  %10s  %10s  %10s  %s\n", "----", "-----", "----", "----", "-------")
			for _, run := range runs {
				fmt.Printf("%-36s  %10s  %10d  %10.4f  %s\n",
					run.ID,
					humanize.Comma(int64(run.Zones)),
					run.Iterations,
					run.FinalTime,
					humanize.Time(run.StartedAt))
			}
			return nil
		},
	}
}
