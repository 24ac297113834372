package tool

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/me/sailfish/internal/store"
	"github.com/spf13/cobra"
)

func newCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkpoints <run-id>",
		Short: "List checkpoints written by a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewSQLiteStore(flagDB, logger)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer st.Close()
			if err := st.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate history: %w", err)
			}

			recs, err := st.ListCheckpoints(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("list checkpoints: %w", err)
			}
			if len(recs) == 0 {
				fmt.Println("No checkpoints recorded.")
				return nil
			}

			fmt.Printf("%6s  %10s  %10s  %10s  %s\n", "NUM", "ITER", "TIME", "SIZE", "PATH")
			fmt.Printf("%6s  %10s  %10s  %10s  %s\n", "---", "----", "----", "----", "----")
			for _, rec := range recs {
				fmt.Printf("%6d  %10d  %10.4f  %10s  %s\n",
					rec.Number,
					rec.Iteration,
					rec.Time,
					humanize.Bytes(uint64(rec.SizeBytes)),
					rec.Path)
			}
			return nil
		},
	}
}
