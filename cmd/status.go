package cmd

import (
	"fmt"
	"text/tabwriter"

	"mod-profile/internal/journal"
	"mod-profile/internal/profile"
	"mod-profile/internal/utils"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

var historyLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active profile and saved profiles",
	Args:  arity(0, 0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, done, err := getController(cmd)
		if err != nil {
			return err
		}
		defer done()

		st, err := ctl.Status()
		if err != nil {
			return err
		}
		return profile.WriteStatus(cmd.OutOrStdout(), st)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles with size and save time",
	Args:  arity(0, 0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, done, err := getController(cmd)
		if err != nil {
			return err
		}
		defer done()

		summaries, err := ctl.List()
		if err != nil {
			return fmt.Errorf("listing profiles: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No profiles found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "Name\tActive\tSize\tLast Saved")
		for _, s := range summaries {
			active := ""
			if s.Active {
				active = "*"
			}
			saved := "unknown"
			if !s.SavedAt.IsZero() {
				saved = humanize.Time(s.SavedAt)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, active, humanize.Bytes(uint64(s.Size)), saved)
		}
		return w.Flush()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent profile operations",
	Args:  arity(0, 0),
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := workingDirectory(cmd, getStore())
		if err != nil {
			return err
		}
		j := journal.NewDeferred(utils.HistoryPath(wd))
		defer j.Close()

		entries, err := j.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "When\tOperation\tProfile")
		for _, e := range entries {
			name := e.Profile
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", humanize.Time(e.At), e.Op, name)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", defaultHistoryLimit, "number of entries to show")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
}
