package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"mod-profile/internal/config"
	"mod-profile/internal/journal"
	"mod-profile/internal/profile"
	"mod-profile/internal/utils"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Reset data and tags from data.zip and tags.zip",
	Long: `Delete the data and tags folders and extract them again from data.zip
and tags.zip in the working directory. Saved profiles are not touched;
afterwards no profile is active.`,
	Args: arity(0, 0),
	RunE: runCreate,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Same as create",
	Long:  createCmd.Long,
	Args:  arity(0, 0),
	RunE:  runCreate,
}

var saveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save data and tags as a profile",
	Long: `Copy the data and tags folders into a snapshot named <name>, replacing
any earlier snapshot of that name. Without a name the active profile is
overwritten.

Examples:
  mod-profile save vanilla-plus
  mod-profile save`,
	Args: arity(0, 1),
	RunE: runSave,
}

var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Restore data and tags from a saved profile",
	Args:  arity(1, 1),
	RunE:  runLoad,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Long: `Delete the snapshot of a saved profile. The data and tags folders are
left as they are; afterwards no profile is active.`,
	Args: arity(1, 1),
	RunE: runDelete,
}

func init() {
	for _, c := range []*cobra.Command{createCmd, resetCmd, loadCmd, deleteCmd} {
		c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	}

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctl, done, err := getController(cmd)
	if err != nil {
		return err
	}
	defer done()

	ok, err := confirm("Replace data and tags with the contents of data.zip and tags.zip")
	if err != nil || !ok {
		return aborted(cmd, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Extracting data.zip and tags.zip...")
	if err := ctl.Create(); err != nil {
		return wrapUsage(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Working directory reset. No profile is active.")
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	ctl, done, err := getController(cmd)
	if err != nil {
		return err
	}
	defer done()

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	saved, err := ctl.Save(name)
	if err != nil {
		return wrapUsage(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' saved.\n", saved)
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctl, done, err := getController(cmd)
	if err != nil {
		return err
	}
	defer done()

	name := args[0]
	if err := requireSaved(ctl, name); err != nil {
		return wrapUsage(cmd, err)
	}
	ok, err := confirm(fmt.Sprintf("Replace data and tags with profile '%s'", name))
	if err != nil || !ok {
		return aborted(cmd, err)
	}

	if err := ctl.Load(name); err != nil {
		return wrapUsage(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' loaded.\n", name)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctl, done, err := getController(cmd)
	if err != nil {
		return err
	}
	defer done()

	name := args[0]
	if err := requireSaved(ctl, name); err != nil {
		return wrapUsage(cmd, err)
	}
	ok, err := confirm(fmt.Sprintf("Are you sure you want to delete profile '%s'", name))
	if err != nil || !ok {
		return aborted(cmd, err)
	}

	if err := ctl.Delete(name); err != nil {
		return wrapUsage(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' deleted.\n", name)
	return nil
}

// requireSaved fails before any prompt when name is not a saved profile.
func requireSaved(ctl *profile.Controller, name string) error {
	st, err := ctl.Status()
	if err != nil {
		return err
	}
	if !st.Has(name) {
		return fmt.Errorf("%w: '%s'", profile.ErrUnknownProfile, name)
	}
	return nil
}

func wrapUsage(cmd *cobra.Command, err error) error {
	if profile.IsUsageError(err) {
		return usageError(cmd, err)
	}
	return err
}

func aborted(cmd *cobra.Command, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
	return nil
}

// getController loads the store, running first-time setup when needed.
// The history database is only created by the first successful change;
// the returned func closes it.
func getController(cmd *cobra.Command) (*profile.Controller, func(), error) {
	store := getStore()
	wd, err := workingDirectory(cmd, store)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(cmd.ErrOrStderr())
	logger.Debug("using working directory", "path", wd, "config", store.Path())

	j := journal.NewDeferred(utils.HistoryPath(wd))
	done := func() {
		if err := j.Close(); err != nil {
			logger.Warn("closing history failed", "error", err)
		}
	}
	return profile.NewController(store, profile.WithLogger(logger), profile.WithJournal(j)), done, nil
}

// workingDirectory returns the configured working directory, running first-time setup when needed.
func workingDirectory(cmd *cobra.Command, store *config.Store) (string, error) {
	wd, err := store.WorkingDirectory()
	if errors.Is(err, config.ErrNotConfigured) {
		return firstRunSetup(cmd, store)
	}
	return wd, err
}

func newLogger(w io.Writer) *slog.Logger {
	if !verbose {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
