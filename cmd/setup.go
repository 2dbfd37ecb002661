package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mod-profile/internal/config"
	"mod-profile/internal/utils"

	"github.com/spf13/cobra"
)

var setupForce bool

var setupCmd = &cobra.Command{
	Use:   "setup [path]",
	Short: "Configure the mod working directory",
	Long: `Configure the mod working directory that holds data, tags,
data.zip and tags.zip.

Without a path you are prompted for one. Setup runs automatically the
first time any other command is used.

Examples:
  mod-profile setup ~/games/halo-ce
  mod-profile setup --force /mnt/games/halo-ce`,
	Args: arity(0, 1),
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupForce, "force", "f", false,
		"replace an existing working directory setting")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	store := getStore()

	if current, err := store.WorkingDirectory(); err == nil && !setupForce {
		return usageError(cmd, fmt.Errorf("%w (%s); use --force to change it",
			config.ErrAlreadyInitialized, current))
	} else if err != nil && !errors.Is(err, config.ErrNotConfigured) {
		return err
	}

	var path string
	if len(args) == 1 {
		if err := validateWorkingDirectory(args[0]); err != nil {
			return err
		}
		path, _ = expandPath(args[0])
	} else {
		if !isInteractive() {
			return usageError(cmd, errors.New("a path is required when not running in a terminal"))
		}
		p, err := promptWorkingDirectory()
		if err != nil {
			return err
		}
		path = p
	}

	if err := store.SetWorkingDirectory(path); err != nil {
		return err
	}
	wd, err := store.WorkingDirectory()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Working directory set to %s\n", wd)
	return nil
}

// firstRunSetup configures the working directory before another command continues.
func firstRunSetup(cmd *cobra.Command, store *config.Store) (string, error) {
	if !isInteractive() {
		return "", fmt.Errorf("%w; run '%s setup <path>' first", config.ErrNotConfigured, appName)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "No working directory configured yet. Running first-time setup.")
	path, err := promptWorkingDirectory()
	if err != nil {
		return "", err
	}
	if err := store.InitializeWorkingDirectory(path); err != nil {
		return "", err
	}
	wd, err := store.WorkingDirectory()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Working directory set to %s\n", wd)
	return wd, nil
}

func getStore() *config.Store {
	path := configPath
	if path == "" {
		path = utils.DefaultConfigPath()
	}
	return config.NewStore(path)
}

// expandPath resolves a leading ~ and makes path absolute.
func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}
