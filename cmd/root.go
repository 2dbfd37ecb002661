package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const appName = "mod-profile"

var (
	configPath string
	verbose    bool
)

// errUnrecognized is returned after the command list has already been printed.
var errUnrecognized = errors.New("unrecognized command")

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Mod Profile Switcher",
	Long: `=== Mod Profile Switcher ===

Save, load and delete named snapshots of a mod working directory's
data and tags folders, or reset them from data.zip and tags.zip.

Examples:
  mod-profile setup ~/games/halo-ce
  mod-profile save vanilla-plus
  mod-profile load vanilla-plus
  mod-profile status`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Unrecognized command. Available commands:")
		fmt.Fprint(out, commandList(cmd.Root()))
		return errUnrecognized
	},
}

var helpCmd = &cobra.Command{
	Use:     "help [command]",
	Aliases: []string{"?"},
	Short:   "Show help for a command",
	Args:    arity(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		if len(args) == 0 {
			return root.Help()
		}
		target, _, err := root.Find(args)
		if err != nil || target == root {
			fmt.Fprintln(cmd.OutOrStdout(), "Unrecognized command. Available commands:")
			fmt.Fprint(cmd.OutOrStdout(), commandList(root))
			return errUnrecognized
		}
		return target.Help()
	},
}

// Execute runs the CLI against os.Args and exits with its status.
func Execute() {
	// Allow the setup prompt when started by double-click on Windows.
	cobra.MousetrapHelpText = ""
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code:
// 0 on success, 2 for usage errors and 1 for everything else.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	resetFlags()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var usage *UsageError
	switch {
	case errors.Is(err, errUnrecognized):
		return 2
	case errors.As(err, &usage):
		fmt.Fprintln(stderr, usage.Error())
		return 2
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func resetFlags() {
	configPath = ""
	verbose = false
	assumeYes = false
	setupForce = false
	historyLimit = defaultHistoryLimit
}

// commandList renders one usage line per available command.
func commandList(root *cobra.Command) string {
	var b strings.Builder
	for _, c := range root.Commands() {
		isHelp := c.Name() == "help"
		if !c.IsAvailableCommand() && !isHelp {
			continue
		}
		fmt.Fprintf(&b, "\t%s\n", usageLine(c))
		if isHelp {
			fmt.Fprintf(&b, "\t%s ?\n", root.Name())
		}
	}
	return b.String()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $MOD_PROFILE_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print debug logging to stderr")
	rootCmd.SetHelpCommand(helpCmd)
}
