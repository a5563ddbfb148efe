// Package cmd implements the peek command line.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Iron-Ham/peek/internal/config"
	"github.com/Iron-Ham/peek/internal/editor"
	perrors "github.com/Iron-Ham/peek/internal/errors"
	"github.com/Iron-Ham/peek/internal/keymap"
	"github.com/Iron-Ham/peek/internal/logging"
	"github.com/Iron-Ham/peek/internal/styles"
	"github.com/Iron-Ham/peek/internal/terminal"
	"github.com/Iron-Ham/peek/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = newRootCmd(viper.GetViper())

// isTerminal reports whether fd is attached to a terminal.
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Execute runs the root command. Errors are reported on stderr as
// "Error: <message>" once the terminal has been restored.
func Execute() error {
	return execute(rootCmd)
}

func execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		reportError(root.ErrOrStderr(), err)
	}
	return err
}

func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, styles.ForWriter(w).FormatError(err))
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           version.Name + " [PATH]",
		Short:         "A minimal terminal text viewer",
		Long:          longHelp(keymap.DefaultKeymap()),
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, v, args)
		},
	}

	defaults := config.Default()
	flags := cmd.Flags()
	flags.String("log-file", defaults.Logging.File, "append JSON logs to this file (disabled when empty)")
	flags.String("log-level", defaults.Logging.Level, "log level: debug, info, warn, error")
	flags.Bool("debug", defaults.Editor.PanicOnReadError, "panic on terminal read errors instead of ignoring them")
	flags.Bool("keys", false, "print the key bindings and exit")

	config.ApplyDefaults(v)
	config.BindEnv(v)
	_ = v.BindPFlag("logging.file", flags.Lookup("log-file"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("editor.panic_on_read_error", flags.Lookup("debug"))

	return cmd
}

// longHelp describes the viewer, naming the quit keys bound in km.
func longHelp(km *keymap.Keymap) string {
	var quit []string
	for _, binding := range km.BindingsForCommand(keymap.CmdQuit) {
		quit = append(quit, binding.String())
	}
	return fmt.Sprintf(`peek opens a text file (or nothing) full-screen in the terminal.

Move the caret with the arrow keys, Home/End and PageUp/PageDown.
Press %s to quit. Run with --keys for every binding.`, strings.Join(quit, " or "))
}

func runRoot(cmd *cobra.Command, v *viper.Viper, args []string) error {
	if showKeys, _ := cmd.Flags().GetBool("keys"); showKeys {
		printKeys(cmd.OutOrStdout(), keymap.DefaultKeymap())
		return nil
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Close()

	if !isTerminal(os.Stdin.Fd()) || !isTerminal(os.Stdout.Fd()) {
		return perrors.NewTerminalError("check terminal", nil).WithSentinel(perrors.ErrNotATerminal)
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	return runViewer(cfg, logger, path)
}

// runViewer owns the terminal until the editor is closed. Every return path,
// including a panic, leaves the terminal in cooked mode.
func runViewer(cfg *config.Config, logger *logging.Logger, path string) error {
	defer editor.RestoreOnPanic()

	term := terminal.New(os.Stdin, os.Stdout, terminal.WithLogger(logger))
	ed, err := editor.New(term,
		editor.WithLogger(logger),
		editor.WithConfig(cfg.Editor),
	)
	if err != nil {
		return err
	}
	defer ed.Close()

	if path != "" {
		if err := ed.Open(path); err != nil {
			return err
		}
	}
	return ed.Run()
}
