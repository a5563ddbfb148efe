package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/peek/internal/config"
	perrors "github.com/Iron-Ham/peek/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// withoutTerminal makes the terminal check fail for the duration of the test.
func withoutTerminal(t *testing.T) {
	t.Helper()

	original := isTerminal
	isTerminal = func(uintptr) bool { return false }
	t.Cleanup(func() { isTerminal = original })
}

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}
	if rootCmd.Name() != "peek" {
		t.Errorf("rootCmd.Name() = %q, want %q", rootCmd.Name(), "peek")
	}
	if rootCmd.Use != "peek [PATH]" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "peek [PATH]")
	}

	for _, name := range []string{"log-file", "log-level", "debug", "keys"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}
}

func TestRootCommand_HelpNamesQuitKey(t *testing.T) {
	output, err := executeCommand(newRootCmd(viper.New()), "--help")
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}
	if !strings.Contains(output, "Press ctrl+q to quit.") {
		t.Errorf("help does not name the quit key:\n%s", output)
	}
}

func TestRootCommand_Version(t *testing.T) {
	output, err := executeCommand(newRootCmd(viper.New()), "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if output != "peek version 0.1.0\n" {
		t.Errorf("output = %q, want %q", output, "peek version 0.1.0\n")
	}
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	_, err := executeCommand(newRootCmd(viper.New()), "a.txt", "b.txt")
	if err == nil {
		t.Fatal("expected error for two paths")
	}
	if !strings.Contains(err.Error(), "accepts at most 1 arg") {
		t.Errorf("error = %q, want argument count error", err.Error())
	}
}

func TestRootCommand_Keys(t *testing.T) {
	output, err := executeCommand(newRootCmd(viper.New()), "--keys")
	if err != nil {
		t.Fatalf("--keys failed: %v", err)
	}

	for _, want := range []string{
		"Navigation",
		"Application",
		"up, shift+up, ctrl+up, ctrl+shift+up",
		"pgdown, ctrl+pgdown",
		"Quit",
		"ctrl+q",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Index(output, "Navigation") > strings.Index(output, "Application") {
		t.Error("categories are not listed in declaration order")
	}
}

func TestRootCommand_NotATerminal(t *testing.T) {
	withoutTerminal(t)

	_, err := executeCommand(newRootCmd(viper.New()))
	if !perrors.Is(err, perrors.ErrNotATerminal) {
		t.Errorf("error = %v, want ErrNotATerminal", err)
	}
}

func TestRootCommand_CreatesLogFile(t *testing.T) {
	withoutTerminal(t)
	path := filepath.Join(t.TempDir(), "logs", "peek.log")

	_, err := executeCommand(newRootCmd(viper.New()), "--log-file", path, "--log-level", "debug")
	if !perrors.Is(err, perrors.ErrNotATerminal) {
		t.Fatalf("error = %v, want ErrNotATerminal", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  string
	}{
		{name: "flag", args: []string{"--log-level", "loud"}},
		{name: "environment", env: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withoutTerminal(t)
			if tt.env != "" {
				t.Setenv("PEEK_LOGGING_LEVEL", tt.env)
			}

			_, err := executeCommand(newRootCmd(viper.New()), tt.args...)
			var verrs config.ValidationErrors
			if !perrors.As(err, &verrs) {
				t.Fatalf("error = %v, want ValidationErrors", err)
			}
			if verrs[0].Field != "logging.level" {
				t.Errorf("Field = %q, want logging.level", verrs[0].Field)
			}
		})
	}
}

func TestExecute_ReportsError(t *testing.T) {
	root := newRootCmd(viper.New())
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"a.txt", "b.txt"})

	if err := execute(root); err == nil {
		t.Fatal("execute() error = nil, want error")
	}
	want := "Error: accepts at most 1 arg(s), received 2\n"
	if stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", stdout.String())
	}
}
