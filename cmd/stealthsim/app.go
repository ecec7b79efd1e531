package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/automoto/kradylechka/leveldata"
	"github.com/automoto/kradylechka/records"
)

type app struct {
	root        *cobra.Command
	stdout      io.Writer
	stderr      io.Writer
	openRecords func() (*records.Store, error)
}

func newApp() *app {
	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		openRecords: func() (*records.Store, error) {
			return records.Open("stealthsim")
		},
	}

	a.root = &cobra.Command{
		Use:   "stealthsim",
		Short: "Headless shop stealth simulation",
		Long: `stealthsim runs shop episodes without a window. Guards, a cashier and
customers watch a scripted burglar; every notification is logged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.root.AddCommand(
		a.newRunCmd(),
		a.newLevelCmd(),
		a.newHistoryCmd(),
	)
	return a
}

// withOutput redirects command output, for tests.
func (a *app) withOutput(stdout, stderr io.Writer) *app {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI until it finishes or the process is interrupted.
func (a *app) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

func (a *app) executeWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// loadLevel reads a TMX file from disk, or the built-in shop when path is
// empty.
func loadLevel(path string) (*leveldata.Level, error) {
	if path == "" {
		return leveldata.LoadDemo()
	}
	return leveldata.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
