package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NivBraz/linefreq/internal/app"
	"github.com/NivBraz/linefreq/internal/config"
)

// NewRootCmd creates the root command for linefreq.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linefreq [input-file] [output-file]",
		Short: "Count distinct lines of a text file by frequency",
		Long: `linefreq reads a text file, trims every line, ignores blank lines and
counts how often each remaining line occurs. Lines are reported as
"<line> → <count> fois", most frequent first.

When an output file is given the report is saved there instead of being
printed. Without arguments the input file comes from the config file,
or SurfaceInfo.txt in the current directory.`,
		Version:       getVersion(),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReport,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.Flags().StringP("config", "c", "", "Path to a YAML config file")
	cmd.Flags().Bool("progress", false, "Show a progress bar on stderr while reading")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(args) > 0 {
		cfg.Input.File = args[0]
	}
	if len(args) > 1 {
		cfg.Output.File = args[1]
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Verbose = true
	}
	if progress, _ := cmd.Flags().GetBool("progress"); progress {
		cfg.Output.ShowProgress = true
	}

	application, err := app.New(cfg, cmd.OutOrStdout(), app.WithErrWriter(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Report failures were already printed for the user and keep exit status 0.
	_, _ = application.Run(cmd.Context())
	return nil
}

// Execute runs the root command.
func Execute() {
	// Create context that listens for the interrupt signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
