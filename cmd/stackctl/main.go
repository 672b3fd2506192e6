package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRoot creates the root command and wires the subcommands.
func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	serveFlags := &ServeFlags{}

	stackctlCommand := command{}

	root := createRootCommand(globalFlags)
	root.AddCommand(
		createStartCommand(stackctlCommand, globalFlags),
		createStopCommand(stackctlCommand, globalFlags),
		createStatusCommand(stackctlCommand, globalFlags),
		createServeCommand(stackctlCommand, globalFlags, serveFlags),
	)
	return root
}

// createRootCommand creates the root command with minimal persistent flags
func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "stackctl",
		Short: "Compose stack lifecycle tool",
		Long: `Stackctl starts, stops and inspects a docker compose service group,
such as the Milvus standalone stack. The compose descriptor is looked up
in the current directory and then its parent.

Examples:
  stackctl start                    # bring the stack up and confirm it
  stackctl stop                     # halt the stack
  stackctl status                   # print container states as JSON
  stackctl serve --listen=:8080     # expose start/stop/status over HTTP`,
	}

	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to TOML config file (optional)")

	return root
}

// createStartCommand creates the start subcommand
func createStartCommand(stackctlCommand command, globalFlags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the stack",
		Long: `Start the compose stack and confirm it is running.

The engine is probed first; an unreachable engine or a missing compose
descriptor aborts with exit code 1. After the start command a fixed settle
delay passes before a single status poll. An unconfirmed poll is reported
as a warning, not an error.

Examples:
  stackctl start
  stackctl start --config=stackctl.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stackctlCommand.Start(globalFlags.ConfigPath)
		},
	}
}

// createStopCommand creates the stop subcommand
func createStopCommand(stackctlCommand command, globalFlags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the stack",
		Long: `Stop the compose stack.

Exit code 1 is reserved for an unreachable engine or a missing compose
descriptor; otherwise the command exits 0 and only reports whether the
stopped state could be confirmed.

Examples:
  stackctl stop`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stackctlCommand.Stop(globalFlags.ConfigPath)
		},
	}
}

// createStatusCommand creates the status subcommand
func createStatusCommand(stackctlCommand command, globalFlags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stack status",
		Long: `Show the current state of the stack's containers as JSON.

Examples:
  stackctl status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stackctlCommand.Status(globalFlags.ConfigPath)
		},
	}
}

// createServeCommand creates the serve subcommand
func createServeCommand(stackctlCommand command, globalFlags *GlobalFlags, serveFlags *ServeFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the lifecycle API over HTTP",
		Long: `Run an HTTP server exposing POST /start, POST /stop and GET /status
for the configured stack, plus an optional Prometheus /metrics listener.

Examples:
  stackctl serve
  stackctl serve --listen=:8080 --base-path=/api
  stackctl serve --config=stackctl.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stackctlCommand.Serve(globalFlags.ConfigPath, *serveFlags)
		},
	}

	cmd.Flags().StringVar(&serveFlags.Listen, "listen", "", "listen address (overrides [server].listen)")
	cmd.Flags().StringVar(&serveFlags.BasePath, "base-path", "", "URL base path (overrides [server].base_path)")

	return cmd
}
