// Package cmd contains the command line interface of the service.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grupovilla/gestprocesos/pkg/app"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "gestprocesos",
		Short: "Business process tracking service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.NewApp(configPath)
			defer func() { _ = a.Close() }()

			return a.Run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose diagnostic output")

	rootCmd.AddCommand(serveCmd)

	registerDBCommands()
	registerMQCommands()
	registerConfigsCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
