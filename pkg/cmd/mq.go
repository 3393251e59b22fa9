package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grupovilla/gestprocesos/pkg/internal/storage/mq"
)

var (
	mqCmd = &cobra.Command{
		Use:   "mq",
		Short: "Message bus related commands",
	}

	mqListCmd = &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "list all registered mq types",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered mq types:")
			for _, mqType := range mq.GetRegisteredMQTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(mqType))
			}
		},
	}
)

func registerMQCommands() {
	rootCmd.AddCommand(mqCmd)

	mqCmd.AddCommand(mqListCmd)
}
