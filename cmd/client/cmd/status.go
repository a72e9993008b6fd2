package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"agreementlog/cmd/client/cmd/agreement"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to the agreement server",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Server: %s\n", cfg.ServerAddress)

		if err := app.CheckConnection(); err != nil {
			color.Red("✗ server unreachable: %v", err)
			return nil
		}

		color.Green("✓ server is up")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	rootCmd.AddCommand(agreement.AgreementCmd)
	agreement.AgreementCmd.AddCommand(agreement.CreateCmd)
	agreement.AgreementCmd.AddCommand(agreement.LookupCmd)
	agreement.AgreementCmd.AddCommand(agreement.CountersignCmd)
	agreement.AgreementCmd.AddCommand(agreement.ListCmd)
	agreement.AgreementCmd.AddCommand(agreement.ReceiptsCmd)
}
