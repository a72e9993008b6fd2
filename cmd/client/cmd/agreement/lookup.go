package agreement

import (
	"fmt"

	"github.com/spf13/cobra"

	"agreementlog/internal/app/client"
)

var LookupCmd = &cobra.Command{
	Use:   "lookup <hash>",
	Short: "Resolve a fingerprint hash to its agreement text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		text, err := app.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(text)
		return nil
	},
}
