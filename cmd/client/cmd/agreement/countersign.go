package agreement

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"agreementlog/internal/app/client"
)

var signerName string

var CountersignCmd = &cobra.Command{
	Use:   "countersign <hash>",
	Short: "Countersign an agreement shared with you",
	Long: `Countersign an agreement by its fingerprint hash. The signature is
recorded once; a second attempt on the same agreement is rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		if signerName == "" {
			fmt.Print("Your name: ")
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				signerName = scanner.Text()
			}
		}
		if strings.TrimSpace(signerName) == "" {
			return fmt.Errorf("signer name is required")
		}

		warning, err := app.Countersign(cmd.Context(), args[0], signerName)
		if err != nil {
			return err
		}

		color.Green("✓ agreement countersigned as %q", signerName)
		if warning != "" {
			color.Yellow("⚠ %s", warning)
		}

		return nil
	},
}

func init() {
	CountersignCmd.Flags().StringVarP(&signerName, "name", "n", "", "display name to sign with")
}
