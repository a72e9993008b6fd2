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

var (
	agreementText  string
	attachmentPath string
	category       string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Commit a new agreement",
	Long: `Commit a sustainability action agreement to the server.

The server fingerprints the text (plus any attachment) with SHA-256,
stores it encrypted and returns the hash. Share the hash with the
counterparty so they can countersign.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		if agreementText == "" {
			fmt.Print("Agreement text: ")
			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
			if scanner.Scan() {
				agreementText = scanner.Text()
			}
		}
		if strings.TrimSpace(agreementText) == "" {
			return fmt.Errorf("agreement text is required")
		}

		var attachment []byte
		if attachmentPath != "" {
			data, err := os.ReadFile(attachmentPath)
			if err != nil {
				return fmt.Errorf("read attachment: %w", err)
			}
			attachment = data
		}

		hash, warning, err := app.Commit(cmd.Context(), agreementText, attachment, category)
		if err != nil {
			return err
		}

		color.Green("✓ agreement committed")
		fmt.Printf("Hash: %s\n", hash)
		if warning != "" {
			color.Yellow("⚠ %s", warning)
		}

		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&agreementText, "text", "t", "", "agreement text")
	CreateCmd.Flags().StringVarP(&attachmentPath, "attachment", "a", "", "path to an attachment file")
	CreateCmd.Flags().StringVarP(&category, "category", "c", "", "category (Sourcing, Operations or Impact)")
}
