package agreement

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"agreementlog/internal/app/client"
)

var ReceiptsCmd = &cobra.Command{
	Use:   "receipts",
	Short: "List locally stored commit receipts",
	Long:  `List the fingerprint hashes of agreements committed from this machine. Receipts are kept locally and work without a token or network access.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		receipts, err := app.Receipts()
		if err != nil {
			return err
		}

		if len(receipts) == 0 {
			fmt.Println("No receipts yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "HASH\tCATEGORY\tCOMMITTED")
		for _, r := range receipts {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Hash, r.Category, r.CreatedAt.Format("2006-01-02 15:04"))
		}

		return w.Flush()
	},
}
