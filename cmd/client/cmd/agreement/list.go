package agreement

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"agreementlog/internal/app/client"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your committed agreements",
	Long:  `List the agreements owned by the authenticated account, newest first. Requires a bearer token in the configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		entries, err := app.Dashboard(cmd.Context())
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No agreements yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "HASH\tCATEGORY\tSIGNED\tCOMMITTED\tDESCRIPTION")
		for _, e := range entries {
			signed := "-"
			if e.Countersigned {
				signed = color.GreenString("✓ %s", e.CountersignerName)
			}

			desc := e.Description
			if len(desc) > 48 {
				desc = desc[:45] + "..."
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.Hash[:12], e.Category, signed,
				e.Timestamp.Format("2006-01-02 15:04"), desc)
		}

		return w.Flush()
	},
}
