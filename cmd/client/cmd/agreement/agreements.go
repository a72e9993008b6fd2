package agreement

import (
	"github.com/spf13/cobra"
)

// AgreementCmd is the parent command for all agreement operations.
var AgreementCmd = &cobra.Command{
	Use:   "agreement",
	Short: "Commit, look up and countersign agreements",
	Long:  `Commit new agreements, resolve fingerprint hashes to their text, countersign agreements shared with you and list your own.`,
}
