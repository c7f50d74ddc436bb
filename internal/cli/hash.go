package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"opsCommandCenter/internal/credentials"
)

// NewHashCommand prints a bcrypt hash of the given password. Handy for
// hand-editing users.txt without running the full seeder.
func NewHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <password>",
		Short: "Print a bcrypt hash suitable for a users.txt credential line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := credentials.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}
