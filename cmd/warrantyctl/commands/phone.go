package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"warranty/internal/phone"
)

func phoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phone <number>",
		Short: "Format a phone number as +998 XX XXX-XX-XX",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := phone.Normalize(strings.Join(args, " "))
			valid := "valid"
			if !phone.IsValid(n) {
				valid = "invalid, expected " + phone.Placeholder
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", n, valid)
			return nil
		},
	}
}
