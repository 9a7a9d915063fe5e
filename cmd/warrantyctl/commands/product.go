package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"warranty/internal/domain"
)

func productCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "product [code]",
		Short: "Look up a product by its code, or list the demo codes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(a.svc.Data.ProductCodes(), "\n"))
				return nil
			}
			res, err := a.svc.ProductByCode(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no product with code %q", args[0])
			}
			return show(cmd, res, err)
		},
	}
}

func serialCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serial <serial>",
		Short: "Check the warranty of a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.WarrantyBySerial(cmd.Context(), args[0])
			return show(cmd, res, err)
		},
	}
}
