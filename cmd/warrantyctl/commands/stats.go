package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"warranty/internal/domain"
)

func statsCmd(a *app) *cobra.Command {
	var role, id string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Dashboard numbers for the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.UserRole(role)
			if r == "" || id == "" {
				u, err := a.currentUser()
				if err != nil {
					return err
				}
				if r == "" {
					r = u.Role
				}
				if id == "" {
					id = userID(u)
				}
			}

			ctx := cmd.Context()
			switch r {
			case domain.RoleSeller:
				res, err := a.svc.SellerStats(ctx, id)
				return show(cmd, res, err)
			case domain.RoleCustomer:
				res, err := a.svc.CustomerStats(ctx, id)
				return show(cmd, res, err)
			case domain.RoleTechnician:
				res, err := a.svc.TechnicianStats(ctx, id)
				return show(cmd, res, err)
			}
			return fmt.Errorf("unknown role %q", r)
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "seller, customer or technician (default: session role)")
	cmd.Flags().StringVar(&id, "id", "", "user id (default: session user)")
	return cmd
}
