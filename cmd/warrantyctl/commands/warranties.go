package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"warranty/internal/domain"
)

func warrantiesCmd(a *app) *cobra.Command {
	var f domain.WarrantyFilter
	cmd := &cobra.Command{
		Use:   "warranties",
		Short: "List warranties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// without explicit owners, scope to the signed-in user's role
			if f.SellerID == "" && f.CustomerID == "" {
				if u, ok := a.sess.User(); ok {
					switch u.Role {
					case domain.RoleSeller:
						f.SellerID = userID(u)
					case domain.RoleCustomer:
						f.CustomerID = userID(u)
					}
				}
			}
			res, err := a.svc.Warranties(cmd.Context(), f)
			return show(cmd, res, err)
		},
	}
	cmd.Flags().StringVar(&f.SellerID, "seller", "", "seller id")
	cmd.Flags().StringVar(&f.CustomerID, "customer", "", "customer id")
	cmd.Flags().StringVar(&f.Status, "status", "", "active, expired or pending")
	cmd.Flags().StringVar(&f.Search, "search", "", "match serial, product or customer")
	return cmd
}

func warrantyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "warranty <id>",
		Short: "Show one warranty with its service history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.Warranty(cmd.Context(), args[0])
			return show(cmd, res, err)
		},
	}
}

func newWarrantyCmd(a *app) *cobra.Command {
	var req domain.CreateWarrantyRequest
	cmd := &cobra.Command{
		Use:   "new-warranty",
		Short: "Register a warranty for a sold unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.currentUser(); err != nil {
				return err
			}
			w, err := a.svc.CreateWarranty(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Warranty %s created\n", w.ID)
			return printJSON(cmd.OutOrStdout(), w)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.ProductCode, "product", "", "product code")
	f.StringVar(&req.SerialNumber, "serial", "", "serial number")
	f.StringVar(&req.CustomerName, "customer-name", "", "customer name")
	f.StringVar(&req.CustomerPhone, "customer-phone", "", "customer phone")
	f.IntVar(&req.WarrantyPeriod, "months", 12, "warranty period in months")
	return cmd
}

func servicesCmd(a *app) *cobra.Command {
	var f domain.ServiceFilter
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List service records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.TechnicianID == "" && f.CustomerID == "" {
				if u, ok := a.sess.User(); ok {
					switch u.Role {
					case domain.RoleTechnician:
						f.TechnicianID = userID(u)
					case domain.RoleCustomer:
						f.CustomerID = userID(u)
					}
				}
			}
			res, err := a.svc.Services(cmd.Context(), f)
			return show(cmd, res, err)
		},
	}
	cmd.Flags().StringVar(&f.TechnicianID, "technician", "", "technician id")
	cmd.Flags().StringVar(&f.CustomerID, "customer", "", "customer id")
	cmd.Flags().StringVar(&f.Status, "status", "", "pending, in_progress, completed or cancelled")
	cmd.Flags().StringVar(&f.Search, "search", "", "match serial, product or customer")
	return cmd
}

func serviceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "service <id>",
		Short: "Show one service record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.Service(cmd.Context(), args[0])
			return show(cmd, res, err)
		},
	}
}

func newServiceCmd(a *app) *cobra.Command {
	var req domain.CreateServiceRequest
	cmd := &cobra.Command{
		Use:   "new-service",
		Short: "Log a repair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.currentUser(); err != nil {
				return err
			}
			s, err := a.svc.CreateService(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Service %s created\n", s.ID)
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.SerialNumber, "serial", "", "serial number")
	f.StringVar(&req.Problem, "problem", "", "reported problem")
	f.StringVar(&req.Solution, "solution", "", "work done")
	f.BoolVar(&req.IsWarranty, "warranty", false, "covered by warranty")
	f.Int64Var(&req.Price, "price", 0, "price in so'm, 0 for warranty repairs")
	return cmd
}
