package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"warranty/internal/domain"
)

var errNotSignedIn = errors.New("not signed in, run: warrantyctl login <phone>")

func loginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <phone>",
		Short: "Sign in with a registered phone number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.sess.CheckAuth(cmd.Context(), a.svc, strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch st {
			case domain.AuthCreated:
				u, _ := a.sess.User()
				fmt.Fprintf(out, "Signed in as %s (%s)\n", u.FirstName, u.Role)
			case domain.AuthRequested:
				fmt.Fprintln(out, "Registration is waiting for approval")
			case domain.AuthNotFound:
				fmt.Fprintln(out, "Phone is not registered, run: warrantyctl register")
			default:
				fmt.Fprintf(out, "Status: %s\n", st)
			}
			return nil
		},
	}
}

func registerCmd(a *app) *cobra.Command {
	var req domain.RegisterRequest
	var role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = domain.UserRole(role)
			resp, err := a.svc.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := a.sess.Save(cmd.Context(), resp); err != nil {
				return err
			}
			a.sess.SetStatus(resp.Status)
			fmt.Fprintf(cmd.OutOrStdout(), "Registered, status: %s\n", resp.Status)
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64Var(&req.TelegramID, "telegram-id", 0, "Telegram user id")
	f.StringVar(&req.Phone, "phone", "", "phone number")
	f.StringVar(&req.FirstName, "first-name", "", "first name")
	f.StringVar(&req.LastName, "last-name", "", "last name")
	f.StringVar(&role, "role", string(domain.RoleCustomer), "seller, customer or technician")
	f.StringVar(&req.Company, "company", "", "company (sellers and technicians)")
	f.Int64Var(&req.RegionID, "region", 0, "region id (sellers and technicians)")
	f.Int64Var(&req.DistrictID, "district", 0, "district id (sellers and technicians)")
	_ = cmd.MarkFlagRequired("telegram-id")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("first-name")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved user and token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
}
