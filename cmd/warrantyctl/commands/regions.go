package commands

import "github.com/spf13/cobra"

func regionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.Regions(cmd.Context())
			return show(cmd, res, err)
		},
	}
}

func districtsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "districts <region-id>",
		Short: "List districts of a region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.Districts(cmd.Context(), args[0])
			return show(cmd, res, err)
		},
	}
}
