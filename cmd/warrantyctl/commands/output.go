package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"warranty/internal/domain"
	"warranty/internal/fallback"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// show prints a read result, flagging demo data on stderr.
func show[T any](cmd *cobra.Command, res fallback.Result[T], err error) error {
	if err != nil {
		return err
	}
	if res.IsFallback() {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: API unreachable, showing demo data")
	}
	return printJSON(cmd.OutOrStdout(), res.Value)
}

func (a *app) currentUser() (domain.User, error) {
	u, ok := a.sess.User()
	if !ok {
		return domain.User{}, errNotSignedIn
	}
	return u, nil
}

func userID(u domain.User) string {
	return strconv.FormatInt(u.ID, 10)
}
