package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
)

var errAdminOnly = errors.New("admin only")

// Users lists every account this client knows about. Admins only.
func (a *App) Users(ctx context.Context) error {
	if !a.isAdmin() {
		printlnFn("This command is available to administrators only")
		return errAdminOnly
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
	for _, u := range a.auth.KnownUsers() {
		status := u.ApplicationStatus
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.DisplayName(), u.Email, u.Role, status)
	}
	_ = w.Flush()

	printlnFn(strings.TrimRight(b.String(), "\n"))
	return nil
}
