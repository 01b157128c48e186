package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/heva-credit/heva/internal/client/models"
)

// Update reads field=value lines and applies them to the signed-in profile.
func (a *App) Update(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in")
		return errNotSignedIn
	}

	lines, err := getAssignments(a.reader, os.Stdout)
	if err != nil {
		return err
	}
	patch, err := parsePatch(lines)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	u, err := a.auth.UpdateUser(ctx, patch)
	if err != nil {
		reportError(err)
		return err
	}

	printlnFn("Profile updated")
	printlnFn(renderProfile(u))
	return nil
}

var getAssignments = GetAssignments

// parsePatch turns "field=value" lines into a UserPatch. Field names are the
// JSON names of User. The id cannot be changed.
func parsePatch(lines []string) (models.UserPatch, error) {
	var p models.UserPatch
	for _, line := range lines {
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return models.UserPatch{}, fmt.Errorf("malformed line %q, want field=value", line)
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)

		switch name {
		case "name":
			p.Name = models.Ptr(value)
		case "firstName":
			p.FirstName = models.Ptr(value)
		case "lastName":
			p.LastName = models.Ptr(value)
		case "industry":
			p.Industry = models.Ptr(value)
		case "businessName":
			p.BusinessName = models.Ptr(value)
		case "location":
			p.Location = models.Ptr(value)
		case "applicationStatus":
			p.ApplicationStatus = models.Ptr(value)
		case "creditScore", "yearsInBusiness":
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.UserPatch{}, fmt.Errorf("%s must be a whole number", name)
			}
			if name == "creditScore" {
				p.CreditScore = models.Ptr(n)
			} else {
				p.YearsInBusiness = models.Ptr(n)
			}
		case "id":
			return models.UserPatch{}, errors.New("id cannot be changed")
		default:
			return models.UserPatch{}, fmt.Errorf("unknown field %q", name)
		}
	}
	return p, nil
}

func renderProfile(u models.User) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(w, "%s\t%s\n", k, v)
		}
	}
	num := func(k string, v int) {
		if v != 0 {
			row(k, strconv.Itoa(v))
		}
	}

	row("Name", u.DisplayName())
	row("Email", u.Email)
	row("Role", string(u.Role))
	row("Business", u.BusinessName)
	row("Industry", u.Industry)
	row("Location", u.Location)
	num("Years in business", u.YearsInBusiness)
	num("Credit score", u.CreditScore)
	row("Application", u.ApplicationStatus)
	row("Member since", u.JoinDate)
	_ = w.Flush()

	return strings.TrimRight(b.String(), "\n")
}
