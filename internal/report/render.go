package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// RenderUsers writes a formatted user table.
func RenderUsers(w io.Writer, users []dom.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tAGE\tOCCUPATION\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			u.ID, u.Name, u.Email, u.Age, u.Occupation, u.CreatedAt.Format(timeLayout))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d row(s)\n", len(users))
}

// RenderStats writes the aggregate summary.
func RenderStats(w io.Writer, s Stats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total users\t%d\n", s.UserCount)
	fmt.Fprintf(tw, "Auth users\t%d\n", s.CredentialCount)
	fmt.Fprintf(tw, "Sessions\t%d\n", s.SessionCount)
	if s.UserCount > 0 {
		fmt.Fprintf(tw, "Average age\t%.2f\n", s.AverageAge)
		fmt.Fprintf(tw, "Youngest\t%d\n", s.MinAge)
		fmt.Fprintf(tw, "Oldest\t%d\n", s.MaxAge)
		fmt.Fprintf(tw, "Most common age\t%d\n", s.MostCommonAge)
	}
	tw.Flush()
}

// RenderOccupations writes the occupation breakdown.
func RenderOccupations(w io.Writer, list []OccupationCount) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OCCUPATION\tCOUNT\tPERCENT")
	for _, oc := range list {
		fmt.Fprintf(tw, "%s\t%d\t%.2f%%\n", oc.Occupation, oc.Count, oc.Percent)
	}
	tw.Flush()
}

// RenderCredentials writes the credential list (no hashes).
func RenderCredentials(w io.Writer, list []CredentialInfo) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No auth users found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tCREATED")
	for _, ci := range list {
		fmt.Fprintf(tw, "%s\t%s\n", ci.Username, ci.CreatedAt.Format(timeLayout))
	}
	tw.Flush()
}

// RenderSessions writes the active-session table.
func RenderSessions(w io.Writer, list []dom.Session) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No active sessions.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tTOKEN\tCREATED\tEXPIRES")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			s.Username, s.Token, s.CreatedAt.Format(timeLayout), s.ExpiresAt.Format(timeLayout))
	}
	tw.Flush()
}

// RenderResult writes the outcome of a raw query.
func RenderResult(w io.Writer, r Result) {
	if r.Columns == nil {
		fmt.Fprintf(w, "OK, %d row(s) affected\n", r.Affected)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, col := range r.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
	for _, row := range r.Rows {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, val)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d row(s)\n", len(r.Rows))
}
