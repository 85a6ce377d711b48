package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"urlaubsverwaltung/internal/model"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// nullString maps an empty ID to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func joinRoles(roles []model.Role) string {
	parts := make([]string, 0, len(roles))
	for _, r := range roles {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ",")
}

func splitRoles(s string) []model.Role {
	out := make([]model.Role, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, model.Role(p))
		}
	}
	return out
}

func joinNotifications(ns []model.MailNotification) string {
	parts := make([]string, 0, len(ns))
	for _, n := range ns {
		parts = append(parts, string(n))
	}
	return strings.Join(parts, ",")
}

func splitNotifications(s string) []model.MailNotification {
	out := make([]model.MailNotification, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, model.MailNotification(p))
		}
	}
	return out
}

// inClause renders "col IN ($n, $n+1, ...)" starting at placeholder first and
// appends the values to args.
func inClause[T ~string](col string, first int, values []T, args []any) (string, []any) {
	ph := make([]string, 0, len(values))
	for i, v := range values {
		ph = append(ph, fmt.Sprintf("$%d", first+i))
		args = append(args, string(v))
	}
	return fmt.Sprintf("%s IN (%s)", col, strings.Join(ph, ", ")), args
}
