package handler // handler defines http handlers

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"boxoffice/internal/failure"
	"boxoffice/internal/model"
)

// sessionTerminal extracts the terminal identity stored by the session
// middleware.  An empty ID means the route was wired without SessionAuth,
// which is a programming error surfaced as 401 rather than a panic.
func sessionTerminal(c echo.Context) (id, name string, err error) {
	id, _ = c.Get("terminal_id").(string)
	name, _ = c.Get("terminal_name").(string)
	if id == "" {
		return "", "", failure.Unauthorized("no terminal session")
	}
	return id, name, nil
}

// parseSlot reads and validates the date and show query parameters
// shared by the slot-scoped endpoints.
func parseSlot(c echo.Context) (date string, show model.Show, err error) {
	date = strings.TrimSpace(c.QueryParam("date"))
	if _, perr := time.Parse(model.DateLayout, date); perr != nil {
		return "", "", failure.Validation("date must be a valid YYYY-MM-DD date")
	}
	show, ok := model.ParseShow(strings.TrimSpace(c.QueryParam("show")))
	if !ok {
		return "", "", failure.Validation("show must be one of MORNING, MATINEE, EVENING, NIGHT")
	}
	return date, show, nil
}

// parseOptionalShow reads the show query parameter when present.  An
// empty parameter returns the zero Show, which repositories treat as
// "all slots".
func parseOptionalShow(c echo.Context) (model.Show, error) {
	raw := strings.TrimSpace(c.QueryParam("show"))
	if raw == "" {
		return "", nil
	}
	show, ok := model.ParseShow(raw)
	if !ok {
		return "", failure.Validation("show must be one of MORNING, MATINEE, EVENING, NIGHT")
	}
	return show, nil
}

// dedupeSeats trims, uppercases and deduplicates seat identifiers while
// keeping their request order.
func dedupeSeats(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
