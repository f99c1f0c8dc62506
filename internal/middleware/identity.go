package middleware

// identity.go defines helper functions shared across middleware files. It
// provides a userID extraction function that reads the staff identifier
// header the back-office UI sends with every request. When the header is
// absent, "guest" is returned so cache and rate-limit keys stay stable.

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// StaffHeader carries the staff member identifier on back-office requests.
const StaffHeader = "X-Staff-Id"

// userID extracts a caller identifier from the request. It returns "guest"
// when no staff identifier is present.
func userID(c echo.Context) string {
	if v := strings.TrimSpace(c.Request().Header.Get(StaffHeader)); v != "" {
		return v
	}
	return "guest"
}
