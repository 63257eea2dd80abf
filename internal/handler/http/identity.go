package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/stafftrack/attendance-backend-go/internal/domain/auth"
)

// employeeIDFromRequest extracts the authenticated employee identity from the
// verified token claims. AuthRequired has already rejected tokens without one.
func employeeIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", auth.ErrMissingIdentity
	}
	return employeeID, nil
}
