package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/servicehub/account-service/internal/account"
	"github.com/servicehub/account-service/internal/metrics"
)

// bindingError collapses all field violations into one joined message,
// "field: reason, field: reason".
func bindingError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			reason := fe.Tag()
			if fe.Param() != "" {
				reason += "=" + fe.Param()
			}
			parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), reason))
		}
		return strings.Join(parts, ", ")
	}
	return "invalid json"
}

// writeErr maps the account error taxonomy onto HTTP statuses and counts the
// outcome. Anything outside the taxonomy is a 500 with the underlying
// message.
func writeErr(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	outcome := "error"
	msg := err.Error()

	var br *account.BadRequestError
	switch {
	case errors.Is(err, account.ErrEmailTaken):
		status, outcome, msg = http.StatusConflict, "conflict", "Email already in use!"
	case errors.Is(err, account.ErrNotFound):
		status, outcome, msg = http.StatusNotFound, "not_found", "User not found"
	case errors.Is(err, account.ErrNotVerified):
		status, outcome, msg = http.StatusUnauthorized, "unauthorized", "Please verify your email before logging in"
	case errors.Is(err, account.ErrUnauthorized):
		status, outcome, msg = http.StatusUnauthorized, "unauthorized", "Invalid credentials"
	case errors.As(err, &br):
		status, outcome, msg = http.StatusBadRequest, "bad_request", br.Message
	}

	if op != "" {
		metrics.AuthOps.WithLabelValues(op, outcome).Inc()
	}
	c.JSON(status, gin.H{"error": msg})
}
