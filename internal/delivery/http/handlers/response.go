package handlers

import (
	"errors"
	"net/http"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondDomainError maps usecase errors to a status and a stable code.
// Internal errors are not echoed to the client.
func RespondDomainError(c *gin.Context, err error) {
	status, code := classifyError(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		RespondError(c, status, code, errors.New("internal error"))
		return
	}
	RespondError(c, status, code, err)
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAllocationInput):
		return http.StatusBadRequest, "invalid_allocation_input"
	case errors.Is(err, domain.ErrInvalidRule),
		errors.Is(err, domain.ErrInvalidLead),
		errors.Is(err, domain.ErrInvalidOwner):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrNoActivePages):
		return http.StatusServiceUnavailable, "no_active_pages"
	case errors.Is(err, domain.ErrDuplicateLead):
		return http.StatusConflict, "duplicate_lead"
	case errors.Is(err, domain.ErrLeadNotFound):
		return http.StatusNotFound, "lead_not_found"
	case errors.Is(err, domain.ErrRuleNotFound), errors.Is(err, domain.ErrOwnerNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrNoOwnerAssigned):
		return http.StatusConflict, "no_owner_assigned"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondBadRequest(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, "bad_request", err)
}
