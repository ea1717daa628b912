package http

import (
	"errors"
	"net/http"

	historyDomain "github.com/ptbantu/crm-backend/internal/domain/history"
	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
	stageDomain "github.com/ptbantu/crm-backend/internal/domain/stage"

	"github.com/labstack/echo/v4"
)

// writeDomainError maps the workflow error taxonomy onto HTTP statuses:
// not-found 404, invalid transition 422, invalid state 409, concurrency
// conflict 409 + retryable.
func writeDomainError(c echo.Context, err error) error {
	var unmet *stageDomain.UnmetConditionsError
	switch {
	case errors.Is(err, oppDomain.ErrNotFound),
		errors.Is(err, stageDomain.ErrNotFound),
		errors.Is(err, historyDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.As(err, &unmet):
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":              "unmet transition conditions",
			"missing_conditions": unmet.Missing,
		})

	case errors.Is(err, oppDomain.ErrInvalidTransition),
		errors.Is(err, stageDomain.ErrBadRuleDocument):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	case errors.Is(err, oppDomain.ErrConcurrencyConflict):
		return c.JSON(http.StatusConflict, map[string]any{
			"error":     err.Error(),
			"retryable": true,
		})

	case errors.Is(err, oppDomain.ErrNoFurtherStage),
		errors.Is(err, oppDomain.ErrApprovalRequired),
		errors.Is(err, oppDomain.ErrStageRejected),
		errors.Is(err, historyDomain.ErrNotApprovable),
		errors.Is(err, historyDomain.ErrAlreadyDecided),
		errors.Is(err, stageDomain.ErrDuplicateCode),
		errors.Is(err, stageDomain.ErrDuplicateOrder):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
