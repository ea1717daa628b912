package http

import (
	"net/http"

	"github.com/ptbantu/crm-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type DecisionHandler struct{ uc *approval.Usecase }

func NewDecisionHandler(uc *approval.Usecase) *DecisionHandler { return &DecisionHandler{uc: uc} }

type decideReq struct {
	Decision   string `json:"decision"    validate:"required,oneof=approved rejected"`
	ApproverID string `json:"approver_id" validate:"required,hex32"`
	Notes      string `json:"notes"       validate:"max=2000"`
}

func (h *DecisionHandler) DecideEntry(c echo.Context) error {
	entryID := c.Param("entry_id")
	if entryID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing entry_id path param"})
	}

	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Decide(c.Request().Context(), approval.DecideInput{
		EntryID:    entryID,
		Decision:   req.Decision,
		ApproverID: req.ApproverID,
		Notes:      req.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
