package http

import (
	"net/http"

	"github.com/ptbantu/crm-backend/internal/usecase/transition"

	"github.com/labstack/echo/v4"
)

type TransitionHandler struct{ uc *transition.Usecase }

func NewTransitionHandler(uc *transition.Usecase) *TransitionHandler {
	return &TransitionHandler{uc: uc}
}

type transitionReq struct {
	// Empty means "advance to the next stage in order".
	TargetTemplateID string   `json:"target_template_id" validate:"omitempty,hex32"`
	ConditionsMet    []string `json:"conditions_met"`
	Notes            string   `json:"notes" validate:"max=2000"`
}

func (h *TransitionHandler) AdvanceOpportunity(c echo.Context) error {
	opportunityID := c.Param("opportunity_id")
	if opportunityID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing opportunity_id path param"})
	}

	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Advance(c.Request().Context(), transition.AdvanceInput{
		OpportunityID:    opportunityID,
		TargetTemplateID: req.TargetTemplateID,
		ConditionsMet:    req.ConditionsMet,
		Notes:            req.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
