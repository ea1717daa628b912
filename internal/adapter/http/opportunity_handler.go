package http

import (
	"errors"
	"net/http"

	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
	"github.com/ptbantu/crm-backend/internal/usecase/opportunity"

	"github.com/labstack/echo/v4"
)

type OpportunityHandler struct{ uc *opportunity.Usecase }

func NewOpportunityHandler(uc *opportunity.Usecase) *OpportunityHandler {
	return &OpportunityHandler{uc: uc}
}

type createOpportunityReq struct {
	Title string `json:"title" validate:"required,max=256"`
}

func (h *OpportunityHandler) CreateOpportunity(c echo.Context) error {
	var req createOpportunityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), opportunity.CreateOpportunityInput{Title: req.Title})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *OpportunityHandler) GetOpportunity(c echo.Context) error {
	opportunityID := c.Param("opportunity_id")
	dto, err := h.uc.Get(c.Request().Context(), opportunityID)
	if err != nil {
		if errors.Is(err, oppDomain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
