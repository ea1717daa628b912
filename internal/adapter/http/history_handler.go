package http

import (
	"net/http"

	"github.com/ptbantu/crm-backend/internal/usecase/history"

	"github.com/labstack/echo/v4"
)

type HistoryHandler struct{ uc *history.Usecase }

func NewHistoryHandler(uc *history.Usecase) *HistoryHandler { return &HistoryHandler{uc: uc} }

func (h *HistoryHandler) ListForOpportunity(c echo.Context) error {
	opportunityID := c.Param("opportunity_id")
	includeCurrent := c.QueryParam("include_current") != "false"

	dtos, err := h.uc.ListForOpportunity(c.Request().Context(), opportunityID, includeCurrent)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *HistoryHandler) GetCurrent(c echo.Context) error {
	opportunityID := c.Param("opportunity_id")

	dto, err := h.uc.GetCurrent(c.Request().Context(), opportunityID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *HistoryHandler) ListPendingApprovals(c echo.Context) error {
	opportunityID := c.QueryParam("opportunity_id")
	if opportunityID != "" && !reHex32.MatchString(opportunityID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid opportunity_id"})
	}

	dtos, err := h.uc.ListPendingApprovals(c.Request().Context(), opportunityID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
