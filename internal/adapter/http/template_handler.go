package http

import (
	"encoding/json"
	"net/http"

	"github.com/ptbantu/crm-backend/internal/usecase/template"

	"github.com/labstack/echo/v4"
)

type TemplateHandler struct{ uc *template.Usecase }

func NewTemplateHandler(uc *template.Usecase) *TemplateHandler { return &TemplateHandler{uc: uc} }

type upsertTemplateReq struct {
	Code             string          `json:"code"              validate:"required,stagecode"`
	NameEn           string          `json:"name_en"           validate:"required,max=128"`
	NameAr           string          `json:"name_ar"           validate:"max=128"`
	DescriptionEn    string          `json:"description_en"`
	DescriptionAr    string          `json:"description_ar"`
	StageOrder       int             `json:"stage_order"       validate:"required,gt=0"`
	RequiresApproval bool            `json:"requires_approval"`
	ApprovalRoles    []string        `json:"approval_roles"    validate:"dive,max=64"`
	Conditions       json.RawMessage `json:"conditions"`
	IsActive         *bool           `json:"is_active"`
}

func (r upsertTemplateReq) toInput() template.UpsertTemplateInput {
	return template.UpsertTemplateInput{
		Code:             r.Code,
		NameEn:           r.NameEn,
		NameAr:           r.NameAr,
		DescriptionEn:    r.DescriptionEn,
		DescriptionAr:    r.DescriptionAr,
		StageOrder:       r.StageOrder,
		RequiresApproval: r.RequiresApproval,
		ApprovalRoles:    r.ApprovalRoles,
		Conditions:       []byte(r.Conditions),
		IsActive:         r.IsActive,
	}
}

func (h *TemplateHandler) CreateTemplate(c echo.Context) error {
	var req upsertTemplateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *TemplateHandler) UpdateTemplate(c echo.Context) error {
	templateID := c.Param("template_id")
	if !reHex32.MatchString(templateID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid template_id"})
	}
	var req upsertTemplateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), templateID, req.toInput())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	dtos, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *TemplateHandler) GetTemplateByCode(c echo.Context) error {
	code := c.Param("code")
	dto, err := h.uc.GetByCode(c.Request().Context(), code)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
