package http

import (
	"context"
	"net/http"
	"testing"

	oppDomain "github.com/ptbantu/crm-backend/internal/domain/opportunity"
	stageDomain "github.com/ptbantu/crm-backend/internal/domain/stage"
	"github.com/ptbantu/crm-backend/internal/testutil/opportunitymock"
	"github.com/ptbantu/crm-backend/internal/testutil/templatemock"
	"github.com/ptbantu/crm-backend/internal/usecase/opportunity"

	"gorm.io/gorm"
)

func opportunityFixture() *OpportunityHandler {
	stageID := uint64(20)
	repo := &opportunitymock.Repo{
		CreateFn: func(ctx context.Context, o *oppDomain.Opportunity) error { return nil },
		GetByOpportunityIDFn: func(ctx context.Context, id string) (*oppDomain.Opportunity, error) {
			if id != testOppID {
				return nil, gorm.ErrRecordNotFound
			}
			return &oppDomain.Opportunity{
				ID: 1, OpportunityID: id, Title: "Acme deal",
				CurrentStageID: &stageID, WorkflowStatus: oppDomain.StatusActive,
			}, nil
		},
	}
	tpls := &templatemock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*stageDomain.Template, error) {
			return &stageDomain.Template{ID: id, Code: "quoted", StageOrder: 2}, nil
		},
	}
	return NewOpportunityHandler(opportunity.NewUsecase(repo, tpls))
}

func TestOpportunityHandler_CreateOpportunity(t *testing.T) {
	h := opportunityFixture()

	t.Run("creates an opportunity", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodPost, "/opportunities", `{"title":"Acme deal"}`)
		if err := h.CreateOpportunity(c); err != nil {
			t.Fatalf("handler returned %v", err)
		}
		wantStatus(t, rec, http.StatusCreated)

		var body struct {
			OpportunityID    string `json:"opportunity_id"`
			Title            string `json:"title"`
			CurrentStageCode string `json:"current_stage_code"`
		}
		decodeBody(t, rec, &body)
		if len(body.OpportunityID) != 32 || body.Title != "Acme deal" {
			t.Fatalf("body wrong: %+v", body)
		}
		if body.CurrentStageCode != "" {
			t.Fatalf("new opportunity must not carry a stage: %+v", body)
		}
	})

	t.Run("missing title fails validation", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodPost, "/opportunities", `{}`)
		if err := h.CreateOpportunity(c); err != nil {
			t.Fatalf("handler returned %v", err)
		}
		wantStatus(t, rec, http.StatusUnprocessableEntity)
	})
}

func TestOpportunityHandler_GetOpportunity(t *testing.T) {
	h := opportunityFixture()

	t.Run("resolves the current stage code", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodGet, "/opportunities/"+testOppID, "")
		c.SetParamNames("opportunity_id")
		c.SetParamValues(testOppID)
		if err := h.GetOpportunity(c); err != nil {
			t.Fatalf("handler returned %v", err)
		}
		wantStatus(t, rec, http.StatusOK)

		var body struct {
			CurrentStageCode string `json:"current_stage_code"`
			WorkflowStatus   string `json:"workflow_status"`
		}
		decodeBody(t, rec, &body)
		if body.CurrentStageCode != "quoted" || body.WorkflowStatus != "active" {
			t.Fatalf("body wrong: %+v", body)
		}
	})

	t.Run("unknown opportunity is 404", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodGet, "/opportunities/"+missingTplID, "")
		c.SetParamNames("opportunity_id")
		c.SetParamValues(missingTplID)
		if err := h.GetOpportunity(c); err != nil {
			t.Fatalf("handler returned %v", err)
		}
		wantStatus(t, rec, http.StatusNotFound)
	})
}
