package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "github.com/ptbantu/crm-backend/internal/adapter/http"
	"github.com/ptbantu/crm-backend/internal/adapter/middleware"
	"github.com/ptbantu/crm-backend/internal/adapter/repository/mysql"
	"github.com/ptbantu/crm-backend/internal/config"
	"github.com/ptbantu/crm-backend/internal/infrastructure/cache"
	"github.com/ptbantu/crm-backend/internal/infrastructure/db"
	approvalUC "github.com/ptbantu/crm-backend/internal/usecase/approval"
	historyUC "github.com/ptbantu/crm-backend/internal/usecase/history"
	opportunityUC "github.com/ptbantu/crm-backend/internal/usecase/opportunity"
	templateUC "github.com/ptbantu/crm-backend/internal/usecase/template"
	transitionUC "github.com/ptbantu/crm-backend/internal/usecase/transition"
	"github.com/ptbantu/crm-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal("mysql connect failed", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}

	templates := mysql.NewTemplateRepository(gdb)
	opportunities := mysql.NewOpportunityRepository(gdb)
	entries := mysql.NewHistoryRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	oppUsecase := opportunityUC.NewUsecase(opportunities, templates)
	tplUsecase := templateUC.NewUsecase(templates, uow)
	trUsecase := transitionUC.NewUsecase(uow, log, cfg.ApprovalBlocking)
	apUsecase := approvalUC.NewUsecase(uow, log)
	histUsecase := historyUC.NewUsecase(opportunities, entries, templates)

	h := httpadp.NewHandler()
	oppHandler := httpadp.NewOpportunityHandler(oppUsecase)
	tplHandler := httpadp.NewTemplateHandler(tplUsecase)
	trHandler := httpadp.NewTransitionHandler(trUsecase)
	decHandler := httpadp.NewDecisionHandler(apUsecase)
	histHandler := httpadp.NewHistoryHandler(histUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	// routes
	e.GET("/health", h.Health)

	e.POST("/opportunities", oppHandler.CreateOpportunity)
	e.GET("/opportunities/:opportunity_id", oppHandler.GetOpportunity)
	e.POST("/opportunities/:opportunity_id/transition", trHandler.AdvanceOpportunity, idemp)
	e.GET("/opportunities/:opportunity_id/stage-history", histHandler.ListForOpportunity)
	e.GET("/opportunities/:opportunity_id/stage-history/current", histHandler.GetCurrent)

	e.GET("/stage-history/pending-approvals", histHandler.ListPendingApprovals)
	e.POST("/stage-history/:entry_id/decision", decHandler.DecideEntry, idemp)

	e.POST("/stage-templates", tplHandler.CreateTemplate)
	e.PUT("/stage-templates/:template_id", tplHandler.UpdateTemplate)
	e.GET("/stage-templates", tplHandler.ListTemplates)
	e.GET("/stage-templates/:code", tplHandler.GetTemplateByCode)

	addr := ":" + cfg.AppPort
	log.Info("listening", zap.String("addr", addr), zap.Bool("approval_blocking", cfg.ApprovalBlocking))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
