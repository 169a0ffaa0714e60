package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	analysisUsecases "github.com/aegis-support/aegis/internal/application/analysis/usecases"
	authUsecases "github.com/aegis-support/aegis/internal/application/auth/usecases"
	guidanceUsecases "github.com/aegis-support/aegis/internal/application/guidance/usecases"
	issueUsecases "github.com/aegis-support/aegis/internal/application/issue/usecases"
	monitorUsecases "github.com/aegis-support/aegis/internal/application/monitor/usecases"
	"github.com/aegis-support/aegis/internal/domain/analysis"
	"github.com/aegis-support/aegis/internal/infrastructure/auth"
	"github.com/aegis-support/aegis/internal/infrastructure/cache"
	"github.com/aegis-support/aegis/internal/infrastructure/config"
	"github.com/aegis-support/aegis/internal/infrastructure/llm"
	"github.com/aegis-support/aegis/internal/infrastructure/repository"
	"github.com/aegis-support/aegis/internal/infrastructure/scheduler"
	alerthandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/alert"
	analysishandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/analysis"
	authhandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/auth"
	guidancehandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/guidance"
	healthhandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/health"
	issuehandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/issue"
	"github.com/aegis-support/aegis/internal/interfaces/http/middleware"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

// Container wires repositories, use cases, handlers and background jobs
// together, and owns the pieces that need graceful shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	store cache.Store

	authMiddleware *middleware.AuthMiddleware

	authHandler     *authhandlers.AuthHandler
	issueHandler    *issuehandlers.IssueHandler
	analysisHandler *analysishandlers.AnalysisHandler
	guidanceHandler *guidancehandlers.GuidanceHandler
	alertHandler    *alerthandlers.AlertHandler
	healthHandler   *healthhandlers.HealthHandler

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer builds the full dependency graph. redisClient may be nil;
// the cache layer then runs in memory.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	c.store = cache.NewStore(
		redisClient,
		cfg.Cache.MemoryMaxEntries,
		time.Duration(cfg.Cache.DefaultTTL)*time.Second,
		log,
	)

	agentRepo := repository.NewAgentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	classifier := analysis.NewClassifier()
	vectorizer := analysis.NewVectorizer()
	index := analysis.NewIndex(vectorizer.Dims())
	generator := llm.NewAnthropicGenerator(&cfg.LLM, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpHours)

	historyTTL := time.Duration(cfg.Cache.CustomerHistoryTTL) * time.Second
	similarityTTL := time.Duration(cfg.Cache.SimilarityTTL) * time.Second
	templateTTL := time.Duration(cfg.Cache.TemplateTTL) * time.Second

	historyUC := analysisUsecases.NewGetCustomerHistoryUseCase(customerRepo, issueRepo, c.store, historyTTL, log)
	analyzeUC := analysisUsecases.NewAnalyzeIssueUseCase(
		issueRepo, customerRepo, classifier, vectorizer, index, historyUC, c.store, cfg.Analysis, log,
	)
	similarUC := analysisUsecases.NewFindSimilarIssuesUseCase(
		issueRepo, vectorizer, index, c.store, similarityTTL, cfg.Analysis, log,
	)
	warmUC := analysisUsecases.NewWarmIndexUseCase(issueRepo, vectorizer, index, log)

	getIssueUC := issueUsecases.NewGetIssueUseCase(issueRepo, commentRepo, log)
	listIssuesUC := issueUsecases.NewListIssuesUseCase(issueRepo, log)
	updateStatusUC := issueUsecases.NewUpdateIssueStatusUseCase(issueRepo, c.store, log)
	addCommentUC := issueUsecases.NewAddCommentUseCase(issueRepo, commentRepo, log)

	sweepUC := monitorUsecases.NewSweepUseCase(issueRepo, alertRepo, cfg.Monitor, log)
	listAlertsUC := monitorUsecases.NewListActiveAlertsUseCase(alertRepo, issueRepo, log)
	acknowledgeUC := monitorUsecases.NewAcknowledgeAlertUseCase(alertRepo, log)

	generateTemplateUC := guidanceUsecases.NewGenerateTemplateUseCase(
		issueRepo, commentRepo, customerRepo, templateRepo, generator, log,
	)
	summarizeUC := guidanceUsecases.NewSummarizeIssueUseCase(issueRepo, commentRepo, summaryRepo, generator, log)
	listTemplatesUC := guidanceUsecases.NewListTemplatesUseCase(templateRepo, c.store, templateTTL, log)
	rateTemplateUC := guidanceUsecases.NewRateTemplateUseCase(templateRepo, c.store, log)

	loginUC := authUsecases.NewLoginUseCase(agentRepo, hasher, jwtSvc, log)

	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, log)

	c.authHandler = authhandlers.NewAuthHandler(loginUC)
	c.issueHandler = issuehandlers.NewIssueHandler(getIssueUC, listIssuesUC, updateStatusUC, addCommentUC)
	c.analysisHandler = analysishandlers.NewAnalysisHandler(analyzeUC, similarUC, historyUC)
	c.guidanceHandler = guidancehandlers.NewGuidanceHandler(generateTemplateUC, summarizeUC, listTemplatesUC, rateTemplateUC)
	c.alertHandler = alerthandlers.NewAlertHandler(listAlertsUC, acknowledgeUC)
	c.healthHandler = healthhandlers.NewHealthHandler(db, redisClient)

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return nil, err
	}
	if err := manager.RegisterIndexWarmupJob(warmUC); err != nil {
		return nil, err
	}
	sweepInterval := time.Duration(cfg.Monitor.SweepIntervalMinutes) * time.Minute
	if err := manager.RegisterSweepJob(sweepUC, sweepInterval); err != nil {
		return nil, err
	}
	c.schedulerManager = manager

	return c, nil
}

// Engine returns the Gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// StartBackgroundJobs starts the sweep loop and the index warmup.
func (c *Container) StartBackgroundJobs() {
	c.schedulerManager.Start()
}

// Shutdown stops background jobs and releases shared clients.
func (c *Container) Shutdown() {
	if err := c.schedulerManager.Stop(); err != nil {
		c.log.Errorw("failed to stop scheduler", "error", err)
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close redis client", "error", err)
		}
	}
}
