package v1

import (
	"net/http"
	"time"

	"go-hiring-assistant/config"
	"go-hiring-assistant/internal/delivery/http/middleware"
	"go-hiring-assistant/internal/delivery/http/response"
	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/internal/usecase"
	"go-hiring-assistant/pkg/sessiontoken"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	InterviewUC domain.InterviewUsecase
	ExportUC    domain.ExportUsecase
	HealthUC    usecase.HealthUsecase
	Signer      *sessiontoken.Signer
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c)
		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Browser routes carry the session and CSRF cookies
	browser := v1.Group("")
	browser.Use(middleware.CSRFMiddleware(middleware.DefaultCSRFConfig(cfg.CookieSecure)))
	browser.Use(middleware.SessionMiddleware(deps.Signer, middleware.SessionCookieConfig{
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	}))

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	llmLimit := middleware.RateLimitMiddleware(middleware.LLMRateLimitConfig(cfg.RateLimitLLMThreshold, window))

	admin := v1.Group("")
	admin.Use(middleware.AdminTokenMiddleware(cfg.AdminToken))

	NewSessionHandler(browser, deps.InterviewUC, llmLimit)
	NewCandidateHandler(v1, admin, deps.ExportUC)

	return r
}
