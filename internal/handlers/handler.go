package handlers

import (
	"net/http"
	"time"

	"account_ledger/internal/logger"
	"account_ledger/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes the HTTP layer. Zero values fall back to the defaults below.
type Options struct {
	CookieName         string
	SecureCookie       bool
	SessionTTL         time.Duration
	LoginRatePerMinute int
	LoginBurst         int
	// TrustedProxies lists the proxy addresses or CIDRs whose
	// X-Forwarded-For header is honoured. Empty means the peer address is
	// always the client IP.
	TrustedProxies []string
}

const (
	defaultCookieName         = "ledger_session"
	defaultLoginRatePerMinute = 10
	defaultLoginBurst         = 5
)

func (o Options) withDefaults() Options {
	if o.CookieName == "" {
		o.CookieName = defaultCookieName
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = service.DefaultSessionTTL
	}
	if o.LoginRatePerMinute <= 0 {
		o.LoginRatePerMinute = defaultLoginRatePerMinute
	}
	if o.LoginBurst <= 0 {
		o.LoginBurst = defaultLoginBurst
	}
	return o
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options

	loginLimiter *ipLimiter
	metrics      *httpMetrics
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	opts = opts.withDefaults()
	return &Handler{
		services:     services,
		log:          log,
		opts:         opts,
		loginLimiter: newIPLimiter(opts.LoginRatePerMinute, opts.LoginBurst),
		metrics:      newHTTPMetrics(),
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(h.opts.TrustedProxies); err != nil {
		h.log.Errorw("trusted_proxies_invalid", "proxies", h.opts.TrustedProxies, "err", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(h.metrics.middleware(), gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(h.metrics.handler()))

	// every /api request gets its session resolved; only some require one
	api := router.Group("/api", h.loadSession)
	{
		h.registerAuthRoutes(api)
		h.registerAccountRoutes(api)
		h.registerSummaryRoutes(api)
	}

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	api.POST("/register", h.register)
	api.POST("/login", h.loginLimiter.middleware(), h.login)
	api.POST("/logout", h.requireUser, h.logout)
	api.GET("/current_user", h.currentUser)
}

func (h *Handler) registerAccountRoutes(api *gin.RouterGroup) {
	accounts := api.Group("/accounts", h.requireUser)
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

func (h *Handler) registerSummaryRoutes(api *gin.RouterGroup) {
	summary := api.Group("/summary", h.requireUser)
	{
		summary.GET("", h.getSummary)
		summary.GET("/ws", h.wsSummary)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
