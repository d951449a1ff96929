package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/employee_gateway/internal/config"
	"github.com/locvowork/employee_gateway/internal/handler"
	"github.com/locvowork/employee_gateway/internal/logger"
	"github.com/locvowork/employee_gateway/internal/repository"
	"github.com/locvowork/employee_gateway/internal/service"
)

type App struct {
	Echo       *echo.Echo
	HTTPClient *http.Client
	Service    service.EmployeeService
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{
		Echo: e,
	}
}

// Initialize loads configuration, sets up logging and wires
// repository -> service -> handler.
func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// One client for the process lifetime; a zero timeout keeps the
	// transport defaults.
	a.HTTPClient = &http.Client{Timeout: cfg.UPSTREAM_TIMEOUT}
	logger.InfoLog(ctx, "Upstream employee service: %s (timeout=%v)", cfg.API_BASE_URL, cfg.UPSTREAM_TIMEOUT)

	// Initialize dependencies
	empRepo := repository.NewEmployeeRepository(cfg.API_BASE_URL, a.HTTPClient)
	a.Service = service.NewEmployeeService(empRepo, service.WithTopEarnersLimit(cfg.TOP_EARNERS_LIMIT))
	empHandler := handler.NewEmployeeHandler(a.Service, handler.ExportConfig{
		TemplatePath: cfg.EXPORT_TEMPLATE_PATH,
		TopN:         cfg.TOP_EARNERS_LIMIT,
	})

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(empHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	a.Echo.Use(requestLogger)
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

// requestLogger attaches request-scoped fields to the context logger and
// logs one line per request.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := logger.WithLogger(req.Context(), map[string]interface{}{
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			"method":     req.Method,
			"path":       req.URL.Path,
		})
		c.SetRequest(req.WithContext(ctx))

		err := next(c)
		if err != nil {
			c.Error(err)
		}
		logger.InfoLog(ctx, "status=%d", c.Response().Status)
		return nil
	}
}

func (a *App) RegisterRoutes(empHandler *handler.EmployeeHandler) {
	a.Echo.GET("/healthz", empHandler.HealthHandler)
	a.Echo.GET("/export/roster.xlsx", empHandler.ExportRosterHandler)

	a.Echo.GET("/", empHandler.ListHandler)
	a.Echo.GET("/search/:searchString", empHandler.SearchHandler)
	a.Echo.GET("/highestSalary", empHandler.HighestSalaryHandler)
	a.Echo.GET("/topTenHighestEarningEmployeeNames", empHandler.TopEarnersHandler)
	a.Echo.GET("/:id", empHandler.GetHandler)
	a.Echo.POST("/", empHandler.CreateHandler)
	a.Echo.DELETE("/:id", empHandler.DeleteHandler)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

// Shutdown stops the server and releases idle upstream connections.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}
	return err
}
