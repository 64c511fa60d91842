package http

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterConfig carries the collaborators of NewRouter.
type RouterConfig struct {
	Authenticator Authenticator
	Logger        *zap.Logger
	// LogLevel sets echo's own logger: debug, info, warn, error or off.
	LogLevel string
}

// NewRouter builds the echo instance serving server. Everything under /api/v1 requires a
// bearer token and is validated against openapi.yaml before it reaches a handler. Intake
// and delivery confirmation are refused to non-agents before validation.
func NewRouter(server *Server, config RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(config.LogLevel))
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))

	e.GET("/health", server.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// The role check on agent routes comes before validation so a non-agent is refused
	// whatever it sent.
	agentOnly := []echo.MiddlewareFunc{AgentOnly(), validator}

	api := e.Group("/api/v1", config.Authenticator.Middleware())
	api.POST("/packages", server.CreatePackage, agentOnly...)
	api.GET("/packages", server.ListPackages, validator)
	api.GET("/packages/pending", server.ListPendingPackages, validator)
	api.GET("/packages/search", server.FindPackage, validator)
	api.GET("/packages/:id", server.GetPackage, validator)
	api.POST("/packages/:id/mark-delivered", server.MarkPackageDelivered, agentOnly...)
	api.GET("/tickets", server.ListTickets, validator)
	api.POST("/tickets/:id/status", server.UpdateTicketStatus, validator)

	return e, nil
}

// RequestLogger writes one zap entry per request. Failed requests are passed to the
// error handler first so the logged status is the one the client received.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
