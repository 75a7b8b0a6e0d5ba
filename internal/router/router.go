package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ojtlog/internal/auth"
	"ojtlog/internal/config"
	apperrors "ojtlog/internal/errors"
	"ojtlog/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	entryHandler *handler.EntryHandler,
	supervisorHandler *handler.SupervisorHandler,
	verificationHandler *handler.VerificationHandler,
	reportHandler *handler.ReportHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	// Redemption is unauthenticated: the actor is an external supervisor
	// who has never logged in. The token is the authorization.
	api.GET("/verify/:token", verificationHandler.ShowVerification)
	api.POST("/verify/:token", verificationHandler.RedeemVerification)

	// Owner-scoped routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", userHandler.GetProfile)
	secured.PUT("/me", userHandler.UpdateProfile)

	secured.POST("/entries", entryHandler.CreateEntries)
	secured.GET("/entries", entryHandler.ListEntries)
	secured.GET("/entries/totals", entryHandler.GetTotals)
	secured.POST("/entries/:id/verification", verificationHandler.RequestVerification)

	secured.POST("/supervisors", supervisorHandler.CreateSupervisor)
	secured.GET("/supervisors", supervisorHandler.ListSupervisors)

	secured.GET("/report", reportHandler.GetReport)

	// Admin routes
	admin := secured.Group("/admin", requireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/entries", adminHandler.ListEntries)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.DELETE("/entries/:id", adminHandler.DeleteEntry)
}

// requireAdmin rejects callers without the admin claim.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || !claims.Admin {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "admin access required",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
