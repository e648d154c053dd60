package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"siteworks/internal/auth"
	"siteworks/internal/config"
	apperrors "siteworks/internal/errors"
	"siteworks/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	ticketHandler *handler.TicketHandler,
	invoiceHandler *handler.InvoiceHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	// Secured routes (require a bearer token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		// A request with no token at all gets 401; a token that fails
		// signature or expiry checks gets 403.
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return c.JSON(http.StatusUnauthorized, apperrors.Fail("missing token"))
			}
			return c.JSON(http.StatusForbidden, apperrors.Fail("invalid or expired token"))
		},
	}))

	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/auth/profile", authHandler.UpdateProfile)
	secured.PUT("/auth/password", authHandler.ChangePassword)
	secured.PUT("/auth/notifications", authHandler.UpdateNotifications)

	// Client portal routes
	secured.GET("/projects", projectHandler.ListProjects)
	secured.GET("/projects/:id", projectHandler.GetProject)
	secured.POST("/tickets", ticketHandler.CreateTicket)
	secured.GET("/tickets", ticketHandler.ListTickets)
	secured.GET("/tickets/:id", ticketHandler.GetTicket)
	secured.GET("/invoices", invoiceHandler.ListInvoices)
	secured.GET("/invoices/:id", invoiceHandler.GetInvoice)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
