package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mm-grybel/CS50-Study/internal/config"
	apperrors "github.com/mm-grybel/CS50-Study/internal/errors"
	"github.com/mm-grybel/CS50-Study/internal/handler"
	"github.com/mm-grybel/CS50-Study/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	questionHandler *handler.QuestionHandler,
	categoryHandler *handler.CategoryHandler,
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

	// Public routes. The question index is readable without a session, like
	// the site's landing page.
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/questions", questionHandler.ListQuestions)

	// Secured routes: echo-jwt rejects missing, malformed and expired
	// tokens; the session middleware then rejects revoked sessions and
	// resolves the user.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SecretKey),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), sessionMiddleware(authService))

	secured.POST("/auth/logout", authHandler.Logout)

	// Question routes
	secured.GET("/questions/:id", questionHandler.GetQuestion)
	secured.POST("/questions", questionHandler.AddQuestion)
	secured.PUT("/questions/:id", questionHandler.UpdateQuestion)
	secured.POST("/questions/search", questionHandler.SearchQuestions)
	secured.GET("/me/questions", questionHandler.MyQuestions)

	// Category routes
	secured.GET("/categories", categoryHandler.ListCategories)
	secured.POST("/categories", categoryHandler.AddCategory)
}

// sessionMiddleware resolves the Bearer token to a user with a live session.
// Revoked sessions fail here even though their token still carries a valid
// signature.
func sessionMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authService.Authenticate(c.Request().Context(), bearerToken(c))
			if err != nil {
				he := apperrors.MapErrorToHTTP(apperrors.ErrAuthRequired)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
			}
			c.Set(handler.ContextUserKey, user)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) > len(prefix) {
		return header[len(prefix):]
	}
	return ""
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
