package middleware

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/internal/metrics"
	"Recipe-Share-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"strings"
	"time"
)

const (
	SessionCookie = "session"
	localActor    = "actor"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		MetricsMiddleware() fiber.Handler
		// AuthMiddleware rejects requests without a valid session with 401.
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		// PageAuthMiddleware redirects requests without a valid session to "/".
		PageAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		// OptionalAuth attaches the session when there is one and never rejects.
		OptionalAuth(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct {
		allowOrigins string
	}
)

func NewMiddleware(allowOrigins string) Middleware {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return &middleware{allowOrigins: allowOrigins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     m.allowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: m.allowOrigins != "*",
	})
}

func (m *middleware) MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		metrics.RecordHTTPRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}

func tokenFrom(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies(SessionCookie)
}

func authenticate(c *fiber.Ctx, jwtService jwt.JWTService) (domain.Actor, error) {
	token := tokenFrom(c)
	if token == "" {
		return domain.Actor{}, domain.ErrTokenNotFound
	}
	userID, role, err := jwtService.GetUserIDByToken(token)
	if err != nil {
		return domain.Actor{}, err
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.Actor{}, domain.ErrTokenInvalid
	}

	actor := domain.Actor{AccountID: id, Role: role}
	c.Locals("user_id", userID)
	c.Locals("role", role)
	c.Locals(localActor, actor)
	return actor, nil
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := authenticate(c, jwtService); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageLoginRequired, err)
		}
		return c.Next()
	}
}

func (m *middleware) PageAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := authenticate(c, jwtService); err != nil {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

func (m *middleware) OptionalAuth(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, _ = authenticate(c, jwtService)
		return c.Next()
	}
}

// ActorFrom returns the caller attached by one of the auth middlewares. The
// zero Actor means anonymous.
func ActorFrom(c *fiber.Ctx) domain.Actor {
	actor, _ := c.Locals(localActor).(domain.Actor)
	return actor
}

func SetSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(jwt.SessionDuration),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
