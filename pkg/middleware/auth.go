package middleware

import (
	"context"
	"fmt"
	"time"

	"rag-iishka-client/internal/session"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// Locals set by the middleware.
const (
	LocalSessionID = "sessionID"
	LocalEmail     = "email"
)

const startedKey = "started"

// CredentialsLoader returns the credentials stored for a browser session.
type CredentialsLoader interface {
	Current(ctx context.Context, sessionID string) (session.Credentials, error)
}

// Identify gives every browser a fiber session and exposes its id. The id is
// the key credentials are stored under.
func Identify(store *fibersession.Store, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			logger.Error("Failed to load browser session", zap.Error(err))
			return fmt.Errorf("failed to load session: %w", err)
		}

		c.Locals(LocalSessionID, sess.ID())
		if sess.Fresh() {
			sess.Set(startedKey, time.Now().Unix())
			if err := sess.Save(); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
		}
		return c.Next()
	}
}

// RequireCredentials redirects to the login page unless the session holds an
// access token.
func RequireCredentials(loader CredentialsLoader, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := SessionID(c)
		creds, err := loader.Current(c.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load credentials", zap.Error(err))
			return fmt.Errorf("failed to load credentials: %w", err)
		}
		if creds.State() == session.StateAbsent {
			logger.Debug("No credentials, redirecting to login", zap.String("path", c.Path()))
			return c.Redirect("/login")
		}

		c.Locals(LocalEmail, creds.Email)
		return c.Next()
	}
}

func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}

func Email(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalEmail).(string)
	return email
}
