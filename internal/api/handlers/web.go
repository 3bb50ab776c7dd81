package handlers

import (
	"errors"
	"fmt"

	"rag-iishka-client/internal/gateway"
	"rag-iishka-client/internal/view"
	"rag-iishka-client/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const (
	flashKindKey = "flash_kind"
	flashTextKey = "flash_text"
)

// Web holds what every page handler needs: the browser session store for
// flash messages and the page renderer.
type Web struct {
	sessions *session.Store
	renderer *view.Renderer
	logger   *zap.Logger
}

func NewWeb(sessions *session.Store, renderer *view.Renderer, logger *zap.Logger) *Web {
	return &Web{
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

func (w *Web) catalog(c *fiber.Ctx) *view.Catalog {
	return view.FromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
}

// flash stores a notification shown on the next rendered page.
func (w *Web) flash(c *fiber.Ctx, kind view.FlashKind, text string) error {
	sess, err := w.sessions.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Set(flashKindKey, string(kind))
	sess.Set(flashTextKey, text)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (w *Web) popFlashes(c *fiber.Ctx) []view.Flash {
	sess, err := w.sessions.Get(c)
	if err != nil {
		w.logger.Warn("Failed to load session for flash messages", zap.Error(err))
		return nil
	}

	text, _ := sess.Get(flashTextKey).(string)
	if text == "" {
		return nil
	}
	kind, _ := sess.Get(flashKindKey).(string)
	sess.Delete(flashKindKey)
	sess.Delete(flashTextKey)
	if err := sess.Save(); err != nil {
		w.logger.Warn("Failed to clear flash messages", zap.Error(err))
	}
	return []view.Flash{{Kind: view.FlashKind(kind), Text: text}}
}

// renewSession moves the browser to a fresh session id before credentials
// are stored, so an id set before sign in never carries them. It returns the
// previous and the new id.
func (w *Web) renewSession(c *fiber.Ctx) (string, string, error) {
	sess, err := w.sessions.Get(c)
	if err != nil {
		return "", "", fmt.Errorf("failed to load session: %w", err)
	}
	oldID := sess.ID()
	if err := sess.Regenerate(); err != nil {
		return "", "", fmt.Errorf("failed to regenerate session: %w", err)
	}
	newID := sess.ID()
	if err := sess.Save(); err != nil {
		return "", "", fmt.Errorf("failed to save session: %w", err)
	}
	c.Locals(middleware.LocalSessionID, newID)
	return oldID, newID, nil
}

// redirect stores a flash message and sends the browser to path.
func (w *Web) redirect(c *fiber.Ctx, path string, kind view.FlashKind, text string) error {
	if err := w.flash(c, kind, text); err != nil {
		return err
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

func (w *Web) render(c *fiber.Ctx, status int, name string, title view.Key, data any) error {
	cat := w.catalog(c)
	page := view.Page{
		Title:   cat.T(title),
		Cat:     cat,
		Email:   middleware.Email(c),
		Flashes: w.popFlashes(c),
		Data:    data,
	}

	c.Status(status)
	c.Type("html", "utf-8")
	if err := w.renderer.Render(c.Response().BodyWriter(), name, page); err != nil {
		w.logger.Error("Failed to render page", zap.String("page", name), zap.Error(err))
		return err
	}
	return nil
}

// sessionExpired handles ErrSessionExpired: the gateway has already cleared
// the credentials, so the user is sent to the login page.
func (w *Web) sessionExpired(c *fiber.Ctx, err error) (bool, error) {
	if !errors.Is(err, gateway.ErrSessionExpired) {
		return false, nil
	}
	w.logger.Info("Session expired", zap.String("path", c.Path()))
	return true, w.redirect(c, "/login", view.FlashError, w.catalog(c).T(view.MsgSessionExpired))
}
