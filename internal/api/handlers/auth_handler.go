package handlers

import (
	"strings"

	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/service"
	"rag-iishka-client/internal/session"
	"rag-iishka-client/internal/view"
	"rag-iishka-client/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoginDefaults pre-fill the login form.
type LoginDefaults struct {
	Email    string
	Password string
}

type AuthHandler struct {
	web         *Web
	authService *service.AuthService
	defaults    LoginDefaults
	logger      *zap.Logger
}

func NewAuthHandler(web *Web, authService *service.AuthService, defaults LoginDefaults, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		web:         web,
		authService: authService,
		defaults:    defaults,
		logger:      logger,
	}
}

// Home sends signed in users to their documents and everyone else to login.
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	if h.signedIn(c) {
		return c.Redirect("/documents")
	}
	return c.Redirect("/login")
}

func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if h.signedIn(c) {
		return c.Redirect("/documents")
	}
	return h.web.render(c, fiber.StatusOK, view.PageLogin, view.MsgLoginTitle, view.AuthForm{
		Email:    h.defaults.Email,
		Password: h.defaults.Password,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req := dto.LoginRequest{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}

	sessionID, err := h.renewSession(c)
	if err != nil {
		return err
	}

	_, err = h.authService.Login(c.Context(), sessionID, &req)
	if err != nil {
		h.logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		return h.web.render(c, fiber.StatusOK, view.PageLogin, view.MsgLoginTitle, view.AuthForm{
			Email: req.Email,
			Error: h.web.catalog(c).ErrorMessage(err, view.MsgLoginFailed),
		})
	}

	return c.Redirect("/documents", fiber.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	if h.signedIn(c) {
		return c.Redirect("/documents")
	}
	return h.web.render(c, fiber.StatusOK, view.PageRegister, view.MsgRegisterTitle, view.AuthForm{})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req := dto.RegisterRequest{
		Username: strings.TrimSpace(c.FormValue("username")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}

	sessionID, err := h.renewSession(c)
	if err != nil {
		return err
	}

	_, err = h.authService.Register(c.Context(), sessionID, &req)
	if err != nil {
		h.logger.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		return h.web.render(c, fiber.StatusOK, view.PageRegister, view.MsgRegisterTitle, view.AuthForm{
			Email:    req.Email,
			Username: req.Username,
			Error:    h.web.catalog(c).ErrorMessage(err, view.MsgRegisterFailed),
		})
	}

	return c.Redirect("/documents", fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Context(), middleware.SessionID(c)); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		return err
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// renewSession switches to a new session id and drops anything stored under
// the old one.
func (h *AuthHandler) renewSession(c *fiber.Ctx) (string, error) {
	oldID, newID, err := h.web.renewSession(c)
	if err != nil {
		h.logger.Error("Failed to renew session", zap.Error(err))
		return "", err
	}
	if err := h.authService.Logout(c.Context(), oldID); err != nil {
		h.logger.Warn("Failed to clear previous session", zap.Error(err))
	}
	return newID, nil
}

func (h *AuthHandler) signedIn(c *fiber.Ctx) bool {
	creds, err := h.authService.Current(c.Context(), middleware.SessionID(c))
	if err != nil {
		h.logger.Warn("Failed to load credentials", zap.Error(err))
		return false
	}
	return creds.State() == session.StateIssued
}
