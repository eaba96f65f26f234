package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muskanVaswani/sudharsetu-backend/internal/auth"
	"github.com/muskanVaswani/sudharsetu-backend/internal/config"
	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
)

// AuthController issues admin session tokens. The credential is a
// single shared admin password, checked against a bcrypt hash from
// config (or a plaintext dev fallback).
type AuthController struct {
	cfg *config.Config
	jwt *auth.JWTManager
}

func NewAuthController(cfg *config.Config, jwt *auth.JWTManager) *AuthController {
	return &AuthController{cfg: cfg, jwt: jwt}
}

func (ctr *AuthController) Register(g *echo.Group) {
	g.POST("/admin/login", ctr.Login)
}

// Login handles POST /admin/login.
func (ctr *AuthController) Login(c echo.Context) error {
	req := new(models.LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid request format: " + err.Error()},
		)
	}
	if req.Password == "" {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "password is required"},
		)
	}

	if !ctr.checkCredential(req.Password) {
		return c.JSON(
			http.StatusUnauthorized,
			map[string]string{"error": "invalid credentials"},
		)
	}

	token, err := ctr.jwt.GenerateAdminToken()
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			map[string]string{"error": err.Error()},
		)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":     token,
		"expiresIn": int(ctr.jwt.TokenExpiration().Seconds()),
	})
}

func (ctr *AuthController) checkCredential(password string) bool {
	if ctr.cfg.AdminPasswordHash != "" {
		return auth.CheckPassword(password, ctr.cfg.AdminPasswordHash) == nil
	}
	// plaintext fallback for local development only
	return subtle.ConstantTimeCompare([]byte(password), []byte(ctr.cfg.AdminPassword)) == 1
}
