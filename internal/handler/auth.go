package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"videoclub/internal/apperror"
	"videoclub/internal/config"
	"videoclub/internal/middleware"
	"videoclub/internal/repository"
	"videoclub/internal/utils"
	"videoclub/internal/validator"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

type userPart struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Role   string `json:"role"`
}

type sessionPart struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Register creates an account with role "user" and opens a session right
// away.  POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var raw validator.RegisterRequest
	if err := c.Bind(&raw); err != nil {
		return apperror.Validation("Cuerpo de la solicitud inválido")
	}
	req, err := validator.ValidateRegister(raw)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.Nombre, config.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return apperror.Validation("El email ya está registrado")
		}
		return err
	}

	access, refresh, err := h.issueSession(ctx, uid, req.Email, config.RoleUser)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Usuario registrado exitosamente",
		"data": echo.Map{
			"user":    userPart{ID: uid, Email: req.Email, Nombre: req.Nombre, Role: config.RoleUser},
			"session": sessionPart{AccessToken: access.Token, RefreshToken: refresh.Raw, ExpiresAt: access.Exp},
		},
	})
}

// Login verifies credentials and returns a fresh token pair.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var raw validator.LoginRequest
	if err := c.Bind(&raw); err != nil {
		return apperror.Validation("Cuerpo de la solicitud inválido")
	}
	req, err := validator.ValidateLogin(raw)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperror.Unauthorized("Credenciales inválidas")
		}
		return err
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return apperror.Unauthorized("Credenciales inválidas")
	}

	access, refresh, err := h.issueSession(ctx, u.ID, u.Email, u.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Inicio de sesión exitoso",
		"data": echo.Map{
			"user":         userPart{ID: u.ID, Email: u.Email, Nombre: u.Nombre, Role: u.Role},
			"token":        access.Token,
			"refreshToken": refresh.Raw,
		},
	})
}

// Logout revokes every refresh token of the caller.  The access token stays
// technically valid until its short expiry; no denylist is kept.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return apperror.Unauthorized("")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.RevokeAllForUser(ctx, id.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"message": "Sesión cerrada exitosamente"},
	})
}

// Me echoes the identity attached by the auth middleware.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return apperror.Unauthorized("")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"user": id},
	})
}

// issueSession creates the access/refresh pair and persists the refresh hash.
func (h *AuthHandler) issueSession(ctx context.Context, uid, email, role string) (utils.AccessToken, utils.RefreshToken, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, email, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, uid, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	return access, refresh, nil
}
