package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"bricsbtc/internal/adapter"
	"bricsbtc/internal/delivery/http/dto"
	"bricsbtc/internal/domain"
	"bricsbtc/internal/middleware"
	"bricsbtc/internal/service"
	"bricsbtc/internal/session"
	"bricsbtc/pkg/logger"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userRepo     domain.UserRepository
	uploader     adapter.Uploader
	tokenStore   *service.TokenStore
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	userRepo domain.UserRepository,
	uploader adapter.Uploader,
	tokenStore *service.TokenStore,
	tokenTTL time.Duration,
	secureCookie bool,
) *AuthHandler {
	return &AuthHandler{
		userRepo:     userRepo,
		uploader:     uploader,
		tokenStore:   tokenStore,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// Register handles account creation with KYC document upload
// POST /api/v1/auth/register (multipart)
func (h *AuthHandler) Register(c echo.Context) error {
	var form dto.RegisterForm
	if err := c.Bind(&form); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	form.Email = strings.TrimSpace(strings.ToLower(form.Email))
	if form.Email == "" || form.Password == "" || form.FullName == "" {
		return BadRequestResponse(c, "Email, password and full name are required")
	}
	if len(form.Password) < 6 {
		return BadRequestResponse(c, "Password must be at least 6 characters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if _, err := h.userRepo.GetByEmail(ctx, form.Email); err == nil {
		return BadRequestResponse(c, "An account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to hash password", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FullName:     form.FullName,
		Email:        form.Email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
		Country:      form.CountryName,
		Address:      form.Address,
		KYCStatus:    domain.KYCPending,
		DocumentType: form.DocumentType,
		CreatedAt:    time.Now(),
	}

	// Avatar is optional
	if avatar, err := c.FormFile("avatar"); err == nil {
		url, err := h.uploader.UploadFromHeader(ctx, avatar, "avatars")
		if err != nil {
			return InternalServerErrorResponse(c, "Failed to upload avatar", err)
		}
		user.AvatarURL = url
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		return InternalServerErrorResponse(c, "Failed to create user", err)
	}

	// KYC documents are uploaded after the user row exists so the
	// foreign key holds
	if mf, err := c.MultipartForm(); err == nil {
		for _, fh := range mf.File["kycDocuments"] {
			url, err := h.uploader.UploadFromHeader(ctx, fh, "kyc")
			if err != nil {
				logger.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to upload KYC document")
				continue
			}
			doc := &domain.KYCDocument{
				ID:        uuid.New(),
				UserID:    user.ID,
				URL:       url,
				CreatedAt: time.Now(),
			}
			if err := h.userRepo.SaveKYCDocument(ctx, doc); err != nil {
				logger.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to save KYC document")
			}
		}
	}

	return CreatedResponse(c, session.FromUser(user))
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role, h.tokenTTL)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token", err)
	}

	h.setSessionCookie(c, token, int(h.tokenTTL.Seconds()))

	return SuccessResponse(c, session.FromUser(user))
}

// Verify resolves the session cookie to the current identity. A non-2xx
// answer means "not authenticated" to the caller.
// GET /api/v1/auth/verify
func (h *AuthHandler) Verify(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	return SuccessResponse(c, session.FromUser(user))
}

// Logout destroys the session: the cookie is cleared and the token revoked
// for its remaining lifetime.
// GET /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if token, ok := c.Get("token").(string); ok && token != "" {
		if claims, err := middleware.ParseJWT(token); err == nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := h.tokenStore.Revoke(c.Request().Context(), token, ttl); err != nil {
				logger.Warn().Err(err).Msg("failed to revoke token")
			}
		}
	}

	h.setSessionCookie(c, "", -1)

	return SuccessMessageResponse(c, "Logged out", nil)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}
