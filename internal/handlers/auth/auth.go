package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Guiladg/wacookieexpress/internal/apperr"
	"github.com/Guiladg/wacookieexpress/internal/middleware"
	"github.com/Guiladg/wacookieexpress/internal/stores"
	"github.com/Guiladg/wacookieexpress/internal/token"
	"github.com/Guiladg/wacookieexpress/internal/user"
	"github.com/Guiladg/wacookieexpress/internal/verification"
)

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type AskPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type ConfirmPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
	Token string `json:"token" binding:"required"`
}

type RestorePasswordRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler implements the session and recovery endpoints.
type AuthHandler struct {
	Users         stores.UserStore
	RefreshTokens stores.RefreshTokenStore
	Codes         stores.VerificationCodeStore
	Tokens        token.Service
	Hasher        user.PasswordHasher
	Verification  *verification.Service
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Production    bool
	Log           *zap.SugaredLogger
}

func NewAuthHandler(
	users stores.UserStore,
	refreshTokens stores.RefreshTokenStore,
	codes stores.VerificationCodeStore,
	tokens token.Service,
	hasher user.PasswordHasher,
	verificationService *verification.Service,
	accessTTL, refreshTTL time.Duration,
	production bool,
	log *zap.SugaredLogger,
) *AuthHandler {
	return &AuthHandler{
		Users:         users,
		RefreshTokens: refreshTokens,
		Codes:         codes,
		Tokens:        tokens,
		Hasher:        hasher,
		Verification:  verificationService,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		Production:    production,
		Log:           log,
	}
}

// respond translates an error into the environment-gated status and message.
func (h *AuthHandler) respond(c *gin.Context, err error) {
	status, msg := apperr.Render(err, h.Production)
	if status >= http.StatusInternalServerError {
		h.Log.Errorw("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"message": msg})
}

// Login checks phone and password and opens a session by setting the three
// token cookies. The two failure modes share one client-visible shape in
// production so callers cannot probe which phones exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, apperr.BadRequest("invalid request"))
		return
	}

	u, err := h.Users.FindByPhone(req.Phone)
	if err != nil {
		h.respond(c, apperr.Unauthorized("Incorrect username").
			WithPublic("Incorrect username or password"))
		return
	}

	if err := h.Hasher.Compare([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		h.respond(c, apperr.Unauthorized("Incorrect password").
			WithPublic("Incorrect username or password"))
		return
	}

	tokens, err := h.Tokens.IssueSessionTokens(u)
	if err != nil {
		h.respond(c, err)
		return
	}

	h.setSessionCookies(c, tokens)

	c.JSON(http.StatusOK, gin.H{
		"record":  u,
		"message": "Login Ok",
	})
}

// Refresh rotates the session: it consumes the presented refresh token's
// ledger record and issues a fresh token triple. Every failure is a 401; a
// missing control cookie is treated as an interrupted logout and finishes it.
func (h *AuthHandler) Refresh(c *gin.Context) {
	controlToken, _ := c.Cookie("control_token")
	refreshToken, _ := c.Cookie("refresh_token")

	if controlToken == "" {
		h.Tokens.Revoke(refreshToken)
		h.clearCookie(c, "access_token")
		h.clearCookie(c, "refresh_token")
		h.respond(c, apperr.Unauthorized("No control token"))
		return
	}

	if refreshToken == "" {
		h.respond(c, apperr.Unauthorized("No refresh token"))
		return
	}

	if err := h.Tokens.VerifyControl(controlToken); err != nil {
		h.respond(c, apperr.Unauthorized("Invalid control token"))
		return
	}

	claims, err := h.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		h.respond(c, apperr.Unauthorized("Invalid refresh token"))
		return
	}

	u, err := h.Users.FindByID(claims.IDUser)
	if err != nil {
		h.respond(c, apperr.Unauthorized("User not found"))
		return
	}

	// The ledger is the source of truth: a cryptographically valid token
	// that was already consumed or revoked must not pass.
	record, err := h.RefreshTokens.FindValid(claims.IDUser, claims.Token, time.Now().Unix())
	if err != nil {
		h.respond(c, apperr.Unauthorized("Refresh token not found"))
		return
	}

	// Single use: consume before reissuing.
	if err := h.RefreshTokens.Delete(record.ID); err != nil {
		h.respond(c, apperr.Database("could not rotate refresh token", err))
		return
	}

	tokens, err := h.Tokens.IssueSessionTokens(u)
	if err != nil {
		h.respond(c, err)
		return
	}

	h.setSessionCookies(c, tokens)
	c.Status(http.StatusNoContent)
}

// Logout revokes the presented refresh token and clears the cookies. It
// never fails: revocation is best-effort and an absent session is fine.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie("refresh_token")
	h.Tokens.Revoke(refreshToken)

	h.clearCookie(c, "access_token")
	h.clearCookie(c, "refresh_token")
	h.clearCookie(c, "control_token")

	c.Status(http.StatusNoContent)
}

// Validate returns 204 when the auth middleware accepted the access token.
func (h *AuthHandler) Validate(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// UserData returns the authenticated user's record.
func (h *AuthHandler) UserData(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		h.respond(c, apperr.Unauthorized("No access token"))
		return
	}

	u, err := h.Users.FindByID(claims.ID)
	if err != nil {
		h.respond(c, apperr.NotFound("Usuario inexistente"))
		return
	}

	c.JSON(http.StatusOK, u)
}

// ChangePassword replaces the password of the logged-in user after checking
// the current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		h.respond(c, apperr.Unauthorized("No access token"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, apperr.BadRequest("invalid request"))
		return
	}

	u, err := h.Users.FindByPhone(claims.Phone)
	if err != nil {
		h.respond(c, apperr.NotFound("Usuario inexistente"))
		return
	}

	if err := h.Hasher.Compare([]byte(u.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.respond(c, apperr.BadRequest("Password actual incorrecto"))
		return
	}

	hashed, err := h.Hasher.Hash([]byte(req.NewPassword))
	if err != nil {
		h.respond(c, apperr.Internal("could not hash password", err))
		return
	}
	u.PasswordHash = string(hashed)

	if err := h.Users.Update(u); err != nil {
		h.respond(c, apperr.Database("could not save user", err))
		return
	}

	c.Status(http.StatusNoContent)
}

// AskNewPhone sends a verification code to the phone number the logged-in
// user wants to switch to.
func (h *AuthHandler) AskNewPhone(c *gin.Context) {
	var req AskPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, apperr.BadRequest("invalid request"))
		return
	}

	if err := h.Verification.IssueCode(c.Request.Context(), req.Phone); err != nil {
		h.respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ConfirmNewPhone switches the logged-in user to a new phone number once
// the code sent to that number checks out. Codes for the old number are
// purged wholesale afterwards.
func (h *AuthHandler) ConfirmNewPhone(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		h.respond(c, apperr.Unauthorized("No access token"))
		return
	}
	currentPhone := claims.Phone

	var req ConfirmPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, apperr.BadRequest("invalid request"))
		return
	}

	u, err := h.Users.FindByPhone(currentPhone)
	if err != nil {
		h.respond(c, apperr.NotFound("Usuario inexistente"))
		return
	}

	if _, err := h.Codes.FindValid(req.Phone, req.Token, time.Now().Unix()); err != nil {
		h.respond(c, apperr.Conflict("Código de verificación inválido"))
		return
	}

	u.Phone = req.Phone
	if err := h.Users.Update(u); err != nil {
		h.respond(c, apperr.Database("could not save user", err))
		return
	}

	if err := h.Codes.DeleteAllForPhone(currentPhone); err != nil {
		h.respond(c, apperr.Database("could not delete verification codes", err))
		return
	}

	c.Status(http.StatusNoContent)
}

// ResetPassword starts the locked-out recovery flow by sending a code to
// the account's registered phone. Unlike AskNewPhone the phone must already
// belong to a user.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req AskPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, apperr.BadRequest("invalid request"))
		return
	}

	if _, err := h.Users.FindByPhone(req.Phone); err != nil {
		h.respond(c, apperr.NotFound("Usuario inexistente"))
		return
	}

	if err := h.Verification.IssueCode(c.Request.Context(), req.Phone); err != nil {
		h.respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestorePassword finishes the recovery flow: with a valid code for the
// account's phone the password is replaced without an active session.
func (h *AuthHandler) RestorePassword(c *gin.Context) {
	var req RestorePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, apperr.BadRequest("invalid request"))
		return
	}

	u, err := h.Users.FindByPhone(req.Phone)
	if err != nil {
		h.respond(c, apperr.NotFound("Usuario inexistente"))
		return
	}

	if _, err := h.Codes.FindValid(req.Phone, req.Token, time.Now().Unix()); err != nil {
		h.respond(c, apperr.Unauthorized("Código de verificación inválido"))
		return
	}

	hashed, err := h.Hasher.Hash([]byte(req.Password))
	if err != nil {
		h.respond(c, apperr.Internal("could not hash password", err))
		return
	}
	u.PasswordHash = string(hashed)

	if err := h.Users.Update(u); err != nil {
		h.respond(c, apperr.Database("could not save user", err))
		return
	}

	if err := h.Codes.DeleteAllForPhone(req.Phone); err != nil {
		h.respond(c, apperr.Database("could not delete verification codes", err))
		return
	}

	c.Status(http.StatusNoContent)
}
