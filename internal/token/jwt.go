package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Guiladg/wacookieexpress/internal/apperr"
	"github.com/Guiladg/wacookieexpress/internal/models"
	"github.com/Guiladg/wacookieexpress/internal/stores"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTService signs HS256 tokens. Access tokens use their own secret; refresh
// and control tokens share the refresh secret.
type JWTService struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	RefreshTokens stores.RefreshTokenStore
	Log           *zap.SugaredLogger
}

// refreshIDBytes is the size of the random refresh identifier.
const refreshIDBytes = 16

func newRefreshIdentifier() (string, error) {
	b := make([]byte, refreshIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *JWTService) IssueSessionTokens(u *models.User) (*SessionTokens, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		ID:    u.ID,
		Phone: u.Phone,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
		},
	})
	accessString, err := access.SignedString(s.AccessSecret)
	if err != nil {
		return nil, apperr.Internal("could not sign access token", err)
	}

	identifier, err := newRefreshIdentifier()
	if err != nil {
		return nil, apperr.Internal("could not generate refresh identifier", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		IDUser: u.ID,
		Token:  identifier,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.RefreshTTL)),
		},
	})
	refreshString, err := refresh.SignedString(s.RefreshSecret)
	if err != nil {
		return nil, apperr.Internal("could not sign refresh token", err)
	}

	// Empty payload: the control token only proves a session was started.
	control := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.RefreshTTL)),
	})
	controlString, err := control.SignedString(s.RefreshSecret)
	if err != nil {
		return nil, apperr.Internal("could not sign control token", err)
	}

	// The identifier must be durable before the client sees the token,
	// otherwise refresh and logout could never invalidate it.
	record := &models.RefreshToken{
		UserID:    u.ID,
		Token:     identifier,
		ExpiresAt: now.Add(s.RefreshTTL).Unix(),
	}
	if err := s.RefreshTokens.Create(record); err != nil {
		return nil, apperr.Database("could not save refresh token", err)
	}

	return &SessionTokens{
		Access:  accessString,
		Refresh: refreshString,
		Control: controlString,
	}, nil
}

func (s *JWTService) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(tokenString, claims, s.AccessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *JWTService) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(tokenString, claims, s.RefreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *JWTService) VerifyControl(tokenString string) error {
	return s.parse(tokenString, &jwt.RegisteredClaims{}, s.RefreshSecret)
}

func (s *JWTService) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return ErrInvalidToken
	}
	return nil
}

func (s *JWTService) Revoke(refreshToken string) {
	claims, err := s.VerifyRefresh(refreshToken)
	if err != nil {
		s.Log.Infow("revoke skipped, invalid refresh token", "error", err)
		return
	}
	if err := s.RefreshTokens.DeleteByUserToken(claims.IDUser, claims.Token); err != nil {
		s.Log.Errorw("revoke failed to delete refresh token", "error", err)
	}
}
