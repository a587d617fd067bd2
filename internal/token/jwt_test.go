package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Guiladg/wacookieexpress/internal/mocks"
	"github.com/Guiladg/wacookieexpress/internal/models"
	"github.com/Guiladg/wacookieexpress/internal/token"
)

func newService(ledger *mocks.RefreshTokenStore) *token.JWTService {
	return &token.JWTService{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		RefreshTokens: ledger,
		Log:           zap.NewNop().Sugar(),
	}
}

func TestIssueSessionTokens(t *testing.T) {
	ledger := new(mocks.RefreshTokenStore)
	s := newService(ledger)

	u := &models.User{ID: 7, Phone: "541144445555", Role: "admin"}

	var saved *models.RefreshToken
	ledger.On("Create", mock.AnythingOfType("*models.RefreshToken")).
		Run(func(args mock.Arguments) { saved = args.Get(0).(*models.RefreshToken) }).
		Return(nil).
		Once()

	tokens, err := s.IssueSessionTokens(u)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)
	assert.NotEmpty(t, tokens.Control)

	// Access token carries the user identity.
	accessClaims, err := s.VerifyAccess(tokens.Access)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), accessClaims.ID)
	assert.Equal(t, "541144445555", accessClaims.Phone)
	assert.Equal(t, "admin", accessClaims.Role)

	// The refresh token's identifier is exactly the one written to the
	// ledger, tied to the user, with a future expiry.
	refreshClaims, err := s.VerifyRefresh(tokens.Refresh)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), refreshClaims.IDUser)
	assert.Equal(t, saved.Token, refreshClaims.Token)
	assert.Equal(t, uint(7), saved.UserID)
	assert.Greater(t, saved.ExpiresAt, time.Now().Unix())

	ledger.AssertExpectations(t)
}

func TestIssueSessionTokensLedgerFailure(t *testing.T) {
	ledger := new(mocks.RefreshTokenStore)
	s := newService(ledger)

	ledger.On("Create", mock.AnythingOfType("*models.RefreshToken")).
		Return(assert.AnError)

	tokens, err := s.IssueSessionTokens(&models.User{ID: 1})
	assert.Error(t, err)
	assert.Nil(t, tokens)
}

func TestIssueSessionTokensUniqueIdentifiers(t *testing.T) {
	ledger := new(mocks.RefreshTokenStore)
	s := newService(ledger)

	ledger.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	u := &models.User{ID: 3, Phone: "541144445555", Role: "admin"}
	first, err := s.IssueSessionTokens(u)
	assert.NoError(t, err)
	second, err := s.IssueSessionTokens(u)
	assert.NoError(t, err)

	a, _ := s.VerifyRefresh(first.Refresh)
	b, _ := s.VerifyRefresh(second.Refresh)
	assert.NotEqual(t, a.Token, b.Token)
}

func TestVerifyAccessRejectsWrongSecret(t *testing.T) {
	ledger := new(mocks.RefreshTokenStore)
	ledger.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	s := newService(ledger)
	other := newService(ledger)
	other.AccessSecret = []byte("another-secret")

	tokens, err := s.IssueSessionTokens(&models.User{ID: 1, Phone: "5491100000000"})
	assert.NoError(t, err)

	_, err = other.VerifyAccess(tokens.Access)
	assert.Error(t, err)
}

func TestVerifyAccessRejectsExpired(t *testing.T) {
	ledger := new(mocks.RefreshTokenStore)
	ledger.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	s := newService(ledger)
	s.AccessTTL = -time.Minute

	tokens, err := s.IssueSessionTokens(&models.User{ID: 1})
	assert.NoError(t, err)

	_, err = s.VerifyAccess(tokens.Access)
	assert.Error(t, err)
}

func TestControlTokenUsesRefreshSecret(t *testing.T) {
	ledger := new(mocks.RefreshTokenStore)
	ledger.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	s := newService(ledger)
	tokens, err := s.IssueSessionTokens(&models.User{ID: 1})
	assert.NoError(t, err)

	assert.NoError(t, s.VerifyControl(tokens.Control))

	// The access secret must not validate refresh-family tokens.
	s.RefreshSecret = s.AccessSecret
	assert.Error(t, s.VerifyControl(tokens.Control))
}

func TestRevokeDeletesLedgerRecord(t *testing.T) {
	ledger := new(mocks.RefreshTokenStore)
	s := newService(ledger)

	ledger.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	tokens, err := s.IssueSessionTokens(&models.User{ID: 9})
	assert.NoError(t, err)

	claims, _ := s.VerifyRefresh(tokens.Refresh)
	ledger.On("DeleteByUserToken", uint(9), claims.Token).Return(nil).Once()

	s.Revoke(tokens.Refresh)
	ledger.AssertExpectations(t)
}

func TestRevokeSwallowsInvalidToken(t *testing.T) {
	ledger := new(mocks.RefreshTokenStore)
	s := newService(ledger)

	// No ledger call expected; garbage input is logged and dropped.
	s.Revoke("not-a-jwt")
	ledger.AssertNotCalled(t, "DeleteByUserToken", mock.Anything, mock.Anything)
}
