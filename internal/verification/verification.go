package verification

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/Guiladg/wacookieexpress/internal/apperr"
	"github.com/Guiladg/wacookieexpress/internal/models"
	"github.com/Guiladg/wacookieexpress/internal/notify"
	"github.com/Guiladg/wacookieexpress/internal/stores"
)

// TTL is how long a code stays valid after issuance.
const TTL = 10 * time.Minute

// Service generates verification codes, persists them and delivers them to
// the target phone.
type Service struct {
	Codes    stores.VerificationCodeStore
	Notifier notify.Notifier
}

// newCode returns a uniform six-digit decimal code, 100000 to 999999.
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}

// IssueCode creates and stores a fresh code for phone, then sends it over
// WhatsApp. Persistence failures are server errors; delivery failures are
// client-facing, the user gave us a phone we could not reach.
func (s *Service) IssueCode(ctx context.Context, phone string) error {
	code, err := newCode()
	if err != nil {
		return apperr.Internal("could not generate verification code", err)
	}

	now := time.Now()
	record := &models.VerificationCode{
		Phone:     phone,
		Token:     code,
		ExpiresAt: now.Add(TTL).Unix(),
	}
	if err := s.Codes.Create(record); err != nil {
		return apperr.Database("could not save verification code", err)
	}

	if err := s.Notifier.SendVerificationCode(ctx, phone, code); err != nil {
		return apperr.BadRequest("could not deliver verification code")
	}
	return nil
}
