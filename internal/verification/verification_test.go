package verification_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Guiladg/wacookieexpress/internal/apperr"
	"github.com/Guiladg/wacookieexpress/internal/mocks"
	"github.com/Guiladg/wacookieexpress/internal/models"
	"github.com/Guiladg/wacookieexpress/internal/verification"
)

func TestIssueCode(t *testing.T) {
	codes := new(mocks.VerificationCodeStore)
	notifier := new(mocks.Notifier)
	s := &verification.Service{Codes: codes, Notifier: notifier}

	var saved *models.VerificationCode
	codes.On("Create", mock.AnythingOfType("*models.VerificationCode")).
		Run(func(args mock.Arguments) { saved = args.Get(0).(*models.VerificationCode) }).
		Return(nil).
		Once()
	notifier.On("SendVerificationCode", mock.Anything, "541144445555", mock.AnythingOfType("string")).
		Return(nil).
		Once()

	err := s.IssueCode(context.Background(), "541144445555")
	assert.NoError(t, err)

	// Six decimal digits, never starting with zero.
	n, convErr := strconv.Atoi(saved.Token)
	assert.NoError(t, convErr)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)

	assert.Equal(t, "541144445555", saved.Phone)
	assert.InDelta(t, time.Now().Add(verification.TTL).Unix(), saved.ExpiresAt, 2)

	// The delivered code is the persisted one.
	notifier.AssertCalled(t, "SendVerificationCode", mock.Anything, "541144445555", saved.Token)
	codes.AssertExpectations(t)
}

func TestIssueCodePersistenceFailureIsServerError(t *testing.T) {
	codes := new(mocks.VerificationCodeStore)
	notifier := new(mocks.Notifier)
	s := &verification.Service{Codes: codes, Notifier: notifier}

	codes.On("Create", mock.AnythingOfType("*models.VerificationCode")).
		Return(errors.New("connection refused"))

	err := s.IssueCode(context.Background(), "541144445555")

	var appErr *apperr.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status())
	notifier.AssertNotCalled(t, "SendVerificationCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueCodeDeliveryFailureIsClientError(t *testing.T) {
	codes := new(mocks.VerificationCodeStore)
	notifier := new(mocks.Notifier)
	s := &verification.Service{Codes: codes, Notifier: notifier}

	codes.On("Create", mock.AnythingOfType("*models.VerificationCode")).Return(nil)
	notifier.On("SendVerificationCode", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("unreachable"))

	err := s.IssueCode(context.Background(), "541144445555")

	var appErr *apperr.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status())
}
