package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSendVerificationCode(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody templateMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWhatsAppNotifier("12345", "send-token", zap.NewNop().Sugar())
	n.BaseURL = srv.URL

	err := n.SendVerificationCode(context.Background(), "541144445555", "654321")
	assert.NoError(t, err)

	assert.Equal(t, "/12345/messages", gotPath)
	assert.Equal(t, "Bearer send-token", gotAuth)
	assert.Equal(t, "whatsapp", gotBody.MessagingProduct)
	assert.Equal(t, "541144445555", gotBody.To)
	assert.Equal(t, "template", gotBody.Type)
	assert.Equal(t, verificationTemplate, gotBody.Template.Name)
	assert.Equal(t, "es_AR", gotBody.Template.Language.Code)

	// The code rides in the body text and in the copy-code button.
	assert.Len(t, gotBody.Template.Components, 2)
	assert.Equal(t, "654321", gotBody.Template.Components[0].Parameters[0].Text)
	assert.Equal(t, "button", gotBody.Template.Components[1].Type)
	assert.Equal(t, "654321", gotBody.Template.Components[1].Parameters[0].Text)
}

func TestSendVerificationCodeRejectedByAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid recipient"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewWhatsAppNotifier("12345", "send-token", zap.NewNop().Sugar())
	n.BaseURL = srv.URL

	err := n.SendVerificationCode(context.Background(), "000", "654321")
	assert.Error(t, err)
}
