package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Notifier delivers verification codes to a phone out-of-band.
type Notifier interface {
	SendVerificationCode(ctx context.Context, phone, code string) error
}

// verificationTemplate is the approved WhatsApp message template. The code
// appears in the body text and in the copy-code URL button.
const verificationTemplate = "phone_number_verification"

// WhatsAppNotifier sends template messages through the WhatsApp Cloud API.
type WhatsAppNotifier struct {
	PhoneID string
	Token   string
	BaseURL string
	Client  *http.Client
	Log     *zap.SugaredLogger
}

func NewWhatsAppNotifier(phoneID, token string, log *zap.SugaredLogger) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		PhoneID: phoneID,
		Token:   token,
		BaseURL: "https://graph.facebook.com/v19.0",
		Client:  &http.Client{Timeout: 10 * time.Second},
		Log:     log,
	}
}

type templateMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Template         template `json:"template"`
}

type template struct {
	Name       string      `json:"name"`
	Language   language    `json:"language"`
	Components []component `json:"components"`
}

type language struct {
	Code string `json:"code"`
}

type component struct {
	Type       string      `json:"type"`
	SubType    string      `json:"sub_type,omitempty"`
	Index      *int        `json:"index,omitempty"`
	Parameters []parameter `json:"parameters"`
}

type parameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (n *WhatsAppNotifier) SendVerificationCode(ctx context.Context, phone, code string) error {
	buttonIndex := 0
	msg := templateMessage{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "template",
		Template: template{
			Name:     verificationTemplate,
			Language: language{Code: "es_AR"},
			Components: []component{
				{
					Type:       "body",
					Parameters: []parameter{{Type: "text", Text: code}},
				},
				{
					Type:       "button",
					SubType:    "url",
					Index:      &buttonIndex,
					Parameters: []parameter{{Type: "text", Text: code}},
				},
			},
		},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", n.BaseURL, n.PhoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+n.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		n.Log.Errorw("whatsapp send failed",
			"status", resp.StatusCode, "phone", phone, "body", string(detail))
		return fmt.Errorf("whatsapp send failed with status %d", resp.StatusCode)
	}
	return nil
}
