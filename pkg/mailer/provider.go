package mailer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	providerResend    = "resend"
	resendAPIURL      = "https://api.resend.com"
	pathResendEmails  = "/emails"
	pathResendAPIKeys = "/api-keys"

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	authBearerPrefix    = "Bearer "
	mimeApplicationJSON = "application/json"

	msgFailedMarshalPayloadFmt = "failed to marshal payload: %v"
	msgFailedCreateRequestFmt  = "failed to create request: %v"
	msgRequestFailedFmt        = "request failed: %v"
	msgAPIErrorFmt             = "resend API error (status %d): %s"
	msgFailedParseResponseFmt  = "failed to parse response: %v"
)

var errAPIKeyRequired = errors.New("API key is required")

type EmailProvider interface {
	Send(emailData *EmailData) (*EmailResult, error)
	Verify() (bool, error)
	GetName() string
}

type EmailData struct {
	To      []string
	From    string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

type EmailResult struct {
	Success   bool
	MessageID string
	Error     string
	Provider  string
}

// ResendProvider sends mail through the Resend HTTP API
type ResendProvider struct {
	apiKey string
	apiURL string
}

type ResendConfig struct {
	APIKey string
	APIURL string
}

func NewResendProvider(config ResendConfig) *ResendProvider {
	apiURL := config.APIURL
	if apiURL == "" {
		apiURL = resendAPIURL
	}

	return &ResendProvider{
		apiKey: config.APIKey,
		apiURL: apiURL,
	}
}

func (p *ResendProvider) GetName() string {
	return providerResend
}

func (p *ResendProvider) Send(emailData *EmailData) (*EmailResult, error) {
	if p.apiKey == "" {
		return &EmailResult{
			Success:  false,
			Error:    errAPIKeyRequired.Error(),
			Provider: providerResend,
		}, errAPIKeyRequired
	}

	payload := map[string]interface{}{
		"from":    emailData.From,
		"to":      emailData.To,
		"subject": emailData.Subject,
		"html":    emailData.HTML,
	}

	if emailData.Text != "" {
		payload["text"] = emailData.Text
	}

	if emailData.ReplyTo != "" {
		payload["reply_to"] = emailData.ReplyTo
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(msgFailedMarshalPayloadFmt, err),
			Provider: providerResend,
		}, err
	}

	req, err := http.NewRequest(http.MethodPost, p.apiURL+pathResendEmails, bytes.NewBuffer(jsonData))
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(msgFailedCreateRequestFmt, err),
			Provider: providerResend,
		}, err
	}

	req.Header.Set(headerAuthorization, authBearerPrefix+p.apiKey)
	req.Header.Set(headerContentType, mimeApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(msgRequestFailedFmt, err),
			Provider: providerResend,
		}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := fmt.Errorf(msgAPIErrorFmt, resp.StatusCode, string(body))
		return &EmailResult{
			Success:  false,
			Error:    apiErr.Error(),
			Provider: providerResend,
		}, apiErr
	}

	var result struct {
		ID string `json:"id"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(msgFailedParseResponseFmt, err),
			Provider: providerResend,
		}, err
	}

	return &EmailResult{
		Success:   true,
		MessageID: result.ID,
		Provider:  providerResend,
	}, nil
}

func (p *ResendProvider) Verify() (bool, error) {
	if p.apiKey == "" {
		return false, errAPIKeyRequired
	}

	req, err := http.NewRequest(http.MethodGet, p.apiURL+pathResendAPIKeys, nil)
	if err != nil {
		return false, err
	}

	req.Header.Set(headerAuthorization, authBearerPrefix+p.apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}
