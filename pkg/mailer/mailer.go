package mailer

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
)

var (
	errAtLeastOneProvider  = errors.New("at least one provider is required")
	errProviderNil         = errors.New("provider cannot be nil")
	errEmailDataRequired   = errors.New("email data is required")
	errAtLeastOneRecipient = errors.New("at least one recipient is required")
	errInvalidFromEmail    = errors.New("invalid from email")
	errSubjectRequired     = errors.New("subject is required")
	errHTMLRequired        = errors.New("HTML content is required")
	errAllProvidersFailed  = errors.New("all providers failed")
)

// EmailService sends notification mail, failing over across providers in
// order until one succeeds.
type EmailService struct {
	providers   []EmailProvider
	defaultFrom string
	mu          sync.RWMutex
}

type EmailServiceConfig struct {
	Providers   []EmailProvider
	DefaultFrom string
}

func NewEmailService(config EmailServiceConfig) (*EmailService, error) {
	if len(config.Providers) == 0 {
		return nil, errAtLeastOneProvider
	}

	for _, provider := range config.Providers {
		if provider == nil {
			return nil, errProviderNil
		}
	}

	if config.DefaultFrom != "" {
		if err := validateAddress(config.DefaultFrom); err != nil {
			return nil, errInvalidFromEmail
		}
	}

	providerList := make([]EmailProvider, len(config.Providers))
	copy(providerList, config.Providers)

	return &EmailService{
		providers:   providerList,
		defaultFrom: config.DefaultFrom,
	}, nil
}

func (s *EmailService) Send(emailData *EmailData) (*EmailResult, error) {
	if emailData == nil {
		return nil, errEmailDataRequired
	}

	s.mu.RLock()
	defaultFrom := s.defaultFrom
	providerList := make([]EmailProvider, len(s.providers))
	copy(providerList, s.providers)
	s.mu.RUnlock()

	data := *emailData
	data.To = append([]string(nil), emailData.To...)
	if data.From == "" {
		data.From = defaultFrom
	}

	if err := validate(&data); err != nil {
		return nil, err
	}

	var failures []string
	for _, provider := range providerList {
		result, err := provider.Send(&data)
		if result != nil && result.Success {
			return result, nil
		}

		errorText := ""
		if result != nil && result.Error != "" {
			errorText = result.Error
		} else if err != nil {
			errorText = err.Error()
		}
		failures = append(failures, fmt.Sprintf("%s: %s", provider.GetName(), errorText))
	}

	return &EmailResult{
		Success: false,
		Error:   strings.Join(failures, "; "),
	}, errAllProvidersFailed
}

// SendTemplate renders the template and sends the result
func (s *EmailService) SendTemplate(tmpl *Template, context any, emailData *EmailData) (*EmailResult, error) {
	if emailData == nil {
		emailData = &EmailData{}
	}

	html, text, err := tmpl.Render(context)
	if err != nil {
		return nil, err
	}

	data := *emailData
	data.HTML = html
	data.Text = text

	return s.Send(&data)
}

func validate(data *EmailData) error {
	if len(data.To) == 0 {
		return errAtLeastOneRecipient
	}

	for _, to := range data.To {
		if err := validateAddress(to); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", to, err)
		}
	}

	if err := validateAddress(data.From); err != nil {
		return errInvalidFromEmail
	}

	if data.Subject == "" {
		return errSubjectRequired
	}

	if data.HTML == "" {
		return errHTMLRequired
	}

	return nil
}

func validateAddress(email string) error {
	_, err := mail.ParseAddress(email)
	return err
}
