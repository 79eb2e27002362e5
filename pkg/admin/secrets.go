package admin

import (
	"fmt"

	"sectionbot/pkg/store"
)

const (
	configDocument  = "config"
	defaultPassword = "admin123"

	passwordKey = "admin_password"
	botTokenKey = "bot_token"
)

// Secrets reads the small configuration document: the shared admin
// password and the service credential fallback. The password is the only
// field this package rewrites; other keys pass through untouched.
type Secrets struct {
	docs *store.DocumentStore
}

// NewSecrets wraps a document store.
func NewSecrets(docs *store.DocumentStore) *Secrets {
	return &Secrets{docs: docs}
}

// Password returns the stored admin password, falling back to the built-in
// default when the document or field is absent.
func (s *Secrets) Password() string {
	doc := map[string]any{}
	if err := s.docs.Read(configDocument, &doc); err != nil {
		return defaultPassword
	}

	if value, ok := doc[passwordKey].(string); ok && value != "" {
		return value
	}

	return defaultPassword
}

// SetPassword rewrites the password field, preserving every other key of
// the configuration document.
func (s *Secrets) SetPassword(password string) error {
	doc := map[string]any{}
	if err := s.docs.Read(configDocument, &doc); err != nil {
		return fmt.Errorf("set password: %w", err)
	}

	doc[passwordKey] = password
	if err := s.docs.Write(configDocument, doc); err != nil {
		return fmt.Errorf("set password: %w", err)
	}

	return nil
}

// BotToken returns the service credential stored in the configuration
// document, or empty when unset.
func (s *Secrets) BotToken() string {
	doc := map[string]any{}
	if err := s.docs.Read(configDocument, &doc); err != nil {
		return ""
	}

	if value, ok := doc[botTokenKey].(string); ok {
		return value
	}

	return ""
}
