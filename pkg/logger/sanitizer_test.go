package logger

import (
	"strings"
	"testing"
)

func TestSanitizeLogMessage(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantGone string
	}{
		{"Password assignment", "login failed password=hunter2 for user", "hunter2"},
		{"Bearer token", "rejected bearer eyJhbGciOiJIUzI1NiJ9.payload", "eyJhbGciOiJIUzI1NiJ9"},
		{"JWT label", "jwt: abc.def.ghi could not be parsed", "abc.def.ghi"},
		{"Secret colon", "secret: supersensitive", "supersensitive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeLogMessage(tt.message)
			if strings.Contains(got, tt.wantGone) {
				t.Errorf("SanitizeLogMessage(%q) = %q, still contains %q", tt.message, got, tt.wantGone)
			}
			if !strings.Contains(got, redactedPlaceholder) {
				t.Errorf("SanitizeLogMessage(%q) = %q, expected placeholder", tt.message, got)
			}
		})
	}
}

func TestSanitizeLogMessage_LeavesCleanLinesAlone(t *testing.T) {
	message := "task 42 updated by admin"
	if got := SanitizeLogMessage(message); got != message {
		t.Errorf("SanitizeLogMessage(%q) = %q, want unchanged", message, got)
	}
}

func TestSanitizeMap(t *testing.T) {
	data := map[string]any{
		"email":         "owner@acme.example",
		"password_hash": "$2a$12$abcdefg",
		"token":         "eyJhbGciOiJIUzI1NiJ9",
		"note":          "reset password=hunter2 please",
		"count":         3,
	}

	got := SanitizeMap(data)

	if got["password_hash"] != redactedPlaceholder {
		t.Errorf("password_hash = %v, want redacted", got["password_hash"])
	}
	if got["token"] != redactedPlaceholder {
		t.Errorf("token = %v, want redacted", got["token"])
	}
	if got["email"] != "owner@acme.example" {
		t.Errorf("email = %v, want unchanged", got["email"])
	}
	if got["count"] != 3 {
		t.Errorf("count = %v, want unchanged", got["count"])
	}
	if note, _ := got["note"].(string); strings.Contains(note, "hunter2") {
		t.Errorf("note = %q, embedded credential should be redacted", note)
	}

	// Input map must not be mutated
	if data["token"] != "eyJhbGciOiJIUzI1NiJ9" {
		t.Error("SanitizeMap mutated its input")
	}
}
