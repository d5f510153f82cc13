package validator

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		shouldErr bool
	}{
		{"Valid email", "user@example.com", false},
		{"Valid with plus", "user+tag@example.com", false},
		{"Valid subdomain", "user@mail.example.co.uk", false},
		{"Empty", "", true},
		{"Missing at", "userexample.com", true},
		{"Missing domain", "user@", true},
		{"Missing TLD", "user@example", true},
		{"Too long", strings.Repeat("a", 250) + "@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.email)
			if tt.shouldErr && err == nil {
				t.Errorf("Email(%q) expected error, got nil", tt.email)
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Email(%q) unexpected error: %v", tt.email, err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		shouldErr bool
	}{
		{"Valid", "correct-horse-battery", false},
		{"Minimum length", "12345678", false},
		{"Too short", "1234567", true},
		{"Empty", "", true},
		{"Too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if tt.shouldErr && err == nil {
				t.Errorf("Password(%q) expected error, got nil", tt.password)
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Password(%q) unexpected error: %v", tt.password, err)
			}
		})
	}
}

func TestName(t *testing.T) {
	if err := Name("Engineering"); err != nil {
		t.Errorf("Name() unexpected error: %v", err)
	}
	if err := Name(""); err == nil {
		t.Error("Name(\"\") expected error, got nil")
	}
	if err := Name(strings.Repeat("a", 256)); err == nil {
		t.Error("Name() expected error for overlong input, got nil")
	}
}

func TestBody(t *testing.T) {
	if err := Body("Please review the attached quote."); err != nil {
		t.Errorf("Body() unexpected error: %v", err)
	}
	if err := Body("   "); err == nil {
		t.Error("Body() expected error for whitespace-only input, got nil")
	}
	if err := Body(strings.Repeat("a", 10001)); err == nil {
		t.Error("Body() expected error for overlong input, got nil")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name      string
		fileName  string
		shouldErr bool
	}{
		{"Valid", "quote.pdf", false},
		{"Valid with spaces", "site survey 2024.xlsx", false},
		{"Empty", "", true},
		{"Path traversal", "../etc/passwd", true},
		{"Forward slash", "dir/file.txt", true},
		{"Backslash", "dir\\file.txt", true},
		{"Control character", "file\x00.txt", true},
		{"Too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FileName(tt.fileName)
			if tt.shouldErr && err == nil {
				t.Errorf("FileName(%q) expected error, got nil", tt.fileName)
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("FileName(%q) unexpected error: %v", tt.fileName, err)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		shouldErr   bool
	}{
		{"Empty is allowed", "", false},
		{"Valid", "application/pdf", false},
		{"Valid with charset", "text/plain; charset=utf-8", false},
		{"Garbage", "not a media type", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ContentType(tt.contentType)
			if tt.shouldErr && err == nil {
				t.Errorf("ContentType(%q) expected error, got nil", tt.contentType)
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ContentType(%q) unexpected error: %v", tt.contentType, err)
			}
		})
	}
}

func TestFileSize(t *testing.T) {
	if err := FileSize(1024); err != nil {
		t.Errorf("FileSize(1024) unexpected error: %v", err)
	}
	if err := FileSize(-1); err == nil {
		t.Error("FileSize(-1) expected error, got nil")
	}
	if err := FileSize(maxFileSizeBytes + 1); err == nil {
		t.Error("FileSize() expected error above the limit, got nil")
	}
}
