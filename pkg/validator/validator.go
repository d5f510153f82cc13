package validator

import (
	"fmt"
	"mime"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxNameLen        = 255
	maxTitleLen       = 255
	maxBodyLen        = 10000
	maxFileNameLen    = 255
	maxContentTypeLen = 255
	maxFileSizeGB     = 1
	maxFileSizeBytes  = int64(1024 * 1024 * 1024)
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errPasswordMinLengthFmt    = "password must be at least %d characters"
	errPasswordMaxLengthFmt    = "password must not exceed %d characters"
	errNameEmptyFmt            = "name cannot be empty"
	errNameMaxLengthFmt        = "name must not exceed %d characters"
	errTitleEmptyFmt           = "title cannot be empty"
	errTitleMaxLengthFmt       = "title must not exceed %d characters"
	errBodyEmptyFmt            = "body cannot be empty"
	errBodyMaxLengthFmt        = "body must not exceed %d characters"
	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errFileNameControlCharsFmt = "file name cannot contain control characters"
	errContentTypeMaxLengthFmt = "content type must not exceed %d characters"
	errContentTypeInvalidFmt   = "invalid content type"
	errFileSizeNegativeFmt     = "file size cannot be negative"
	errFileSizeMaxFmt          = "file size exceeds maximum of %dGB"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

// Name validates entity names: organizations, departments, vendors, materials
func Name(name string) error {
	if name == "" {
		return fmt.Errorf(errNameEmptyFmt)
	}

	if len(name) > maxNameLen {
		return fmt.Errorf(errNameMaxLengthFmt, maxNameLen)
	}

	return nil
}

// Title validates a task title
func Title(title string) error {
	if title == "" {
		return fmt.Errorf(errTitleEmptyFmt)
	}

	if len(title) > maxTitleLen {
		return fmt.Errorf(errTitleMaxLengthFmt, maxTitleLen)
	}

	return nil
}

// Body validates free-text content such as comment bodies
func Body(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf(errBodyEmptyFmt)
	}

	if len(body) > maxBodyLen {
		return fmt.Errorf(errBodyMaxLengthFmt, maxBodyLen)
	}

	return nil
}

// FileName validates an attachment file name
func FileName(name string) error {
	if name == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}

	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf(errFileNamePathSepFmt)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errFileNameControlCharsFmt)
		}
	}

	return nil
}

// FileSize validates an attachment size
func FileSize(size int64) error {
	if size < 0 {
		return fmt.Errorf(errFileSizeNegativeFmt)
	}

	if size > maxFileSizeBytes {
		return fmt.Errorf(errFileSizeMaxFmt, maxFileSizeGB)
	}

	return nil
}

func ContentType(contentType string) error {
	if contentType == "" {
		return nil
	}

	if len(contentType) > maxContentTypeLen {
		return fmt.Errorf(errContentTypeMaxLengthFmt, maxContentTypeLen)
	}

	if _, _, err := mime.ParseMediaType(contentType); err != nil {
		return fmt.Errorf(errContentTypeInvalidFmt)
	}

	return nil
}
