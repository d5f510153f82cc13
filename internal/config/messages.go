package config

import "fmt"

const (
	errRequiredEnvNotSetFmt  = "required environment variable %s is not set"
	warnMalformedEnvValueFmt = "ignoring malformed value for %s, using default"
)

type messageBuilders struct {
	requiredEnvNotSet func(string) string
	malformedEnvValue func(string) string
}

func newMessageBuilders() messageBuilders {
	return messageBuilders{
		requiredEnvNotSet: func(key string) string {
			return fmt.Sprintf(errRequiredEnvNotSetFmt, key)
		},
		malformedEnvValue: func(key string) string {
			return fmt.Sprintf(warnMalformedEnvValueFmt, key)
		},
	}
}

var messages = newMessageBuilders()
