package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition = errors.New("action not allowed in the current interview state")
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoCurrentQuestion = errors.New("no question is waiting for an answer")
)

// ValidationError carries one message per violated form rule.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// ResponseParseError is returned when completion output holds no usable JSON.
type ResponseParseError struct {
	Raw string
	Err error
}

func (e *ResponseParseError) Error() string {
	if e.Err != nil {
		return "could not parse completion response: " + e.Err.Error()
	}
	return "could not parse completion response"
}

func (e *ResponseParseError) Unwrap() error { return e.Err }

// ServiceError wraps transport and authentication failures from a provider.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s completion request failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ConfigError means the provider cannot be used with the current settings.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
