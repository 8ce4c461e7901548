package yoga

import (
	"fmt"
	"strings"
	"time"
)

// Logger takes a message followed by alternating keys and values
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds auth and transport options
type Config interface {
	GetSigningKey() string
	GetContextKey() string
	GetTokenExpiration() time.Duration
	GetTokenLookup() string
	GetAuthScheme() string
	GetIssuer() string
}

// TokenService issues and checks bearer tokens
type TokenService interface {
	Issue(subject string) (string, error)
	Validate(token string) bool
	SubjectOf(token string) string
	Parse(token string) (*JWTClaims, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// defLogger writes to stdout. Arguments after the message are printed as
// key=value pairs.
type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println(formatLine("[ERR]", msg, args))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Println(formatLine("[WRN]", msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println(formatLine("[INF]", msg, args))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println(formatLine("[DBG]", msg, args))
}

func formatLine(level, msg string, args []any) string {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" YOGA ")
	b.WriteString(strings.TrimRight(msg, "\n"))
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}
	return b.String()
}

// nopLogger drops every message
type nopLogger struct{}

func (nopLogger) Error(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}

// NopLogger returns a Logger that discards output
func NopLogger() Logger {
	return nopLogger{}
}
