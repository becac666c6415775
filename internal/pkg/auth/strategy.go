package auth

import "time"

// Strategy issues and verifies tokens bound to an operator login.
type Strategy interface {
	IssueToken(operator string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
