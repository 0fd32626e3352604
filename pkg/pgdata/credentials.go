package pgdata

import (
	"fmt"
	"log/slog"
)

// Credentials is either PasswordCredentials or TokenCredentials.
type Credentials interface {
	validate() error
}

// PasswordCredentials are exchanged for a token when the session opens.
type PasswordCredentials struct {
	Username string
	Password string
}

func (c PasswordCredentials) validate() error {
	if c.Username == "" {
		return fmt.Errorf("%w: missing username", ErrConfiguration)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: missing password", ErrConfiguration)
	}
	return nil
}

// LogValue keeps the password out of logs.
func (c PasswordCredentials) LogValue() slog.Value {
	return slog.GroupValue(slog.String("username", c.Username))
}

// TokenCredentials carry a token issued ahead of time. It is used as is and
// only checked by the server on the first request.
type TokenCredentials struct {
	Token string
}

func (c TokenCredentials) validate() error {
	if c.Token == "" {
		return fmt.Errorf("%w: missing token", ErrConfiguration)
	}
	return nil
}

func (c TokenCredentials) LogValue() slog.Value {
	return slog.StringValue("[token]")
}

// ResolveCredentials picks the credential form from flat settings. Exactly
// one of token or username+password must be set.
func ResolveCredentials(username, password, token string) (Credentials, error) {
	hasPassword := username != "" || password != ""
	switch {
	case token != "" && hasPassword:
		return nil, fmt.Errorf("%w: both token and username/password supplied", ErrConfiguration)
	case token != "":
		return TokenCredentials{Token: token}, nil
	case hasPassword:
		c := PasswordCredentials{Username: username, Password: password}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: either token or username/password is required", ErrConfiguration)
	}
}
