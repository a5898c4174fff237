// Package login supplies the credentials a connection authenticates with.
package login

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
)

// Credentials authenticate a single connection attempt.
type Credentials struct {
	Login string
	// Token is the OAuth access token, without the "oauth:" prefix.
	// Empty for anonymous read-only logins.
	Token string
}

// Anonymous reports whether these credentials carry no token.
func (c Credentials) Anonymous() bool {
	return c.Token == ""
}

// A Provider yields credentials for each connection attempt, allowing
// tokens to be refreshed between reconnects.
type Provider interface {
	Get(ctx context.Context) (Credentials, error)
}

type staticProvider struct {
	creds Credentials
}

func (p staticProvider) Get(context.Context) (Credentials, error) {
	return p.creds, nil
}

// Static returns a Provider that always yields the same credentials.
// The "oauth:" prefix is stripped from the token if present.
func Static(login, token string) Provider {
	return staticProvider{Credentials{
		Login: login,
		Token: strings.TrimPrefix(token, "oauth:"),
	}}
}

// Anonymous returns a Provider for read-only access under a randomized
// justinfan login, which the server accepts without a token.
func Anonymous() Provider {
	return staticProvider{Credentials{
		Login: fmt.Sprintf("justinfan%d", 10000+rand.Intn(90000)),
	}}
}
