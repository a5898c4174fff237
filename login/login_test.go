package login

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticStripsOAuthPrefix(t *testing.T) {
	creds, err := Static("forsen", "oauth:abc123").Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, Credentials{Login: "forsen", Token: "abc123"}, creds)
	require.False(t, creds.Anonymous())

	creds, err = Static("forsen", "abc123").Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "abc123", creds.Token)
}

func TestAnonymous(t *testing.T) {
	creds, err := Anonymous().Get(context.Background())
	require.NoError(t, err)
	require.Regexp(t, `^justinfan\d{5}$`, creds.Login)
	require.True(t, creds.Anonymous())
}
