package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandsRegistered(t *testing.T) {
	cmd := rootCmd()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["setup"])
	assert.True(t, names["token"])
	assert.True(t, names["audit-consumer"])
}

func TestTokenCommand(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")

	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"token", "--subject", "alice", "--ttl", "5m"})
	require.NoError(t, cmd.Execute())

	raw := strings.TrimSpace(out.String())
	tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "CURATOR", claims["role"])
	assert.Contains(t, errOut.String(), "expires")
}

func TestTokenCommandNeedsSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"token"})
	assert.Error(t, cmd.Execute())
}

func TestSetupCommandMissingSecrets(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd()
	cmd.SetArgs([]string{"setup", "--secrets", "nope.yaml"})
	assert.Error(t, cmd.Execute())
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
