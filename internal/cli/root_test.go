package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/veon-api/internal/cli"
	"github.com/jhoicas/veon-api/pkg/jwt"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("JWT_ISSUER", "veonctl-test")
	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestToken_EmiteTokenVerificable(t *testing.T) {
	out, err := run(t, "token", "--uid", "u1", "--email", "ana@example.com", "--secret", "s3cr3t", "--minutes", "5")
	require.NoError(t, err)

	claims, err := jwt.NewVerifier("s3cr3t", "veonctl-test").Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.True(t, claims.EmailVerified)
}

func TestToken_RequiereUID(t *testing.T) {
	_, err := run(t, "token", "--secret", "s3cr3t")
	assert.ErrorContains(t, err, "--uid")
}

func TestMigrate_SoloPostgres(t *testing.T) {
	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "postgres")
}

func TestStats_RequiereUID(t *testing.T) {
	_, err := run(t, "stats")
	assert.ErrorContains(t, err, "--uid")
}
