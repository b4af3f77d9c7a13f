package mailer

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/partnerhub/internal/config"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

func TestPasswordResetEmailKeptInOutbox(t *testing.T) {
	logger.SetOutput(io.Discard)
	svc := NewEmailService(&config.SandboxConfig{FromEmail: "noreply@partnerhub.local"})

	link := "http://localhost:3000/reset-password/confirm?uid=MQ&token=abc"
	require.NoError(t, svc.SendPasswordResetEmail("kim@example.com", link))

	out := svc.Outbox()
	require.Len(t, out, 1)
	assert.Equal(t, "kim@example.com", out[0].To)
	raw := string(out[0].Raw)
	assert.Contains(t, raw, "From: noreply@partnerhub.local")
	assert.Contains(t, raw, "To: kim@example.com")
	assert.Contains(t, raw, "Content-Type: text/html")
}
