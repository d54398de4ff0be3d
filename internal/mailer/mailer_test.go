package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	m := New("mail.example.com", 587, "user", "pass", "noreply@example.com")

	pdf := []byte("%PDF-1.4 fake")
	msg := m.compose("me@example.com", "Monthly expenses", "See attached.", pdf, "expenses.pdf")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "From: noreply@example.com")
	assert.Contains(t, raw, "To: me@example.com")
	assert.Contains(t, raw, "Subject: Monthly expenses")
	assert.Contains(t, raw, "See attached.")
	assert.Contains(t, raw, `filename="expenses.pdf"`)
}

func TestComposeWithoutAttachment(t *testing.T) {
	m := New("mail.example.com", 587, "user", "pass", "noreply@example.com")

	msg := m.compose("me@example.com", "Monthly expenses", "Nothing recorded this month.", nil, "")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "attachment")
}
