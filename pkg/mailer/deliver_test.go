package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/coursenet/pkg/mailer/templates"
)

type captureSender struct {
	to, subject, text, html string
	err                     error
}

func (c *captureSender) Send(_ context.Context, to, subject, text, html string) error {
	c.to, c.subject, c.text, c.html = to, subject, text, html
	return c.err
}

func TestDeliver_Template(t *testing.T) {
	s := &captureSender{}
	job := EmailJob{
		To:       "ann@x.com",
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData("Ann", "ann@x.com", mailtpl.WithAppName("coursenet")),
	}
	require.NoError(t, Deliver(context.Background(), s, job))
	assert.Equal(t, "ann@x.com", s.to)
	assert.Equal(t, "Welcome to coursenet, Ann", s.subject)
	assert.Contains(t, s.html, "Ann")
}

func TestDeliver_Raw(t *testing.T) {
	s := &captureSender{}
	require.NoError(t, Deliver(context.Background(), s, EmailJob{To: "a@x", Subject: "s", Text: "t"}))
	assert.Equal(t, "s", s.subject)
	assert.Equal(t, "t", s.text)
}

func TestDeliver_InvalidJobs(t *testing.T) {
	s := &captureSender{}
	assert.ErrorIs(t, Deliver(context.Background(), s, EmailJob{Subject: "s"}), ErrInvalidJob)
	assert.ErrorIs(t, Deliver(context.Background(), s, EmailJob{To: "a@x", Template: "no-such-template"}), ErrInvalidJob)
	assert.Empty(t, s.to)
}

func TestDeliver_SendErrorIsRetryable(t *testing.T) {
	s := &captureSender{err: errors.New("mailgun down")}
	err := Deliver(context.Background(), s, EmailJob{To: "a@x", Subject: "s", Text: "t"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidJob)
}
