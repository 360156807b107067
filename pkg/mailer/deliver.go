package mailer

import (
	"context"
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/coursenet/pkg/mailer/templates"
)

// ErrInvalidJob marks jobs that can never be delivered; consumers drop them instead of requeueing.
var ErrInvalidJob = errors.New("invalid email job")

// Sender is satisfied by *Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Deliver renders job (when it names a template) and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if !job.Valid() {
		return ErrInvalidJob
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrInvalidJob, job.Template, err)
		}
	}
	return s.Send(ctx, job.To, subject, text, html)
}
