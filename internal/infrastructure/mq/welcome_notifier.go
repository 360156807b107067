// Package mq queues outgoing mail for cmd/email_worker.
package mq

import (
	"context"
	"time"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/pkg/mailer"
	tpl "github.com/oksasatya/coursenet/pkg/mailer/templates"
)

// Publisher is satisfied by *helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeNotifier enqueues a welcome email for every new account.
type WelcomeNotifier struct {
	Pub     Publisher
	AppName string
	SiteURL string
	Now     func() time.Time
}

func NewWelcomeNotifier(pub Publisher, appName, siteURL string) *WelcomeNotifier {
	return &WelcomeNotifier{Pub: pub, AppName: appName, SiteURL: siteURL, Now: time.Now}
}

func (n *WelcomeNotifier) UserRegistered(ctx context.Context, u entity.User) error {
	data := tpl.NewWelcomeData(u.Name, u.Email,
		tpl.WithAppName(n.AppName),
		tpl.WithSiteURL(n.SiteURL),
		tpl.WithTime(n.Now()),
	)
	job := mailer.EmailJob{To: u.Email, Template: tpl.Welcome, Data: data}
	return n.Pub.PublishJSON(ctx, job)
}
