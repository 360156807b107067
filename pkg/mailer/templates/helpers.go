package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithAppName(name string) Option { return func(d *EmailData) { d.AppName = name } }

// WithSiteURL sets the site root and derives the page links from it.
func WithSiteURL(site string) Option {
	return func(d *EmailData) {
		site = strings.TrimRight(site, "/")
		d.SiteURL = site
		d.MakePostURL = site + "/make-post"
		d.CommunityURL = site + "/community"
	}
}

// NewWelcomeData builds the data for the "welcome" template sent after registration.
func NewWelcomeData(name, email string, opts ...Option) map[string]any {
	d := EmailData{Name: name, Email: email, Type: Welcome}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
