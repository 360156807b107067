package application

import "expvar"

// Counters published under /debug/vars.
var metrics = expvar.NewMap("coursenet")

const (
	metricUsersRegistered = "users_registered"
	metricLoginsOK        = "logins_ok"
	metricLoginsFailed    = "logins_failed"
	metricLogouts         = "logouts"
	metricPostsCreated    = "posts_created"
	metricSearches        = "searches"
	metricSearchFallbacks = "search_fallbacks"
)
