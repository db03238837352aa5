package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify inference provider failures. Throttled and unavailable
// errors are retried with backoff; quota and bad-request errors are fatal
// immediately because retrying cannot succeed.
var (
	ErrTagRateLimited   = goerr.NewTag("rate_limited")
	ErrTagQuotaExceeded = goerr.NewTag("quota_exceeded")
	ErrTagUnavailable   = goerr.NewTag("unavailable")
	ErrTagBadRequest    = goerr.NewTag("bad_request")
)

// ErrGoalNotAchieved marks a session that ended without extracting release
// information. It is a graceful "no result" outcome, not a crash: the CLI
// exits non-zero without writing an output document.
var ErrGoalNotAchieved = goerr.New("navigation finished without extracting release information")
