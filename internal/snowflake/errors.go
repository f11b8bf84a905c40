package snowflake

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/snowflakedb/gosnowflake"
)

// ErrorKind classifies statement failures for retry decisions.
type ErrorKind int

const (
	// KindOther covers everything that must propagate to the caller.
	KindOther ErrorKind = iota

	// KindExpiredToken marks an expired OAuth or session token.
	KindExpiredToken

	// KindConnectionGone marks a terminated or stale connection.
	KindConnectionGone

	// KindNetwork marks a transport-level failure.
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindExpiredToken:
		return "expired-token"
	case KindConnectionGone:
		return "connection-gone"
	case KindNetwork:
		return "network"
	default:
		return "other"
	}
}

// Server error codes surfaced by the driver as SnowflakeError numbers.
const (
	// OAuth access token expired; SPCS rotates the injected token.
	codeOAuthTokenExpired = 390318

	// Authentication (session) token has expired.
	codeSessionTokenExpired = 390114

	// Session no longer exists on the server.
	codeSessionGone = 390111
)

// Classify maps an error to its retry classification. Structured driver
// codes are checked first; the message substrings are a fallback for
// server errors the driver does not tag with a number.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}

	// Cancellation is the caller's decision, never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindOther
	}

	if errors.Is(err, driver.ErrBadConn) {
		return KindConnectionGone
	}

	var sfErr *gosnowflake.SnowflakeError
	if errors.As(err, &sfErr) {
		switch sfErr.Number {
		case codeOAuthTokenExpired, codeSessionTokenExpired:
			return KindExpiredToken
		case codeSessionGone:
			return KindConnectionGone
		}
		// SQLSTATE class 08 is the connection-exception class.
		if strings.HasPrefix(sfErr.SQLState, "08") {
			return KindConnectionGone
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "oauth access token expired"):
		return KindExpiredToken
	case strings.Contains(msg, "terminated connection"):
		return KindConnectionGone
	case strings.Contains(msg, "failed to connect"):
		return KindNetwork
	}

	return KindOther
}

// IsRetryable reports whether the error justifies invalidating the
// cached connection and re-executing the statement.
func IsRetryable(err error) bool {
	return Classify(err) != KindOther
}
