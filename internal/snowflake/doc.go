// Package snowflake manages the Snowflake connection lifecycle and
// statement execution for snowkit.
//
// # Connection Pool
//
// Pool caches at most one live database handle together with the
// authentication token that produced it. A cached handle is reused as
// long as the token in effect has not changed; when the token rotates
// (SPCS refreshes the injected token file periodically), the old handle
// is closed best-effort and a new one is established. All acquire and
// reconnect decisions are serialized by a mutex, so concurrent callers
// never race into duplicate connections.
//
// # Authentication
//
// The authentication mode is an explicit, injected strategy rather than
// an implicit filesystem probe inside the pool:
//
//	auth := snowflake.DetectAuthenticator(cfg, system.DefaultFS())
//	pool := snowflake.NewPool(cfg, auth)
//
// TokenFileAuthenticator re-reads the well-known token file on every
// acquire, which is what makes rotation detection work. Password and
// external-browser authenticators carry no token, so their handles are
// reused for the life of the process.
//
// # Query Execution
//
// Executor runs a statement with a bounded retry budget (default one
// retry). An error is retryable only when it is connection-level:
// expired OAuth/session token, a terminated or stale connection, or a
// network failure. Retryable failures invalidate the pool before the
// re-execution; everything else propagates unchanged.
package snowflake
