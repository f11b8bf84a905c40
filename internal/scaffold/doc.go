// Package scaffold generates a Next.js dashboard project wired to
// Snowflake, ready for local development and SPCS deployment.
//
// The generated project contains the app skeleton (package.json, next
// config, layout, page), a query API route, the Snowflake connection
// helper used by the route, a production Dockerfile, and environment
// files. The connection helper mirrors the behavior of snowkit's own
// pool: token-file authentication when running inside SPCS, cached
// connection recycled on token rotation, and a single retry for expired
// tokens and dropped connections.
package scaffold
