// Package errors provides the error type and exit code mapping for snowkit.
//
// All command failures flow through SnowkitError so that main can translate
// them into process exit codes. Constructors exist for the common failure
// categories (connection, query, compute pool, service, image, scaffold).
package errors
