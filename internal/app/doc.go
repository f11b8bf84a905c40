// Package app provides the application context for snowkit.
// It allows dependency injection for testing.
package app
