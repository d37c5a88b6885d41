// Package redact scrubs likely secrets from diff text before it leaves the
// machine for a provider call.
package redact
