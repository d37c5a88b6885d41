// Package github fetches pull-request diffs and posts review comments via
// the GitHub REST API.
package github
