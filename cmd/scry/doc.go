// Scry is a CLI for reviewing code diffs with LLM providers.
//
// It reviews unstaged, staged, range, whole-file, stdin, and GitHub
// pull-request diffs, emitting a structured verdict with deterministic exit
// codes suitable for CI gating.
//
// Usage:
//
//	scry review                        # review working tree changes
//	scry review --staged               # review staged changes
//	scry review --range main..HEAD     # review a revision range
//	scry review --files a.go,b.go      # review whole files
//	scry review --stdin --base old.go  # review piped content against a base
//	scry github owner/repo#42 --post   # review a pull request and comment
//
// See https://github.com/scry-dev/scry for full documentation.
package main
