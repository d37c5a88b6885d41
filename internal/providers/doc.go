// Package providers implements the language-model backends used for review.
//
// The supported kinds form a closed set (anthropic, openai, gemini, ollama),
// each constructor checking its own credential. All providers share one
// retrying HTTP client; rate limits and server errors are retried with
// backoff, authentication failures are returned immediately and detectable
// via [IsAuthError].
package providers
