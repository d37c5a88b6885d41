// Package output renders review reports as terminal text, markdown, or JSON.
package output
