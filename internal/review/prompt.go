package review

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a strict, expert code reviewer. You review unified diffs and respond with a single structured JSON object.

Rules:
1. Only review the changes shown in the diff. Do not comment on unchanged code.
2. Focus on bugs, security issues, performance problems, and correctness. Avoid bikeshedding on style unless it genuinely hurts readability.
3. Every issue must be concise and actionable, with a concrete suggestion where possible.
4. Rate severity as "critical", "warning", or "info".
5. Categorize each issue as one of: bug, security, performance, style, documentation, testing.
6. Also note what the change does well in "positives".
7. Choose "overall_assessment": "request_changes" if anything critical must be fixed, "comment" for non-blocking concerns, "approve" otherwise.

You MUST respond with ONLY a JSON object in this exact shape. No markdown, no preamble.

{
  "summary": "One short paragraph describing the change and its quality",
  "issues": [
    {
      "severity": "critical|warning|info",
      "category": "bug|security|performance|style|documentation|testing",
      "title": "Short descriptive title",
      "description": "What is wrong and why it matters",
      "path": "relative/file/path",
      "line": 1,
      "suggestion": "How to fix it, with code if helpful"
    }
  ],
  "positives": ["things done well"],
  "overall_assessment": "approve|request_changes|comment"
}

If there are no issues, use an empty issues array and "approve".`

// SystemPrompt returns the reviewer system prompt.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt assembles the user prompt for one chunk from its
// reconstructed diff, the paths it covers, and configured focus areas.
func BuildUserPrompt(chunkDiff string, files []string, focus []string) string {
	var b strings.Builder

	b.WriteString("Review the following code diff.\n\n")

	if len(focus) > 0 {
		fmt.Fprintf(&b, "Pay particular attention to: %s.\n", strings.Join(focus, ", "))
	}
	if langs := detectLanguages(files); len(langs) > 0 {
		fmt.Fprintf(&b, "Languages: %s\n", strings.Join(langs, ", "))
	}

	b.WriteString("\n--- BEGIN DIFF ---\n")
	b.WriteString(chunkDiff)
	b.WriteString("\n--- END DIFF ---\n")

	return b.String()
}

var langByExt = map[string]string{
	".go":    "Go",
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript/React",
	".jsx":   "JavaScript/React",
	".rs":    "Rust",
	".java":  "Java",
	".rb":    "Ruby",
	".c":     "C",
	".cpp":   "C++",
	".cs":    "C#",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".sql":   "SQL",
	".sh":    "Shell",
	".yaml":  "YAML",
	".yml":   "YAML",
	".tf":    "Terraform",
}

func detectLanguages(files []string) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, f := range files {
		if i := strings.LastIndex(f, "."); i >= 0 {
			if lang, ok := langByExt[f[i:]]; ok && !seen[lang] {
				seen[lang] = true
				langs = append(langs, lang)
			}
		}
	}
	return langs
}
