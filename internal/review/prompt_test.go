package review

import (
	"strings"
	"testing"
)

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt("diff --git a/x b/x\n", []string{"srv/main.go", "web/app.ts"}, []string{"security"})

	if !strings.Contains(prompt, "--- BEGIN DIFF ---") || !strings.Contains(prompt, "--- END DIFF ---") {
		t.Error("prompt should delimit the diff")
	}
	if !strings.Contains(prompt, "diff --git a/x b/x") {
		t.Error("prompt should embed the chunk diff")
	}
	if !strings.Contains(prompt, "security") {
		t.Error("prompt should mention focus areas")
	}
	if !strings.Contains(prompt, "Go") || !strings.Contains(prompt, "TypeScript") {
		t.Errorf("prompt should name detected languages:\n%s", prompt)
	}
}

func TestBuildUserPrompt_NoFocus(t *testing.T) {
	prompt := BuildUserPrompt("x", nil, nil)
	if strings.Contains(prompt, "Pay particular attention") {
		t.Error("no focus areas should mean no focus line")
	}
}

func TestDetectLanguages(t *testing.T) {
	langs := detectLanguages([]string{"a.go", "b.go", "c.py", "Makefile", "d.unknown"})
	if len(langs) != 2 || langs[0] != "Go" || langs[1] != "Python" {
		t.Errorf("langs = %v", langs)
	}
}

func TestSystemPromptShape(t *testing.T) {
	sp := SystemPrompt()
	for _, want := range []string{"overall_assessment", "positives", "critical", "JSON"} {
		if !strings.Contains(sp, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
