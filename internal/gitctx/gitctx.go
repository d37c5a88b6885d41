package gitctx

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Result holds collected diff text and where it came from.
type Result struct {
	Diff  string
	Mode  string
	Range string
}

// Options controls how git diffs are gathered.
type Options struct {
	ContextLines int
}

// Unstaged returns the diff of the working tree vs the index.
func Unstaged(opts Options) (Result, error) {
	diff, err := gitOutput(append([]string{"diff"}, diffArgs(opts)...)...)
	if err != nil {
		return Result{}, fmt.Errorf("git diff: %w", err)
	}
	return Result{Diff: diff, Mode: "unstaged"}, nil
}

// Staged returns the diff of the index vs HEAD.
func Staged(opts Options) (Result, error) {
	diff, err := gitOutput(append([]string{"diff", "--cached"}, diffArgs(opts)...)...)
	if err != nil {
		return Result{}, fmt.Errorf("git diff --cached: %w", err)
	}
	return Result{Diff: diff, Mode: "staged"}, nil
}

// Range returns the combined diff for a revision range such as main..HEAD.
func Range(revRange string, opts Options) (Result, error) {
	args := append([]string{"diff", revRange}, diffArgs(opts)...)
	diff, err := gitOutput(args...)
	if err != nil {
		return Result{}, fmt.Errorf("git diff %s: %w", revRange, err)
	}
	return Result{Diff: diff, Mode: "range", Range: revRange}, nil
}

// FilesDiff wraps a raw collection of files as synthetic new-file diffs so
// whole files can be reviewed through the same pipeline. Unreadable files
// are skipped.
func FilesDiff(paths []string) (Result, error) {
	var b strings.Builder
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scry: skipping %s: %v\n", path, err)
			continue
		}
		writeNewFileSection(&b, path, string(data))
	}
	return Result{Diff: b.String(), Mode: "files"}, nil
}

// SnippetDiff turns a snippet into diff text. With an empty base the snippet
// is presented as a new file; otherwise the base and current content are
// line-diffed into a single whole-file hunk.
func SnippetDiff(current, base, path string) Result {
	if base == "" {
		var b strings.Builder
		writeNewFileSection(&b, path, current)
		return Result{Diff: b.String(), Mode: "snippet"}
	}

	dmp := diffmatchpatch.New()
	c1, c2, lineArray := dmp.DiffLinesToChars(base, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lineArray)

	var body []string
	oldCount, newCount := 0, 0
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				body = append(body, " "+line)
				oldCount++
				newCount++
			case diffmatchpatch.DiffDelete:
				body = append(body, "-"+line)
				oldCount++
			case diffmatchpatch.DiffInsert:
				body = append(body, "+"+line)
				newCount++
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	fmt.Fprintf(&b, "@@ -1,%d +1,%d @@\n", oldCount, newCount)
	for _, line := range body {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return Result{Diff: b.String(), Mode: "snippet"}
}

func writeNewFileSection(b *strings.Builder, path, content string) {
	lines := splitLines(content)
	fmt.Fprintf(b, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(b, "new file mode 100644\n")
	fmt.Fprintf(b, "--- /dev/null\n")
	fmt.Fprintf(b, "+++ b/%s\n", path)
	fmt.Fprintf(b, "@@ -0,0 +1,%d @@\n", len(lines))
	for _, line := range lines {
		fmt.Fprintf(b, "+%s\n", line)
	}
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func diffArgs(opts Options) []string {
	var args []string
	if opts.ContextLines > 0 {
		args = append(args, fmt.Sprintf("-U%d", opts.ContextLines))
	}
	return args
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
