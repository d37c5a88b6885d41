package gitctx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scry-dev/scry/internal/diff"
)

func TestFilesDiff(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.go")
	if err := os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := FilesDiff([]string{path})
	if err != nil {
		t.Fatalf("FilesDiff: %v", err)
	}
	if res.Mode != "files" {
		t.Errorf("Mode = %q", res.Mode)
	}

	files := diff.Parse(res.Diff)
	if len(files) != 1 {
		t.Fatalf("parsed %d files, want 1", len(files))
	}
	if files[0].Additions != 3 || files[0].Deletions != 0 {
		t.Errorf("counts = +%d/-%d, want +3/-0", files[0].Additions, files[0].Deletions)
	}
}

func TestFilesDiff_SkipsUnreadable(t *testing.T) {
	res, err := FilesDiff([]string{"/nonexistent/nope.go"})
	if err != nil {
		t.Fatalf("FilesDiff should not fail on unreadable files: %v", err)
	}
	if res.Diff != "" {
		t.Errorf("Diff = %q, want empty", res.Diff)
	}
}

func TestSnippetDiff_NewFile(t *testing.T) {
	res := SnippetDiff("a\nb\n", "", "snippet.txt")
	if res.Mode != "snippet" {
		t.Errorf("Mode = %q", res.Mode)
	}
	files := diff.Parse(res.Diff)
	if len(files) != 1 || files[0].Additions != 2 {
		t.Fatalf("unexpected parse: %+v", files)
	}
}

func TestSnippetDiff_AgainstBase(t *testing.T) {
	base := "line one\nline two\nline three\n"
	current := "line one\nline 2\nline three\nline four\n"

	res := SnippetDiff(current, base, "f.txt")
	files := diff.Parse(res.Diff)
	if len(files) != 1 {
		t.Fatalf("parsed %d files, want 1", len(files))
	}
	f := files[0]
	if f.Deletions != 1 {
		t.Errorf("Deletions = %d, want 1 (changed line)", f.Deletions)
	}
	if f.Additions != 2 {
		t.Errorf("Additions = %d, want 2 (changed + appended)", f.Additions)
	}

	h := f.Hunks[0]
	if h.OldLines != 3 || h.NewLines != 4 {
		t.Errorf("hunk ranges -1,%d +1,%d, want -1,3 +1,4", h.OldLines, h.NewLines)
	}
	if !strings.Contains(h.Content, " line one") {
		t.Errorf("context lines missing from hunk:\n%s", h.Content)
	}
}
