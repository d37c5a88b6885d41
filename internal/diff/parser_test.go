package diff

import (
	"strings"
	"testing"
)

const twoFileDiff = `diff --git a/src/app.ts b/src/app.ts
index 1111111..2222222 100644
--- a/src/app.ts
+++ b/src/app.ts
@@ -10,3 +10,5 @@ function main() {
 	const a = 1;
+	const b = 2;
+	const c = 3;
 	return a;
diff --git a/src/util.ts b/src/util.ts
index 3333333..4444444 100644
--- a/src/util.ts
+++ b/src/util.ts
@@ -1,4 +1,3 @@
 export function id(x) {
-	// stale comment
 	return x;
 }
`

func TestParse_TwoFiles(t *testing.T) {
	files := Parse(twoFileDiff)
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}

	first := files[0]
	if first.Path != "src/app.ts" {
		t.Errorf("Path = %q, want src/app.ts", first.Path)
	}
	if first.Additions != 2 || first.Deletions != 0 {
		t.Errorf("counts = +%d/-%d, want +2/-0", first.Additions, first.Deletions)
	}
	if len(first.Hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(first.Hunks))
	}

	second := files[1]
	if second.Additions != 0 || second.Deletions != 1 {
		t.Errorf("counts = +%d/-%d, want +0/-1", second.Additions, second.Deletions)
	}
	if len(second.Hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(second.Hunks))
	}
}

func TestParse_HunkHeaderFields(t *testing.T) {
	files := Parse(twoFileDiff)
	h := files[0].Hunks[0]
	if h.OldStart != 10 || h.OldLines != 3 || h.NewStart != 10 || h.NewLines != 5 {
		t.Errorf("hunk header = -%d,%d +%d,%d, want -10,3 +10,5",
			h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	}
	if !strings.HasPrefix(h.Content, "@@ -10,3 +10,5 @@") {
		t.Errorf("hunk content should begin with its header line, got %q", h.Content)
	}
}

func TestParse_SingleLineHunkDefaults(t *testing.T) {
	diff := "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -3 +3 @@\n-old\n+new\n"
	files := Parse(diff)
	if len(files) != 1 || len(files[0].Hunks) != 1 {
		t.Fatalf("unexpected shape: %+v", files)
	}
	h := files[0].Hunks[0]
	if h.OldLines != 1 || h.NewLines != 1 {
		t.Errorf("omitted counts should default to 1, got %d/%d", h.OldLines, h.NewLines)
	}
}

func TestParse_Empty(t *testing.T) {
	if files := Parse(""); len(files) != 0 {
		t.Errorf("got %d files for empty input, want 0", len(files))
	}
}

func TestParse_FileWithoutHunks(t *testing.T) {
	diff := "diff --git a/empty.go b/empty.go\nindex 123..456 100644\n"
	files := Parse(diff)
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	f := files[0]
	if len(f.Hunks) != 0 || f.Additions != 0 || f.Deletions != 0 {
		t.Errorf("file without hunks should be empty, got %+v", f)
	}
}

func TestParse_MalformedFileHeader(t *testing.T) {
	diff := "diff --git garbage\n@@ -1,1 +1,1 @@\n-x\n+y\n"
	files := Parse(diff)
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].Path != "" {
		t.Errorf("malformed header should yield empty path, got %q", files[0].Path)
	}
	if files[0].Additions != 1 || files[0].Deletions != 1 {
		t.Errorf("counts = +%d/-%d, want +1/-1", files[0].Additions, files[0].Deletions)
	}
}

func TestParse_MalformedHunkHeader(t *testing.T) {
	diff := "diff --git a/f b/f\n@@ not a header\n+orphan\n@@ -1,1 +1,2 @@\n context\n+added\n"
	files := Parse(diff)
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	f := files[0]
	if len(f.Hunks) != 1 {
		t.Fatalf("malformed hunk should be skipped, got %d hunks", len(f.Hunks))
	}
	// The orphan line after the bad header is not attributed or counted.
	if f.Additions != 1 {
		t.Errorf("Additions = %d, want 1", f.Additions)
	}
}

func TestParse_LinesBeforeAnyFileDropped(t *testing.T) {
	diff := "some preamble\n+not counted\ndiff --git a/f b/f\n@@ -1 +1,2 @@\n x\n+y\n"
	files := Parse(diff)
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].Additions != 1 {
		t.Errorf("Additions = %d, want 1", files[0].Additions)
	}
}

func TestParse_RenameTakesNewPath(t *testing.T) {
	diff := strings.Join([]string{
		"diff --git a/old/name.go b/new/name.go",
		"similarity index 90%",
		"rename from old/name.go",
		"rename to new/name.go",
		"@@ -1,2 +1,2 @@",
		"-package old",
		"+package new",
		"",
	}, "\n")
	files := Parse(diff)
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].Path != "new/name.go" {
		t.Errorf("Path = %q, want new/name.go", files[0].Path)
	}
}

// Counters must equal the raw +/- line totals of the input, header lines
// excluded, for any well-formed diff.
func TestParse_CountRoundTrip(t *testing.T) {
	var wantAdd, wantDel int
	for _, line := range strings.Split(twoFileDiff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			wantAdd++
		}
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			wantDel++
		}
	}

	var gotAdd, gotDel int
	for _, f := range Parse(twoFileDiff) {
		gotAdd += f.Additions
		gotDel += f.Deletions
	}
	if gotAdd != wantAdd || gotDel != wantDel {
		t.Errorf("parsed +%d/-%d, input has +%d/-%d", gotAdd, gotDel, wantAdd, wantDel)
	}
}

func TestParse_BinaryFileSkipped(t *testing.T) {
	diff := "diff --git a/logo.png b/logo.png\nBinary files a/logo.png and b/logo.png differ\n"
	files := Parse(diff)
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].TotalLines() != 0 || len(files[0].Hunks) != 0 {
		t.Errorf("binary file should carry no hunks or counts, got %+v", files[0])
	}
}
