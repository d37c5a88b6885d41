package filter

import (
	"testing"

	"github.com/scry-dev/scry/internal/diff"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.min.js", "dist/bundle.min.js", true},
		{"*.min.js", "bundle.min.js", true},
		{"*.min.js", "src/app.ts", false},
		{"*.min.js", "bundle.min.jsx", false},
		{"**/node_modules/**", "node_modules/lodash/index.js", true},
		{"**/node_modules/**", "web/node_modules/react/cjs/react.js", true},
		{"**/node_modules/**", "src/node_modules.ts", false},
		{"package-lock.json", "package-lock.json", true},
		{"package-lock.json", "sub/package-lock.json", true},
		{"src/*.go", "src/main.go", true},
		{"src/*.go", "src/sub/main.go", false},
		{"src/**", "src/a/b/c.go", true},
		{"/README.md", "README.md", true},
		{"/README.md", "docs/README.md", false},
		{"*.go", "main.go", true},
		{"internal/**/*_test.go", "internal/diff/parser_test.go", true},
		{"internal/**/*_test.go", "internal/parser_test.go", true},
	}

	for _, tt := range tests {
		m := Compile([]string{tt.pattern})
		if got := m.Match(tt.path); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v (regex %s)",
				tt.pattern, tt.path, got, tt.want, Translate(tt.pattern))
		}
	}
}

func asFiles(paths ...string) []diff.FileChange {
	files := make([]diff.FileChange, len(paths))
	for i, p := range paths {
		files[i] = diff.FileChange{Path: p}
	}
	return files
}

func paths(files []diff.FileChange) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestApply_IgnorePatterns(t *testing.T) {
	ignore := []string{"*.min.js", "**/node_modules/**", "package-lock.json"}
	files := asFiles("src/app.ts", "dist/bundle.min.js", "package-lock.json")

	kept := Apply(files, ignore, nil)
	if len(kept) != 1 || kept[0].Path != "src/app.ts" {
		t.Errorf("kept = %v, want [src/app.ts]", paths(kept))
	}
}

func TestApply_IncludeOnly(t *testing.T) {
	files := asFiles("src/app.ts", "docs/guide.md", "src/util.ts")

	kept := Apply(files, nil, []string{"src/**"})
	if len(kept) != 2 || kept[0].Path != "src/app.ts" || kept[1].Path != "src/util.ts" {
		t.Errorf("kept = %v, want src files in order", paths(kept))
	}
}

func TestApply_IncludeThenIgnore(t *testing.T) {
	files := asFiles("src/app.ts", "src/app.min.js", "lib/x.ts")

	kept := Apply(files, []string{"*.min.js"}, []string{"src/**"})
	if len(kept) != 1 || kept[0].Path != "src/app.ts" {
		t.Errorf("kept = %v, want [src/app.ts]", paths(kept))
	}
}

func TestApply_NoPatterns(t *testing.T) {
	files := asFiles("a.go", "b.go")
	kept := Apply(files, nil, nil)
	if len(kept) != 2 {
		t.Errorf("no patterns should keep everything, got %v", paths(kept))
	}
}
