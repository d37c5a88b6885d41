package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParsePRRef(t *testing.T) {
	owner, repo, number, err := ParsePRRef("octocat/hello-world#42")
	if err != nil {
		t.Fatalf("ParsePRRef: %v", err)
	}
	if owner != "octocat" || repo != "hello-world" || number != 42 {
		t.Errorf("got %s/%s#%d", owner, repo, number)
	}

	for _, bad := range []string{"", "octocat", "octocat/repo", "octocat/repo#x", "a/b#1#2"} {
		if _, _, _, err := ParsePRRef(bad); err == nil {
			t.Errorf("ParsePRRef(%q) should fail", bad)
		}
	}
}

func TestGetPRDiff(t *testing.T) {
	const wantDiff = "diff --git a/f b/f\n+++ b/f\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/o/r/pulls/7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if accept := r.Header.Get("Accept"); accept != "application/vnd.github.v3.diff" {
			t.Errorf("Accept = %q", accept)
		}
		w.Write([]byte(wantDiff))
	}))
	defer srv.Close()

	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("GITHUB_API_URL", srv.URL)

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	diff, err := c.GetPRDiff(context.Background(), "o", "r", 7)
	if err != nil {
		t.Fatalf("GetPRDiff: %v", err)
	}
	if diff != wantDiff {
		t.Errorf("diff = %q", diff)
	}
}

func TestPostComment(t *testing.T) {
	var posted map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/o/r/issues/7/comments" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&posted)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("GITHUB_API_URL", srv.URL)

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := c.PostComment(context.Background(), "o", "r", 7, "## Review"); err != nil {
		t.Fatalf("PostComment: %v", err)
	}
	if posted["body"] != "## Review" {
		t.Errorf("posted body = %q", posted["body"])
	}
}

func TestNewClient_MissingToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	if _, err := NewClient(); err == nil {
		t.Error("missing token should error")
	}
}
