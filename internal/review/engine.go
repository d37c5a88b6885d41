package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/scry-dev/scry/internal/cache"
	"github.com/scry-dev/scry/internal/config"
	"github.com/scry-dev/scry/internal/diff"
	"github.com/scry-dev/scry/internal/filter"
	"github.com/scry-dev/scry/internal/providers"
	"github.com/scry-dev/scry/internal/redact"
)

// maxConcurrency limits parallel provider calls.
const maxConcurrency = 4

// Input is the raw material of one review run.
type Input struct {
	Diff  string
	Mode  string
	Range string
}

// Run reviews a diff end to end: parse, filter, limit, chunk, one provider
// call per chunk, merge. The provider and cache are built from configuration.
func Run(ctx context.Context, in Input, cfg config.Config) (*Report, error) {
	provider, err := providers.New(providers.Kind(cfg.Provider.Kind), cfg.Provider.Model)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	store, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		store = cache.Disabled()
	}
	return RunWith(ctx, in, cfg, provider, store)
}

// RunWith is Run with an injected provider and cache.
//
// Chunks are reviewed in parallel with bounded concurrency, but results land
// in a per-chunk slice so the merger always consumes them in submission
// order, never completion order. A failed chunk becomes a placeholder result;
// only authentication failures abort the run.
func RunWith(ctx context.Context, in Input, cfg config.Config, provider providers.Reviewer, store *cache.Cache) (*Report, error) {
	start := time.Now()

	text := in.Diff
	if cfg.RedactSecrets {
		text = redact.Secrets(text)
	}

	files := diff.Parse(text)
	files = filter.Apply(files, cfg.Ignore, cfg.IncludeOnly)
	files = LimitFiles(files, cfg.MaxFiles)
	chunks := SplitIntoChunks(files, cfg.MaxDiffSize)

	results := make([]Result, len(chunks))
	var llmMs int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			res, elapsed, err := reviewChunk(gctx, chunk, cfg, provider, store)
			atomic.AddInt64(&llmMs, elapsed)
			if err != nil {
				if providers.IsAuthError(err) {
					return err
				}
				results[chunk.Index] = ErrorResult(chunk.Index, err)
				return nil
			}
			results[chunk.Index] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		RunID:   uuid.NewString(),
		Mode:    in.Mode,
		Range:   in.Range,
		Files:   len(files),
		Chunks:  len(chunks),
		Result:  MergeResults(results),
		TotalMs: time.Since(start).Milliseconds(),
		LLMMs:   llmMs,
	}, nil
}

func reviewChunk(ctx context.Context, chunk Chunk, cfg config.Config, provider providers.Reviewer, store *cache.Cache) (Result, int64, error) {
	chunkDiff := diff.Reconstruct(chunk.Files)
	key := cache.Key(provider.Name(), cfg.Provider.Model, chunkDiff)

	if cached, ok := store.Get(key); ok {
		var res Result
		if json.Unmarshal([]byte(cached), &res) == nil {
			return res, 0, nil
		}
	}

	req := providers.ReviewRequest{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   BuildUserPrompt(chunkDiff, chunkPaths(chunk), cfg.Focus),
		MaxTokens:    8192,
	}

	llmStart := time.Now()
	resp, err := provider.Review(ctx, req)
	elapsed := time.Since(llmStart).Milliseconds()
	if err != nil {
		return Result{}, elapsed, err
	}

	res, err := ParseResult(resp.Content)
	if err != nil {
		// One repair pass before giving up on the chunk.
		repair := fmt.Sprintf(
			"Your previous response was not valid JSON. The error was: %s\n\nPlease fix it and respond with ONLY the JSON object.\n\nYour previous response was:\n%s",
			err.Error(), resp.Content,
		)
		resp2, err2 := provider.Review(ctx, providers.ReviewRequest{
			SystemPrompt: req.SystemPrompt,
			UserPrompt:   repair,
			MaxTokens:    req.MaxTokens,
		})
		if err2 != nil {
			return Result{}, elapsed, fmt.Errorf("repair pass: %w", err2)
		}
		res, err = ParseResult(resp2.Content)
		if err != nil {
			return Result{}, elapsed, fmt.Errorf("response validation after repair: %w", err)
		}
	}

	if data, merr := json.Marshal(res); merr == nil {
		_ = store.Put(key, string(data))
	}
	return res, elapsed, nil
}

func chunkPaths(chunk Chunk) []string {
	paths := make([]string, 0, len(chunk.Files))
	for _, f := range chunk.Files {
		if f.Path != "" {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// ParseResult decodes a provider response into a Result, tolerating markdown
// code fences around the JSON body. An unrecognized assessment value is
// downgraded to "comment" rather than rejected.
func ParseResult(content string) (Result, error) {
	content = stripFences(strings.TrimSpace(content))

	var res Result
	if err := json.Unmarshal([]byte(content), &res); err != nil {
		return Result{}, fmt.Errorf("invalid JSON object: %w", err)
	}

	switch res.Assessment {
	case Approve, RequestChanges, Comment:
	default:
		res.Assessment = Comment
	}
	return res, nil
}

func stripFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}
