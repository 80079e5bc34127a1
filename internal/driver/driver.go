// Package driver runs one analysis pass: discovery, reading, parsing,
// inspection and caching.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/phobologic/frozenguard/internal/cache"
	"github.com/phobologic/frozenguard/internal/config"
	"github.com/phobologic/frozenguard/internal/discover"
	"github.com/phobologic/frozenguard/internal/kotlin"
	"github.com/phobologic/frozenguard/internal/lang"
	"github.com/phobologic/frozenguard/internal/model"
	"github.com/phobologic/frozenguard/internal/parse"
	"github.com/phobologic/frozenguard/internal/syntax"
)

// Options configures Run.
type Options struct {
	Root   string
	Config config.Config
	// Jobs bounds parse parallelism; zero means GOMAXPROCS.
	Jobs int
	// CachePath enables the result cache when non-empty.
	CachePath string
	// Version is mixed into the cache key.
	Version string
	Logger  *slog.Logger
}

// Result is the outcome of Run.
type Result struct {
	Report  *model.Report
	sources map[string][]byte
}

// SourceLine returns a 1-based line of an analyzed file, or "".
func (r *Result) SourceLine(file string, line int) string {
	src, ok := r.sources[file]
	if !ok {
		return ""
	}
	return (&syntax.Tree{Source: src}).LineText(line)
}

// Run analyzes every Kotlin file under opts.Root.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cfg := opts.Config

	entries, err := discover.Files(ctx, opts.Root, discover.Options{Exclude: cfg.Exclude})
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	log.Debug("discovered files", slog.Int("count", len(entries)))

	sources := readSources(opts.Root, entries, cfg.MaxFileSize, log)
	res := &Result{
		Report:  &model.Report{Root: filepath.Base(opts.Root)},
		sources: make(map[string][]byte, len(sources)),
	}
	for _, s := range sources {
		res.sources[s.Path] = s.Content
	}

	var key string
	if opts.CachePath != "" {
		digest, err := cfg.Digest()
		if err != nil {
			return nil, err
		}
		key = cache.Key(opts.Version, digest, sources)
		if hit := loadCache(opts.CachePath, key, log); hit != nil {
			res.Report.Files = hit.Files
			res.Report.Violations = hit.Violations
			res.Report.Suppressed = hit.Suppressed
			res.Report.Cached = true
			return res, nil
		}
	}

	trees, err := parseAll(ctx, sources, opts.Jobs, log)
	if err != nil {
		return nil, err
	}

	var parsed []*syntax.Tree
	for _, t := range trees {
		if t != nil {
			parsed = append(parsed, t)
			res.Report.Files = append(res.Report.Files, t.Path)
		}
	}
	project := kotlin.NewProject(parsed)
	res.Report.Violations, res.Report.Suppressed = inspectProject(project, cfg, log)

	if opts.CachePath != "" {
		err := cache.Store(opts.CachePath, &cache.Payload{
			Key:        key,
			Files:      res.Report.Files,
			Violations: res.Report.Violations,
			Suppressed: res.Report.Suppressed,
		})
		if err != nil {
			return nil, fmt.Errorf("writing cache: %w", err)
		}
	}
	return res, nil
}

// readSources loads discovered files in order, skipping oversize,
// unreadable and empty ones with a warning.
func readSources(root string, entries []discover.FileEntry, maxSize int64, log *slog.Logger) []cache.Source {
	var out []cache.Source
	for _, e := range entries {
		if maxSize > 0 && e.Size > maxSize {
			log.Warn("skipping oversize file",
				slog.String("file", e.Path),
				slog.Int64("size", e.Size),
				slog.Int64("limit", maxSize))
			continue
		}
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(e.Path)))
		if err != nil {
			log.Warn("skipping unreadable file",
				slog.String("file", e.Path),
				slog.String("error", err.Error()))
			continue
		}
		if len(content) == 0 {
			log.Debug("skipping empty file", slog.String("file", e.Path))
			continue
		}
		out = append(out, cache.Source{Path: e.Path, Content: content})
	}
	return out
}

func loadCache(path, key string, log *slog.Logger) *cache.Payload {
	hit, err := cache.Load(path, key)
	switch {
	case errors.Is(err, cache.ErrStale):
		log.Debug("cache is stale", slog.String("path", path), slog.String("reason", err.Error()))
		return nil
	case err != nil:
		log.Warn("ignoring cache", slog.String("path", path), slog.String("error", err.Error()))
		return nil
	}
	if hit != nil {
		log.Debug("cache hit", slog.String("path", path))
	}
	return hit
}

// parseAll parses sources with a pool of workers, one parser per worker.
// The result is indexed like sources; files that fail to parse stay nil.
func parseAll(ctx context.Context, sources []cache.Source, jobs int, log *slog.Logger) ([]*syntax.Tree, error) {
	trees := make([]*syntax.Tree, len(sources))
	if len(sources) == 0 {
		return trees, nil
	}

	numWorkers := jobs
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(sources) {
		numWorkers = len(sources)
	}

	work := make(chan int, len(sources))
	for i := range sources {
		work <- i
	}
	close(work)

	kt := lang.Languages[lang.Kotlin]
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for range numWorkers {
		g.Go(func() error {
			// Each goroutine gets its own parser
			parser := kt.NewParser()
			defer parser.Close()

			for idx := range work {
				if err := gctx.Err(); err != nil {
					return err
				}
				src := sources[idx]
				tree, err := parse.Parse(gctx, parser, src.Content, src.Path)
				if err != nil {
					if ctxErr := gctx.Err(); ctxErr != nil {
						return ctxErr
					}
					log.Warn("skipping unparsable file",
						slog.String("file", src.Path),
						slog.String("error", err.Error()))
					continue
				}
				if tree.HasError {
					log.Debug("file has syntax errors", slog.String("file", src.Path))
				}
				trees[idx] = tree
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	return trees, nil
}

// sortViolations orders violations by file and then by offset.
func sortViolations(vs []model.Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a := model.Position{File: vs[i].Node.File, Offset: vs[i].Span.Start}
		b := model.Position{File: vs[j].Node.File, Offset: vs[j].Span.Start}
		return a.Less(b)
	})
}
