package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/livetune/internal/discover"
	"github.com/phobologic/livetune/internal/extract"
	"github.com/phobologic/livetune/internal/lang"
	"github.com/phobologic/livetune/internal/model"
	"github.com/phobologic/livetune/internal/parse"
)

type parserPair struct {
	lang   *lang.Language
	parser *sitter.Parser
	query  *sitter.Query
}

// filterBySize drops files above maxSize bytes with a warning. A maxSize of
// 0 keeps everything.
func (a *app) filterBySize(files []discover.FileEntry, maxSize int64) []discover.FileEntry {
	if maxSize <= 0 {
		return files
	}
	var kept []discover.FileEntry
	for _, f := range files {
		if f.Size > maxSize {
			a.warnf("%s: skipped (>%d bytes)", f.Path, maxSize)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// analyzeFiles extracts fragments and call sites from files concurrently.
// Files that do not mention marker at all are dropped unless keepAll is set.
// Results keep the order of files.
func (a *app) analyzeFiles(ctx context.Context, root string, files []discover.FileEntry, marker string, keepAll bool) []model.FileInfo {
	type result struct {
		index int
		info  model.FileInfo
		ok    bool
	}

	numWorkers := min(runtime.GOMAXPROCS(0), len(files))

	work := make(chan int, len(files))
	results := make(chan result, len(files))

	var wg sync.WaitGroup
	var stderrMu sync.Mutex
	warn := func(format string, args ...any) {
		stderrMu.Lock()
		a.warnf(format, args...)
		stderrMu.Unlock()
	}

	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Each goroutine gets its own parser
			parsers := make(map[string]*parserPair)

			for idx := range work {
				if ctx.Err() != nil {
					continue
				}
				f := files[idx]

				source, err := os.ReadFile(filepath.Join(root, f.Path))
				if err != nil {
					warn("failed to read %s: %v", f.Path, err)
					continue
				}
				if !keepAll && !bytes.Contains(source, []byte(marker)) {
					continue
				}

				info := model.FileInfo{Path: f.Path, Language: f.Language}
				frags, err := extract.Extract(source, marker)
				switch {
				case errors.Is(err, extract.ErrDanglingMarker):
					info.Fault = err.Error()
				case err != nil:
					warn("%s: %v", f.Path, err)
					continue
				default:
					info.Fragments = frags
				}

				if pp := parserFor(parsers, f.Language, warn); pp != nil {
					info.CallSites = parse.CallSites(pp.lang, pp.parser, pp.query, source, f.Path, marker)
					if info.CallSites == nil {
						info.CallSites = []model.CallSite{}
					}
				}

				results <- result{index: idx, info: info, ok: true}
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results in original order
	indexed := make([]model.FileInfo, len(files))
	valid := make([]bool, len(files))
	for r := range results {
		indexed[r.index] = r.info
		valid[r.index] = r.ok
	}

	var infos []model.FileInfo
	for i, v := range valid {
		if v {
			infos = append(infos, indexed[i])
		}
	}
	return infos
}

// parserFor returns the cached parser for language, creating it on first
// use. It returns nil for languages without a grammar.
func parserFor(parsers map[string]*parserPair, language string, warn func(string, ...any)) *parserPair {
	if pp, ok := parsers[language]; ok {
		return pp
	}
	l := lang.Languages[language]
	if l == nil {
		parsers[language] = nil
		return nil
	}
	q, err := l.GetCallQuery()
	if err != nil {
		warn("failed to compile query for %s: %v", language, err)
		parsers[language] = nil
		return nil
	}
	pp := &parserPair{lang: l, parser: l.NewParser(), query: q}
	parsers[language] = pp
	return pp
}
