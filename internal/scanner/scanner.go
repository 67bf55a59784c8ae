// Package scanner builds the file inventory: it walks a source tree, detects
// languages, classifies lines, and produces ordered, path-normalized
// FileRecords for the downstream rankers and renderers.
package scanner

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/srctally/srctally/internal/model"
	"github.com/srctally/srctally/internal/token"
)

// Directories never worth scanning, regardless of configuration.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"__pycache__":  true,
}

// Options configures inventory construction.
type Options struct {
	// ModuleRoots and ModuleDepth control module-key derivation.
	ModuleRoots []string
	ModuleDepth int
	// MaxFileBytes skips files larger than this (0 = no limit). Oversized
	// generated blobs would otherwise dominate every ranking metric.
	MaxFileBytes int64
}

// Scan walks root and returns the inventory, sorted by ascending path.
// Unreadable files are logged and skipped; only a failure to walk the root
// itself is an error.
func Scan(root string, opts Options) (*model.Inventory, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, eris.Wrapf(err, "scanner: stat %s", root)
	}
	if !info.IsDir() {
		return nil, eris.Errorf("scanner: %s is not a directory", root)
	}
	if opts.ModuleDepth < 1 {
		opts.ModuleDepth = 2
	}

	type candidate struct {
		rel  string
		abs  string
		spec langSpec
	}
	var candidates []candidate

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			zap.L().Warn("scanner: walk entry failed", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		spec, ok := detectLang(path)
		if !ok {
			return nil
		}
		if opts.MaxFileBytes > 0 {
			if fi, err := d.Info(); err == nil && fi.Size() > opts.MaxFileBytes {
				zap.L().Debug("scanner: skipping oversized file",
					zap.String("path", path), zap.Int64("bytes", fi.Size()))
				return nil
			}
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		candidates = append(candidates, candidate{
			rel:  normalizePath(rel),
			abs:  path,
			spec: spec,
		})
		return nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "scanner: walk %s", root)
	}

	// Deterministic order before the parallel phase; each worker writes only
	// its own slot, so the output order is fixed regardless of scheduling.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].rel < candidates[j].rel })

	records := make([]*model.FileRecord, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, c := range candidates {
		g.Go(func() error {
			rec, err := countFile(c.abs, c.spec)
			if err != nil {
				zap.L().Warn("scanner: unreadable file skipped",
					zap.String("path", c.rel), zap.Error(err))
				return nil
			}
			rec.Path = c.rel
			rec.Module = ModuleKey(c.rel, opts.ModuleRoots, opts.ModuleDepth)
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "scanner: count files")
	}

	inv := &model.Inventory{Root: root}
	for _, rec := range records {
		if rec != nil {
			inv.Records = append(inv.Records, *rec)
		}
	}
	return inv, nil
}

// countFile classifies the lines of one file. Comment detection is
// line-oriented: a line is a comment when it starts with a line marker or
// falls inside a block-comment span that started at line head.
func countFile(path string, spec langSpec) (*model.FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scanner: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	rec := &model.FileRecord{Lang: spec.Name}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	inBlock := false
	for sc.Scan() {
		line := sc.Text()
		rec.Bytes += len(line) + 1
		rec.TotalLines++

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			rec.BlankLines++
		case inBlock:
			rec.CommentLines++
			if spec.BlockClose != "" && strings.Contains(trimmed, spec.BlockClose) {
				inBlock = false
			}
		case isLineComment(trimmed, spec):
			rec.CommentLines++
		case spec.BlockOpen != "" && strings.HasPrefix(trimmed, spec.BlockOpen):
			rec.CommentLines++
			if !strings.Contains(trimmed[len(spec.BlockOpen):], spec.BlockClose) {
				inBlock = true
			}
		default:
			rec.CodeLines++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "scanner: read %s", path)
	}

	rec.EstimatedTokens = token.Estimate(rec.Bytes)
	return rec, nil
}

func isLineComment(trimmed string, spec langSpec) bool {
	for _, mark := range spec.LineMarks {
		if strings.HasPrefix(trimmed, mark) {
			return true
		}
	}
	return false
}

// normalizePath converts a host path to the forward-slash repository form
// used in every artifact.
func normalizePath(p string) string {
	return strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "./")
}
