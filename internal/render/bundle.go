package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/srctally/srctally/internal/model"
)

// BundleOptions controls the concatenated-bundle projection.
type BundleOptions struct {
	// Compress strips blank lines from file content. Headers keep the
	// original line count so the bundle still describes the file on disk.
	Compress bool
	// SoftMaxBytes triggers an advisory warning when the rendered bundle
	// exceeds it. Token accounting is the authoritative bound; bytes are
	// only a sanity signal. Zero disables the check.
	SoftMaxBytes int64
}

// Bundle concatenates the plan's included files in plan order: a per-file
// header line, then the raw content. Content reads run in parallel but the
// write order is exactly the plan's included order, so identical plans
// produce identical bundles.
//
// A file that cannot be read is skipped and reported in the returned slice
// with a read-error reason; the bundle still completes with the remaining
// files. The plan itself is never modified.
func Bundle(out io.Writer, root string, plan *model.SelectionPlan, opts BundleOptions) ([]model.ExcludedFile, error) {
	contents := make([][]byte, len(plan.Included))
	readErrs := make([]error, len(plan.Included))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range plan.Included {
		g.Go(func() error {
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(plan.Included[i].Record.Path)))
			if err != nil {
				readErrs[i] = err
				return nil
			}
			contents[i] = data
			return nil
		})
	}
	_ = g.Wait()

	cw := &countingWriter{w: out}
	var unreadable []model.ExcludedFile
	for i := range plan.Included {
		rec := &plan.Included[i].Record
		if err := readErrs[i]; err != nil {
			unreadable = append(unreadable, model.ExcludedFile{
				Path:   rec.Path,
				Reason: model.ReasonReadError,
				Detail: err.Error(),
			})
			zap.L().Warn("skipping unreadable file", zap.String("path", rec.Path), zap.Error(err))
			continue
		}

		body := contents[i]
		if opts.Compress {
			body = stripBlankLines(body)
		}
		if _, err := fmt.Fprintf(cw, "// === %s (%d lines) ===\n", rec.Path, rec.TotalLines); err != nil {
			return unreadable, eris.Wrap(err, "render: write bundle header")
		}
		if _, err := cw.Write(body); err != nil {
			return unreadable, eris.Wrap(err, "render: write bundle content")
		}
		if len(body) > 0 && body[len(body)-1] != '\n' {
			if _, err := io.WriteString(cw, "\n"); err != nil {
				return unreadable, eris.Wrap(err, "render: write bundle content")
			}
		}
		if _, err := io.WriteString(cw, "\n"); err != nil {
			return unreadable, eris.Wrap(err, "render: write bundle separator")
		}
	}

	if opts.SoftMaxBytes > 0 && cw.n > opts.SoftMaxBytes {
		zap.L().Warn("bundle exceeds soft byte cap",
			zap.Int64("bytes", cw.n),
			zap.Int64("soft_max_bytes", opts.SoftMaxBytes))
	}
	return unreadable, nil
}

// stripBlankLines drops lines that are empty or whitespace-only.
func stripBlankLines(data []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(data))
	for len(data) > 0 {
		line := data
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			line = data[:idx+1]
			data = data[idx+1:]
		} else {
			data = nil
		}
		if len(bytes.TrimSpace(line)) > 0 {
			out.Write(line)
		}
	}
	return out.Bytes()
}

// countingWriter tracks bytes written for the soft-cap check.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
