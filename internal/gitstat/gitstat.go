// Package gitstat collects optional git-history signals for ranking. Its
// absence is a degraded capability, never an error: every probe result is
// reported as a CapabilityStatus so consumers can see why enrichment did or
// did not run.
package gitstat

import (
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/srctally/srctally/internal/model"
)

// DefaultMaxCommits bounds how much history is read for scoring.
const DefaultMaxCommits = 500

// Options configures history collection.
type Options struct {
	// MaxCommits limits the log walk; 0 means DefaultMaxCommits.
	MaxCommits int
	// Disabled marks the whole capability as skipped (e.g. --no-git).
	Disabled bool
}

// Capability names reported in manifests.
const (
	CapGit        = "git"
	CapGitRepo    = "git_repository"
	CapGitHistory = "git_history"
)

// runner abstracts command execution for tests.
type runner func(dir string, args ...string) (string, error)

func execGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	return string(out), err
}

// Collector probes git availability and scores inventories.
type Collector struct {
	opts Options
	run  runner
}

// New returns a Collector for the given options.
func New(opts Options) *Collector {
	if opts.MaxCommits <= 0 {
		opts.MaxCommits = DefaultMaxCommits
	}
	return &Collector{opts: opts, run: execGit}
}

// Capabilities probes git, repository membership, and usable history for
// root. The returned statuses always contain all three names, in that
// order, so manifest output is stable.
func (c *Collector) Capabilities(root string) []model.CapabilityStatus {
	if c.opts.Disabled {
		skipped := model.CapabilityStatus{Status: model.CapabilitySkipped, Reason: "disabled by configuration"}
		return []model.CapabilityStatus{
			{Name: CapGit, Status: skipped.Status, Reason: skipped.Reason},
			{Name: CapGitRepo, Status: skipped.Status, Reason: skipped.Reason},
			{Name: CapGitHistory, Status: skipped.Status, Reason: skipped.Reason},
		}
	}

	caps := make([]model.CapabilityStatus, 0, 3)

	if _, err := c.run(root, "--version"); err != nil {
		reason := "git command not found"
		return []model.CapabilityStatus{
			{Name: CapGit, Status: model.CapabilityUnavailable, Reason: reason},
			{Name: CapGitRepo, Status: model.CapabilitySkipped, Reason: reason},
			{Name: CapGitHistory, Status: model.CapabilitySkipped, Reason: reason},
		}
	}
	caps = append(caps, model.CapabilityStatus{Name: CapGit, Status: model.CapabilityAvailable})

	if _, err := c.run(root, "rev-parse", "--git-dir"); err != nil {
		reason := "not inside a git repository"
		caps = append(caps,
			model.CapabilityStatus{Name: CapGitRepo, Status: model.CapabilityUnavailable, Reason: reason},
			model.CapabilityStatus{Name: CapGitHistory, Status: model.CapabilitySkipped, Reason: reason},
		)
		return caps
	}
	caps = append(caps, model.CapabilityStatus{Name: CapGitRepo, Status: model.CapabilityAvailable})

	if out, err := c.run(root, "rev-parse", "--is-shallow-repository"); err == nil && strings.TrimSpace(out) == "true" {
		caps = append(caps, model.CapabilityStatus{
			Name:   CapGitHistory,
			Status: model.CapabilityUnavailable,
			Reason: "shallow clone; history is incomplete",
		})
		return caps
	}
	caps = append(caps, model.CapabilityStatus{Name: CapGitHistory, Status: model.CapabilityAvailable})
	return caps
}

// HistoryAvailable reports whether scoring can run given probed capabilities.
func HistoryAvailable(caps []model.CapabilityStatus) bool {
	for _, c := range caps {
		if c.Name == CapGitHistory {
			return c.Status == model.CapabilityAvailable
		}
	}
	return false
}

// Annotate attaches git signals to matching inventory records in place:
// commit counts from the log walk, hotspot = total_lines x commits. Records
// never touched by the walked history stay unannotated. Returns the number
// of annotated records.
func (c *Collector) Annotate(inv *model.Inventory) int {
	counts := c.commitCounts(inv.Root)
	if len(counts) == 0 {
		return 0
	}

	annotated := 0
	for i := range inv.Records {
		rec := &inv.Records[i]
		commits, ok := counts[rec.Path]
		if !ok {
			continue
		}
		rec.GitSignal = &model.GitSignal{
			Commits: commits,
			Hotspot: rec.TotalLines * commits,
		}
		annotated++
	}
	zap.L().Debug("gitstat: annotated inventory",
		zap.Int("records", len(inv.Records)), zap.Int("annotated", annotated))
	return annotated
}

// commitCounts walks `git log --name-only` and counts commits per path.
func (c *Collector) commitCounts(root string) map[string]int {
	out, err := c.run(root, "log", "--name-only", "--pretty=format:", "-n", strconv.Itoa(c.opts.MaxCommits))
	if err != nil {
		zap.L().Debug("gitstat: log walk failed", zap.Error(err))
		return nil
	}

	counts := make(map[string]int)
	for _, line := range strings.Split(out, "\n") {
		path := normalizePath(strings.TrimSpace(line))
		if path == "" {
			continue
		}
		counts[path]++
	}
	return counts
}

func normalizePath(p string) string {
	return strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "./")
}

