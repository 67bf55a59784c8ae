// Package handoff composes the four-artifact bundle directory: an index
// manifest, the full inventory map, a bounded intelligence summary, and the
// rendered code bundle. All four derive from one SelectionPlan; nothing here
// recomputes selection.
package handoff

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"lukechampine.com/blake3"

	"github.com/srctally/srctally/internal/model"
	"github.com/srctally/srctally/internal/render"
)

// Artifact file names inside the output directory.
const (
	ManifestName     = "manifest.json"
	MapName          = "map.jsonl"
	IntelligenceName = "intelligence.json"
	CodeName         = "code.txt"
)

const hashAlgo = "blake3"

// Options configures one composition run.
type Options struct {
	// OutDir is created if absent. Artifacts land directly inside it.
	OutDir       string
	Capabilities []model.CapabilityStatus
	Bundle       render.BundleOptions
	Intelligence IntelligenceOptions
}

// Compose writes the four artifacts. The manifest is written last so it can
// carry the hashes and sizes of the other three. One unreadable source file
// degrades the code bundle and is reported in the manifest's excluded list;
// only an unwritable sink is fatal.
func Compose(root string, inv *model.Inventory, plan *model.SelectionPlan, opts Options) error {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return eris.Wrapf(err, "handoff: create output dir %s", opts.OutDir)
	}

	var code bytes.Buffer
	unreadable, err := render.Bundle(&code, root, plan, opts.Bundle)
	if err != nil {
		return eris.Wrap(err, "handoff: render code bundle")
	}

	mapData, err := renderMap(inv)
	if err != nil {
		return err
	}

	intel := BuildIntelligence(inv, opts.Intelligence)
	intelData, err := marshalIndented(intel)
	if err != nil {
		return eris.Wrap(err, "handoff: encode intelligence summary")
	}

	artifacts := []struct {
		entry model.ArtifactEntry
		data  []byte
	}{
		{model.ArtifactEntry{Name: "map", Path: MapName, Description: "full file inventory, one JSON record per line"}, mapData},
		{model.ArtifactEntry{Name: "intelligence", Path: IntelligenceName, Description: "bounded tree skeleton, risk list, and totals"}, intelData},
		{model.ArtifactEntry{Name: "code", Path: CodeName, Description: "selected file contents in plan order"}, code.Bytes()},
	}

	manifest := buildManifest(root, plan, unreadable, opts)
	for _, a := range artifacts {
		a.entry.Bytes = int64(len(a.data))
		a.entry.Hash = &model.ArtifactHash{Algo: hashAlgo, Hash: hashOf(a.data)}
		manifest.Artifacts = append(manifest.Artifacts, a.entry)
		if err := writeArtifact(opts.OutDir, a.entry.Path, a.data); err != nil {
			return err
		}
	}

	manifestData, err := marshalIndented(manifest)
	if err != nil {
		return eris.Wrap(err, "handoff: encode manifest")
	}
	if err := writeArtifact(opts.OutDir, ManifestName, manifestData); err != nil {
		return err
	}

	zap.L().Info("handoff bundle written",
		zap.String("dir", opts.OutDir),
		zap.Int("bundled_files", manifest.BundledFiles),
		zap.Int("total_files", manifest.TotalFiles))
	return nil
}

// buildManifest projects the plan into the index artifact. IncludedFiles is
// copied verbatim from the plan; read failures from bundling are appended to
// the excluded list so the manifest alone explains every absent file.
func buildManifest(root string, plan *model.SelectionPlan, unreadable []model.ExcludedFile, opts Options) *model.HandoffManifest {
	excluded := make([]model.ExcludedFile, 0, len(plan.Excluded)+len(unreadable))
	excluded = append(excluded, plan.Excluded...)
	excluded = append(excluded, unreadable...)
	sort.Slice(excluded, func(i, j int) bool { return excluded[i].Path < excluded[j].Path })

	m := &model.HandoffManifest{
		SchemaVersion:   model.SchemaVersion,
		Tool:            model.CurrentTool(),
		Mode:            "handoff",
		Root:            filepath.ToSlash(root),
		OutputDir:       filepath.ToSlash(opts.OutDir),
		BudgetTokens:    plan.BudgetTokens,
		UsedTokens:      plan.UsedTokens,
		Utilization:     plan.UtilizationPct(),
		Strategy:        plan.Strategy,
		RankByRequested: plan.RankByRequested,
		RankByEffective: plan.RankByEffective,
		FallbackReason:  plan.FallbackReason,
		Capabilities:    opts.Capabilities,
		IncludedFiles:   plan.IncludedPaths(),
		Excluded:        excluded,
		TotalFiles:      len(plan.Included) + len(plan.Excluded),
		BundledFiles:    len(plan.Included) - len(unreadable),
		Truncated:       plan.Truncated,
	}
	if m.Capabilities == nil {
		m.Capabilities = []model.CapabilityStatus{}
	}
	return m
}

// renderMap serializes the complete inventory as JSON Lines, one record per
// line in inventory order.
func renderMap(inv *model.Inventory) ([]byte, error) {
	var buf bytes.Buffer
	for i := range inv.Records {
		line, err := json.Marshal(&inv.Records[i])
		if err != nil {
			return nil, eris.Wrapf(err, "handoff: encode map record %s", inv.Records[i].Path)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func marshalIndented(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func writeArtifact(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "handoff: write %s", name)
	}
	return nil
}

func hashOf(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
