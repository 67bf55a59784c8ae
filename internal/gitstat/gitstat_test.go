package gitstat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srctally/srctally/internal/model"
)

// fakeRunner scripts git invocations by their first argument.
func fakeRunner(responses map[string]string, failures map[string]bool) runner {
	return func(dir string, args ...string) (string, error) {
		key := args[0]
		if key == "rev-parse" {
			key = args[1]
		}
		if failures[key] {
			return "", errors.New("exit status 128")
		}
		return responses[key], nil
	}
}

func newTestCollector(responses map[string]string, failures map[string]bool) *Collector {
	c := New(Options{})
	c.run = fakeRunner(responses, failures)
	return c
}

func TestCapabilitiesAllAvailable(t *testing.T) {
	t.Parallel()

	c := newTestCollector(map[string]string{"--is-shallow-repository": "false\n"}, nil)
	caps := c.Capabilities(".")

	require.Len(t, caps, 3)
	for _, cap := range caps {
		assert.Equal(t, model.CapabilityAvailable, cap.Status, cap.Name)
		assert.Empty(t, cap.Reason, cap.Name)
	}
	assert.True(t, HistoryAvailable(caps))
}

func TestCapabilitiesDisabled(t *testing.T) {
	t.Parallel()

	c := New(Options{Disabled: true})
	caps := c.Capabilities(".")

	require.Len(t, caps, 3)
	for _, cap := range caps {
		assert.Equal(t, model.CapabilitySkipped, cap.Status)
		assert.NotEmpty(t, cap.Reason)
	}
	assert.False(t, HistoryAvailable(caps))
}

func TestCapabilitiesNoGitBinary(t *testing.T) {
	t.Parallel()

	c := newTestCollector(nil, map[string]bool{"--version": true})
	caps := c.Capabilities(".")

	require.Len(t, caps, 3)
	assert.Equal(t, model.CapabilityUnavailable, caps[0].Status)
	assert.Equal(t, model.CapabilitySkipped, caps[1].Status)
	assert.Equal(t, model.CapabilitySkipped, caps[2].Status)
}

func TestCapabilitiesNotARepo(t *testing.T) {
	t.Parallel()

	c := newTestCollector(nil, map[string]bool{"--git-dir": true})
	caps := c.Capabilities(".")

	require.Len(t, caps, 3)
	assert.Equal(t, model.CapabilityAvailable, caps[0].Status)
	assert.Equal(t, model.CapabilityUnavailable, caps[1].Status)
	assert.Equal(t, model.CapabilitySkipped, caps[2].Status)
	assert.False(t, HistoryAvailable(caps))
}

func TestCapabilitiesShallowClone(t *testing.T) {
	t.Parallel()

	c := newTestCollector(map[string]string{"--is-shallow-repository": "true\n"}, nil)
	caps := c.Capabilities(".")

	require.Len(t, caps, 3)
	assert.Equal(t, model.CapabilityUnavailable, caps[2].Status)
	assert.Contains(t, caps[2].Reason, "shallow")
}

func TestAnnotateComputesHotspots(t *testing.T) {
	t.Parallel()

	log := "a.go\nb.go\n\na.go\n\na.go\n"
	c := newTestCollector(map[string]string{"log": log}, nil)

	inv := &model.Inventory{
		Root: ".",
		Records: []model.FileRecord{
			{Path: "a.go", TotalLines: 10},
			{Path: "b.go", TotalLines: 50},
			{Path: "c.go", TotalLines: 5},
		},
	}
	annotated := c.Annotate(inv)
	assert.Equal(t, 2, annotated)

	require.NotNil(t, inv.Records[0].GitSignal)
	assert.Equal(t, 3, inv.Records[0].GitSignal.Commits)
	assert.Equal(t, 30, inv.Records[0].GitSignal.Hotspot)

	require.NotNil(t, inv.Records[1].GitSignal)
	assert.Equal(t, 1, inv.Records[1].GitSignal.Commits)
	assert.Equal(t, 50, inv.Records[1].GitSignal.Hotspot)

	assert.Nil(t, inv.Records[2].GitSignal)
}

func TestAnnotateLogFailureLeavesInventoryUntouched(t *testing.T) {
	t.Parallel()

	c := newTestCollector(nil, map[string]bool{"log": true})
	inv := &model.Inventory{Records: []model.FileRecord{{Path: "a.go", TotalLines: 10}}}

	assert.Equal(t, 0, c.Annotate(inv))
	assert.Nil(t, inv.Records[0].GitSignal)
	assert.False(t, inv.HasGitSignals())
}
