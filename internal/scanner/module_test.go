package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleKey(t *testing.T) {
	t.Parallel()

	roots := []string{"internal", "cmd"}
	tests := []struct {
		name  string
		path  string
		depth int
		want  string
	}{
		{"root level file", "go.mod", 2, RootModule},
		{"dot-slash prefix stripped", "./main.go", 2, RootModule},
		{"unrooted first segment only", "docs/guide/intro.md", 2, "docs"},
		{"rooted respects depth", "internal/pack/greedy.go", 2, "internal/pack"},
		{"rooted depth one", "internal/pack/greedy.go", 1, "internal"},
		{"rooted shallower than depth", "cmd/root.go", 3, "cmd"},
		{"depth clamps to one", "internal/pack/greedy.go", 0, "internal"},
		{"backslashes normalized", `internal\pack\greedy.go`, 2, "internal/pack"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ModuleKey(tt.path, roots, tt.depth))
		})
	}
}

func TestModuleKeyDeterministic(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		assert.Equal(t, "internal/pack", ModuleKey("internal/pack/plan.go", []string{"internal"}, 2))
	}
}
