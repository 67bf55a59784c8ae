package scanner

import "strings"

// RootModule is the module key for files that live directly at the scan root.
const RootModule = "(root)"

// ModuleKey derives the grouping key for a normalized repository-relative
// path.
//
// Rules:
//   - root-level files map to "(root)"
//   - when the first directory segment is one of roots, the key keeps up to
//     depth segments ("internal/pack" for roots=[internal], depth=2)
//   - otherwise the key is the first directory segment alone
//
// The same path always yields the same key, which makes the spread
// strategy's partition deterministic.
func ModuleKey(path string, roots []string, depth int) string {
	p := strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "./")
	p = strings.TrimLeft(p, "/")

	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return RootModule
	}

	segs := make([]string, 0, 4)
	for _, s := range strings.Split(p[:idx], "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return RootModule
	}

	rooted := false
	for _, r := range roots {
		if r == segs[0] {
			rooted = true
			break
		}
	}
	if !rooted {
		return segs[0]
	}

	if depth < 1 {
		depth = 1
	}
	if depth > len(segs) {
		depth = len(segs)
	}
	return strings.Join(segs[:depth], "/")
}
