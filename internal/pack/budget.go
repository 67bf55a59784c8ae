package pack

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/srctally/srctally/internal/model"
)

// Budget sentinel for "no ceiling".
const Unlimited = model.UnlimitedBudget

// ParseBudget parses a token budget string.
//
// Accepted forms:
//   - plain integers: "50000"
//   - k suffix (x1,000): "128k", "1.5k"
//   - m suffix (x1,000,000): "1m", "0.5m"
//   - g suffix (x1,000,000,000): "1g"
//   - keywords "unlimited" or "max"
//
// Suffixes are case-insensitive. The error message names the offending
// argument: bad budget syntax is a fatal input error.
func ParseBudget(raw string) (int, error) {
	in := strings.ToLower(strings.TrimSpace(raw))
	if in == "unlimited" || in == "max" {
		return Unlimited, nil
	}

	mult := 1.0
	num := in
	switch {
	case strings.HasSuffix(in, "k"):
		num, mult = strings.TrimSpace(strings.TrimSuffix(in, "k")), 1_000
	case strings.HasSuffix(in, "m"):
		num, mult = strings.TrimSpace(strings.TrimSuffix(in, "m")), 1_000_000
	case strings.HasSuffix(in, "g"):
		num, mult = strings.TrimSpace(strings.TrimSuffix(in, "g")), 1_000_000_000
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, eris.Errorf("pack: invalid budget %q: expected <number>[k|m|g] or \"unlimited\" (examples: 128k, 1m)", strings.TrimSpace(raw))
	}
	if n < 0 {
		return 0, eris.Errorf("pack: invalid budget %q: must not be negative", strings.TrimSpace(raw))
	}
	v := n * mult
	if v > float64(math.MaxInt64) {
		return 0, eris.Errorf("pack: invalid budget %q: value overflows", strings.TrimSpace(raw))
	}
	return int(v), nil
}
