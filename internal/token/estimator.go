// Package token provides the byte-count token heuristic used everywhere a
// budget is accounted. It is an approximation, not a tokenizer: roughly one
// token per four bytes of UTF-8, rounded up. Exact model-tokenizer
// compatibility is out of scope on purpose; the same heuristic applied
// uniformly is what keeps plans deterministic and comparable.
package token

// BytesPerToken is the fixed estimation ratio.
const BytesPerToken = 4

// Estimate returns the estimated token count for a byte length. Defined for
// all non-negative inputs; zero bytes estimate to zero tokens.
func Estimate(byteLen int) int {
	if byteLen <= 0 {
		return 0
	}
	return (byteLen + BytesPerToken - 1) / BytesPerToken
}
