package ocr

import (
	"regexp"
	"strings"
)

var (
	reIDish   = regexp.MustCompile(`\b[a-z]{0,3}\d{6,}\b`)
	reDollar  = regexp.MustCompile(`\$\d+`)
	reLabeled = regexp.MustCompile(`\b(subscriber|member|group|copay|deductible|rxbin|plan)\b`)
)

// heuristicConfidence scores decoded text by how card-like it looks.
// Insurance cards carry member IDs, dollar copays, and a handful of
// well-known labels; each signal adds a fixed boost.
func heuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if reLabeled.MatchString(txtL) {
		score += 0.25
	}
	if reIDish.MatchString(txtL) {
		score += 0.2
	}
	if reDollar.MatchString(txtL) {
		score += 0.15
	}
	if len(txt) > 80 { // enough content
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
