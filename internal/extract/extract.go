package extract

import (
	"regexp"
	"strings"

	"github.com/prescottcassy/insurance-assistant/constants"
)

// fieldPattern pairs a canonical key with the label-anchored pattern that
// captures its value. Evaluated in order; first match only.
type fieldPattern struct {
	key string
	re  *regexp.Regexp
}

// Specific-field pass. Order matters: overlapping labels (e.g. "Primary" vs
// "Primary Care") resolve by first-match-wins.
var specificPatterns = []fieldPattern{
	{constants.FieldSubscriberName, regexp.MustCompile(`(?i)Subscriber Name[:\s]*([A-Za-z .]+)`)},
	{constants.FieldSubscriberID, regexp.MustCompile(`(?i)Subscriber ID[:\s]*([A-Z0-9]+)`)},
	{constants.FieldGroupNo, regexp.MustCompile(`(?i)Group No[:\s]*([0-9]+)`)},
	{constants.FieldRxBinGroup, regexp.MustCompile(`(?i)RxBin/Group[:\s]*([0-9A-Z ]+)`)},
	{constants.FieldDateIssued, regexp.MustCompile(`(?i)Date Issued[:\s]*([0-9/]+)`)},
	{constants.FieldPrimary, regexp.MustCompile(`(?i)Primary[:\s]*\$?([0-9]+)`)},
	{constants.FieldSpecialist, regexp.MustCompile(`(?i)Specialist[:\s]*\$?([0-9]+)`)},
	{constants.FieldUrgentCare, regexp.MustCompile(`(?i)Urgent Care[:\s]*\$?([0-9]+)`)},
	{constants.FieldER, regexp.MustCompile(`(?i)ER[:\s]*\$?([0-9]+)`)},
	{constants.FieldPrescriptionDrug, regexp.MustCompile(`(?i)Prescription Drug[:\s]*([$0-9/ %\-]+)`)},
	{constants.FieldPreventiveCare, regexp.MustCompile(`(?i)Preventive Care[:\s]*([A-Za-z ]+)`)},
	{constants.FieldCopay, regexp.MustCompile(`(?i)Copay[:\s]*\$?([0-9]+)`)},
	{constants.FieldDeductible, regexp.MustCompile(`(?i)Deductible[:\s]*\$?([0-9]+)`)},
}

// Copay/deductible repair pass. OCR tends to place the amount before or after
// the label with inconsistent separators; "No" reads as a textual zero.
var (
	reCopayValueLabel      = regexp.MustCompile(`(?i)(\$\d+|No)[\s:]*Copay`)
	reCopayLabelValue      = regexp.MustCompile(`(?i)Copay[\s:]*(\$\d+|No|[0-9]+)`)
	reDeductibleValueLabel = regexp.MustCompile(`(?i)(\$\d+|No)[\s:]*Deductible`)
	reDeductibleLabelValue = regexp.MustCompile(`(?i)Deductible[\s:]*(\$\d+|No|[0-9]+)`)
)

// Generic dollar-amount harvesting: "<label>: $<number>[/<number>...][%]".
var reDollarField = regexp.MustCompile(`([A-Za-z ]+?)[\s:\-]+\$([0-9]+(?:/[0-9]+)*%?)`)

// Generic key-value harvesting anchor: a capitalized label ending in a colon.
var reKVLabel = regexp.MustCompile(`[A-Z][A-Za-z0-9 /\-]*:`)

// Extract converts raw OCR text into a field map using the layered strategy:
// specific patterns, copay/deductible repair, generic dollar harvesting, then
// generic key-value harvesting. Later passes never override earlier keys
// (the repair pass may overwrite copay/deductible only). Unmatched patterns
// are simply omitted; Extract never fails.
func Extract(text string) FieldMap {
	fields := make(FieldMap)

	// 1) specific-field pass: first match only per pattern
	for _, p := range specificPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			fields.SetIfAbsent(p.key, strings.TrimSpace(m[1]))
		}
	}

	// 2) repair pass: value-then-label wins over label-then-value, and the
	// result overwrites the weaker pass-1 value for these two fields only
	if v, ok := repairAmount(text, reCopayValueLabel, reCopayLabelValue); ok {
		fields[constants.FieldCopay] = v
	}
	if v, ok := repairAmount(text, reDeductibleValueLabel, reDeductibleLabelValue); ok {
		fields[constants.FieldDeductible] = v
	}

	// 3) generic dollar-amount harvesting: fill gaps only
	for _, m := range reDollarField.FindAllStringSubmatch(text, -1) {
		key := keyify(m[1])
		if key == "" {
			continue
		}
		fields.SetIfAbsent(key, strings.TrimSpace(m[2]))
	}

	// 4) generic key-value harvesting: fill gaps only, reject empty values
	harvestKeyValues(text, fields)

	// 5) full raw input retained for diagnostics; stripped by Clean
	fields[constants.RawTextKey] = text

	return fields
}

// repairAmount tries value-then-label first, then label-then-value, and
// normalizes the captured amount ("$25" -> "25", "No" -> "0").
func repairAmount(text string, valueLabel, labelValue *regexp.Regexp) (string, bool) {
	if m := valueLabel.FindStringSubmatch(text); m != nil {
		return normalizeAmount(m[1]), true
	}
	if m := labelValue.FindStringSubmatch(text); m != nil {
		return normalizeAmount(m[1]), true
	}
	return "", false
}

func normalizeAmount(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "no") {
		return "0"
	}
	return strings.TrimPrefix(v, "$")
}

// harvestKeyValues scans for "<Label>: <value>" pairs. The value runs from
// the label's colon to the next capitalized label (or line/text end), which
// stands in for the lookahead boundary of the original pattern.
func harvestKeyValues(text string, fields FieldMap) {
	locs := reKVLabel.FindAllStringIndex(text, -1)
	for i, loc := range locs {
		start, end := loc[0], loc[1]
		if start > 0 {
			// label must begin a token
			switch text[start-1] {
			case ' ', '\n', '\t', '(', '[':
			default:
				continue
			}
		}
		label := strings.TrimSpace(text[start : end-1])
		if label == "" {
			continue
		}

		valEnd := len(text)
		if i+1 < len(locs) {
			valEnd = locs[i+1][0]
		}
		val := text[end:valEnd]
		if nl := strings.IndexByte(val, '\n'); nl >= 0 {
			val = val[:nl]
		}
		val = strings.Trim(val, " \t:;,-")
		if val == "" {
			continue
		}
		fields.SetIfAbsent(keyify(label), val)
	}
}
