// Package summary renders a cleaned field map into a human-readable
// card summary, grouped into fixed semantic sections.
package summary

import (
	"strings"
	"unicode"

	"github.com/prescottcassy/insurance-assistant/constants"
	"github.com/prescottcassy/insurance-assistant/internal/extract"
)

type section struct {
	title string
	keys  []string
}

// Fixed section order. A section is omitted entirely when none of its keys
// are present.
var sections = []section{
	{
		title: "Member Information",
		keys: []string{
			constants.FieldSubscriberName,
			constants.FieldSubscriberID,
			constants.FieldGroupNo,
			constants.FieldDateIssued,
			"member_id",
			"member_name",
		},
	},
	{
		title: "Coverage & Benefits",
		keys: []string{
			constants.FieldPrimary,
			constants.FieldSpecialist,
			constants.FieldUrgentCare,
			constants.FieldER,
			constants.FieldPreventiveCare,
			constants.FieldDeductible,
			"office_visit",
			"emergency_room",
			"coinsurance",
		},
	},
	{
		title: "Prescription Drug Coverage",
		keys: []string{
			constants.FieldPrescriptionDrug,
			constants.FieldCopay,
			constants.FieldRxBinGroup,
			"rx_bin",
			"rx_pcn",
			"rx_group",
		},
	},
	{
		title: "Notes",
		keys: []string{
			"notes",
			"note",
			"customer_service",
			"website",
		},
	},
}

// Aggregate keys rendered as plain lines instead of bullets, keeping a
// summary feel for roll-up fields.
var plainLineKeys = map[string]struct{}{
	"responsibility": {},
	"members":        {},
}

// Format renders the cleaned field map as a sectioned plain-text summary.
// Within Member Information, the first key containing "name" is hoisted out
// as a standalone "User Name" line and excluded from the itemized list.
func Format(cleaned extract.FieldMap) string {
	var b strings.Builder
	known := make(map[string]struct{})

	for _, sec := range sections {
		var lines []string
		if sec.title == "Member Information" {
			if nameKey := findNameKey(cleaned, sec.keys); nameKey != "" {
				lines = append(lines, "User Name: "+Beautify(cleaned[nameKey]))
				known[nameKey] = struct{}{}
			}
		}
		for _, k := range sec.keys {
			known[k] = struct{}{}
			v, ok := cleaned[k]
			if !ok {
				continue
			}
			if sec.title == "Member Information" && strings.Contains(k, "name") {
				continue // already hoisted
			}
			lines = append(lines, "- "+displayKey(k)+": "+Beautify(v))
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString(sec.title)
		b.WriteString("\n")
		for _, ln := range lines {
			b.WriteString(ln)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// unknown keys trail the fixed sections as a flat list
	for _, k := range cleaned.SortedKeys() {
		if _, ok := known[k]; ok {
			continue
		}
		if _, plain := plainLineKeys[k]; plain {
			b.WriteString(displayKey(k) + ": " + Beautify(cleaned[k]) + "\n")
		} else {
			b.WriteString("- " + displayKey(k) + ": " + Beautify(cleaned[k]) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// findNameKey returns the first Member Information key containing "name"
// that is present in the field map.
func findNameKey(cleaned extract.FieldMap, keys []string) string {
	for _, k := range keys {
		if !strings.Contains(k, "name") {
			continue
		}
		if _, ok := cleaned[k]; ok {
			return k
		}
	}
	return ""
}

// displayKey turns snake_case into a title-cased label.
func displayKey(key string) string {
	return Beautify(strings.ReplaceAll(key, "_", " "))
}

// Beautify title-cases every alphabetic word; tokens containing digits or
// symbols pass through unchanged so currency amounts, percentages, and IDs
// keep their shape.
func Beautify(v string) string {
	words := strings.Fields(v)
	for i, w := range words {
		if isAlphabetic(w) {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

func isAlphabetic(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(w) > 0
}
