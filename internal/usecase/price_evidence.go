package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxEvidenceLines   = 8
	maxEvidenceLineLen = 220
)

var pricePattern = regexp.MustCompile(`(?i)` +
	`€\s?\d{1,3}(?:[\s,.]\d{3})*(?:[.,]\d{1,2})?` +
	`|\d{1,3}(?:[\s,.]\d{3})*(?:[.,]\d{1,2})?\s?€` +
	`|\$\s?\d{1,3}(?:[\s,.]\d{3})*(?:[.,]\d{1,2})?` +
	`|£\s?\d{1,3}(?:[\s,.]\d{3})*(?:[.,]\d{1,2})?` +
	`|(?:\bRMB\b|\bCNY\b|人民幣|人民币|元)\s?\d+` +
	`|\d+\s?(?:RMB\b|CNY\b|元)`)

// ExtractPriceEvidence returns the distinct lines of text that carry an
// explicit price, at most eight, each cut to 220 characters.
func ExtractPriceEvidence(text string) []string {
	var lines []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !pricePattern.MatchString(line) {
			continue
		}
		if utf8.RuneCountInString(line) > maxEvidenceLineLen {
			line = string([]rune(line)[:maxEvidenceLineLen]) + "..."
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
		if len(lines) == maxEvidenceLines {
			break
		}
	}
	return lines
}
