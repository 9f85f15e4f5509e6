package scoring

import "strings"

const (
	bulletFormatPoints = 25
	datesFormatPoints  = 25
	emailFormatPoints  = 20
	phoneFormatPoints  = 20
	lengthFormatPoints = 10

	minWordCount = 200
	maxWordCount = 800
)

// CountKeywords reports how many distinct catalog technical keywords occur
// anywhere in text, ignoring case.
func (s *Scorer) CountKeywords(text string) int {
	return countContained(s.catalog.techKeywords, text)
}

// AnalyzeFormat scores structural signals of the text in [0, 100].
func (s *Scorer) AnalyzeFormat(text string) int {
	c := s.catalog
	score := 0
	if c.HasIndicator(IndicatorBulletPoints, text) {
		score += bulletFormatPoints
	}
	if c.HasIndicator(IndicatorDates, text) {
		score += datesFormatPoints
	}
	if c.HasIndicator(IndicatorEmail, text) {
		score += emailFormatPoints
	}
	if c.HasIndicator(IndicatorPhone, text) {
		score += phoneFormatPoints
	}
	if words := len(strings.Fields(text)); words >= minWordCount && words <= maxWordCount {
		score += lengthFormatPoints
	}
	return clamp(score, 0, maxScore)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
