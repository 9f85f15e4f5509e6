package scoring

import "strings"

const (
	sectionBaseScore = 60
	maxScore         = 100

	contactItemBonus   = 10
	skillKeywordBonus  = 5
	skillBonusCap      = 40
	experienceSignal   = 15
	actionVerbBonus    = 2
	actionVerbCap      = 10
	educationTermBonus = 5
	educationBonusCap  = 40
)

// SectionScores maps a section name to its score in [0, 100].
type SectionScores map[string]int

// AnalyzeSections scores every catalog section against text. Sections with no
// matching marker score 0; detected sections start at the base score, earn
// their section-specific bonus, and are capped at 100.
func (s *Scorer) AnalyzeSections(text string) SectionScores {
	lower := strings.ToLower(text)
	scores := make(SectionScores, len(s.catalog.sections))
	for _, sec := range s.catalog.sections {
		score := 0
		if anyMatch(sec, lower) {
			score = sectionBaseScore
			if sec.bonus != nil {
				score += sec.bonus(s.catalog, text)
			}
			score = min(score, maxScore)
		}
		scores[sec.name] = score
	}
	return scores
}

func anyMatch(sec section, lower string) bool {
	for _, re := range sec.patterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func contactInfoBonus(c *Catalog, text string) int {
	lower := strings.ToLower(text)
	score := 0
	if c.HasIndicator(IndicatorEmail, text) {
		score += contactItemBonus
	}
	if c.HasIndicator(IndicatorPhone, text) {
		score += contactItemBonus
	}
	if strings.Contains(lower, "linkedin") {
		score += contactItemBonus
	}
	if strings.Contains(lower, "github") {
		score += contactItemBonus
	}
	return score
}

func skillsBonus(c *Catalog, text string) int {
	return min(countContained(c.techKeywords, text)*skillKeywordBonus, skillBonusCap)
}

func experienceBonus(c *Catalog, text string) int {
	score := 0
	if c.HasIndicator(IndicatorBulletPoints, text) {
		score += experienceSignal
	}
	if c.HasIndicator(IndicatorDates, text) {
		score += experienceSignal
	}
	score += min(countContained(c.actionVerbs, text)*actionVerbBonus, actionVerbCap)
	return score
}

func educationBonus(c *Catalog, text string) int {
	return min(countContained(c.educationTerms, text)*educationTermBonus, educationBonusCap)
}

// countContained counts distinct terms that occur as case-insensitive
// substrings of text.
func countContained(terms []string, text string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			n++
		}
	}
	return n
}
