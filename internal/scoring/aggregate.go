package scoring

const (
	sectionWeight = 0.5
	keywordWeight = 0.3
	formatWeight  = 0.2

	pointsPerKeyword = 5
)

// CalculateOverallScore combines section, keyword and format signals into a
// single score. The section average divides by the number of scored sections,
// and the weighted sum is truncated toward zero.
func CalculateOverallScore(sectionScores SectionScores, keywordsFound, formatScore int) int {
	sectionAvg := 0.0
	if len(sectionScores) > 0 {
		sum := 0
		for _, v := range sectionScores {
			sum += v
		}
		sectionAvg = float64(sum) / float64(len(sectionScores))
	}
	keywordScore := min(keywordsFound*pointsPerKeyword, maxScore)

	// Explicit float64 conversions keep the compiler from fusing
	// multiply-adds, so truncation is identical on every platform.
	overall := float64(sectionAvg*sectionWeight) +
		float64(float64(keywordScore)*keywordWeight) +
		float64(float64(formatScore)*formatWeight)

	return clamp(int(overall), 0, maxScore)
}
