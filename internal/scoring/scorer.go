// Package scoring implements the heuristic ATS scoring engine: section
// detection, keyword counting, format analysis, weighted aggregation and
// suggestion generation over plain resume text.
//
// Every operation is a pure function of its input and the immutable Catalog,
// so a Scorer may be shared across goroutines without locking.
package scoring

// Scorer analyzes resume text against a Catalog.
type Scorer struct {
	catalog *Catalog
}

// NewScorer constructs a Scorer. A nil catalog selects DefaultCatalog.
func NewScorer(catalog *Catalog) *Scorer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Scorer{catalog: catalog}
}

// Catalog returns the catalog the scorer reads.
func (s *Scorer) Catalog() *Catalog {
	return s.catalog
}

// Analyze scores text and returns the full analysis. Empty text is valid
// input and yields zero scores.
func (s *Scorer) Analyze(text, filename string) ResumeAnalysis {
	sectionScores := s.AnalyzeSections(text)
	keywordsFound := s.CountKeywords(text)
	formatScore := s.AnalyzeFormat(text)

	detected := 0
	for _, v := range sectionScores {
		if v > 0 {
			detected++
		}
	}

	return ResumeAnalysis{
		Filename:         filename,
		OverallScore:     CalculateOverallScore(sectionScores, keywordsFound, formatScore),
		SectionScores:    sectionScores,
		KeywordsFound:    keywordsFound,
		SectionsDetected: detected,
		FormatScore:      formatScore,
		Suggestions:      s.GenerateSuggestions(text, sectionScores, keywordsFound, formatScore),
	}
}
