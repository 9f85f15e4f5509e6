package scoring

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxSuggestions caps the suggestion list. Entries past the cap are
	// dropped by position, not by priority.
	MaxSuggestions = 8

	improveSectionBelow = 70
	minKeywords         = 5
	minFormatScore      = 60
)

var generalSuggestions = []Suggestion{
	{
		Title:       "Quantify Your Achievements",
		Description: "Add numbers and metrics to your accomplishments (e.g., 'Improved performance by 25%').",
		Priority:    PriorityMedium,
	},
	{
		Title:       "Tailor for Each Application",
		Description: "Customize your resume keywords and content for each job application to improve ATS matching.",
		Priority:    PriorityLow,
	},
}

// GenerateSuggestions derives improvement suggestions from the scoring
// signals. Section suggestions come first in catalog order, then keyword and
// format suggestions, then the two general suggestions; the list is cut to
// the first MaxSuggestions entries.
func (s *Scorer) GenerateSuggestions(text string, sectionScores SectionScores, keywordsFound, formatScore int) []Suggestion {
	out := make([]Suggestion, 0, s.catalog.Size()+2+len(generalSuggestions))

	for _, name := range s.catalog.Sections() {
		score := sectionScores[name]
		label := strings.ReplaceAll(name, "_", " ")
		switch {
		case score == 0:
			out = append(out, Suggestion{
				Title:       fmt.Sprintf("Add %s Section", titleCase(label)),
				Description: fmt.Sprintf("Your resume is missing a %s section. This is essential for ATS systems.", label),
				Priority:    PriorityHigh,
			})
		case score < improveSectionBelow:
			out = append(out, Suggestion{
				Title:       fmt.Sprintf("Improve %s Section", titleCase(label)),
				Description: fmt.Sprintf("Your %s section could be enhanced with more relevant details and better formatting.", label),
				Priority:    PriorityMedium,
			})
		}
	}

	if keywordsFound < minKeywords {
		out = append(out, Suggestion{
			Title:       "Add More Technical Keywords",
			Description: "Include more relevant technical skills and keywords that match the job descriptions you're targeting.",
			Priority:    PriorityHigh,
		})
	}

	if formatScore < minFormatScore {
		out = append(out, Suggestion{
			Title:       "Improve Resume Formatting",
			Description: "Use bullet points, consistent date formats, and clear section headers to improve ATS readability.",
			Priority:    PriorityMedium,
		})
	}

	out = append(out, generalSuggestions...)

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// titleCase upper-cases the first letter of each word. cases.Caser is not
// safe for concurrent use, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
