package scoring

import (
	"regexp"
	"sync"
)

// Section names, in catalog order.
const (
	SectionContactInfo         = "contact_info"
	SectionProfessionalSummary = "professional_summary"
	SectionExperience          = "experience"
	SectionEducation           = "education"
	SectionSkills              = "skills"
	SectionProjects            = "projects"
	SectionCertifications      = "certifications"
)

// Format indicator names.
const (
	IndicatorBulletPoints = "bullet_points"
	IndicatorDates        = "dates"
	IndicatorEmail        = "email"
	IndicatorPhone        = "phone"
	IndicatorURLs         = "urls"
)

// Catalog is the immutable set of patterns and keyword lists the scorer reads.
// A Catalog is never mutated after construction and may be shared freely.
type Catalog struct {
	sections         []section
	techKeywords     []string
	actionVerbs      []string
	educationTerms   []string
	formatIndicators map[string]*regexp.Regexp
}

type section struct {
	name     string
	patterns []*regexp.Regexp
	bonus    func(c *Catalog, text string) int
}

var defaultCatalog = sync.OnceValue(newDefaultCatalog)

// DefaultCatalog returns the process-wide catalog, building it on first use.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

func newDefaultCatalog() *Catalog {
	c := &Catalog{
		techKeywords: []string{
			"python", "java", "javascript", "react", "node.js", "sql",
			"html", "css", "git", "github", "docker", "kubernetes",
			"aws", "azure", "mongodb", "postgresql", "mysql",
			"machine learning", "data science", "api", "rest",
			"agile", "scrum", "ci/cd", "jenkins", "linux",
		},
		actionVerbs: []string{
			"developed", "implemented", "managed", "created",
			"designed", "built", "led", "optimized",
		},
		educationTerms: []string{
			"degree", "bachelor", "master", "phd",
			"university", "college", "gpa",
		},
		formatIndicators: map[string]*regexp.Regexp{
			IndicatorBulletPoints: regexp.MustCompile(`[•·▪▫▸▹‣⁃]|\*\s|\-\s|\d+\.\s`),
			IndicatorDates:        regexp.MustCompile(`\b\d{4}\b|\b\d{1,2}/\d{4}\b|\b\w+\s\d{4}\b`),
			IndicatorEmail:        regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
			IndicatorPhone:        regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b|\b\(\d{3}\)\s?\d{3}[-.]?\d{4}\b`),
			IndicatorURLs:         regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`),
		},
	}

	c.sections = []section{
		{name: SectionContactInfo, patterns: compileAll("email", "phone", "linkedin", "github", "address"), bonus: contactInfoBonus},
		{name: SectionProfessionalSummary, patterns: compileAll("summary", "objective", "profile", "about")},
		{name: SectionExperience, patterns: compileAll("experience", "employment", "work history", "career"), bonus: experienceBonus},
		{name: SectionEducation, patterns: compileAll("education", "academic", "degree", "university", "college"), bonus: educationBonus},
		{name: SectionSkills, patterns: compileAll("skills", "technical skills", "technologies", "programming"), bonus: skillsBonus},
		{name: SectionProjects, patterns: compileAll("projects", "portfolio", "work samples")},
		{name: SectionCertifications, patterns: compileAll("certifications", "licenses", "certificates")},
	}
	return c
}

// compileAll compiles lowercase section markers; they are matched against
// lowercased text.
func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// Sections returns the section names in iteration order.
func (c *Catalog) Sections() []string {
	names := make([]string, 0, len(c.sections))
	for _, s := range c.sections {
		names = append(names, s.name)
	}
	return names
}

// Size reports how many sections the catalog scores.
func (c *Catalog) Size() int {
	return len(c.sections)
}

// TechKeywords returns a copy of the technical keyword list.
func (c *Catalog) TechKeywords() []string {
	return append([]string(nil), c.techKeywords...)
}

// HasIndicator reports whether the named format indicator matches text.
// Unknown indicator names never match.
func (c *Catalog) HasIndicator(name, text string) bool {
	re, ok := c.formatIndicators[name]
	if !ok {
		return false
	}
	return re.MatchString(text)
}
