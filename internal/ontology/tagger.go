package ontology

import (
	"regexp"
	"sort"
	"strings"
)

// wordPattern matches candidate medical terms: lowercase runs of four or
// more letters. Short stopwords fall out for free.
var wordPattern = regexp.MustCompile(`\b[a-z]{4,}\b`)

// tagThreshold is the minimum confidence for a skill tag to be kept.
const tagThreshold = 0.3

// TaggableQuestion is the text a question exposes for auto-tagging.
type TaggableQuestion struct {
	Topic    string
	Scenario string
	Question string
}

// SkillTag is one auto-assigned skill with its match confidence.
type SkillTag struct {
	SkillID         string        `json:"skill_id"`
	SkillName       string        `json:"skill_name"`
	Category        SkillCategory `json:"category"`
	Confidence      float64       `json:"confidence"`
	MatchedKeywords []string      `json:"matched_keywords"`
}

// CompetencyCoverage reports how much of a competency a skill set covers.
type CompetencyCoverage struct {
	CompetencyID   string   `json:"competency_id"`
	CompetencyName string   `json:"competency_name"`
	MatchingSkills []string `json:"matching_skills"`
	Coverage       float64  `json:"coverage"`
}

// Tagger assigns skills to questions by keyword overlap with the ontology.
type Tagger struct {
	ontology *Ontology
}

func NewTagger(o *Ontology) *Tagger {
	return &Tagger{ontology: o}
}

// ExtractKeywords pulls candidate keywords from a question's topic,
// scenario, and question text. The result is deduplicated and unordered.
func (t *Tagger) ExtractKeywords(q TaggableQuestion) []string {
	seen := make(map[string]bool)

	for _, word := range strings.Fields(strings.ToLower(q.Topic)) {
		seen[word] = true
	}
	for _, word := range wordPattern.FindAllString(strings.ToLower(q.Scenario), -1) {
		seen[word] = true
	}
	for _, word := range wordPattern.FindAllString(strings.ToLower(q.Question), -1) {
		seen[word] = true
	}

	keywords := make([]string, 0, len(seen))
	for word := range seen {
		keywords = append(keywords, word)
	}
	return keywords
}

// TagQuestion scores every candidate skill by keyword overlap and returns
// the tags above threshold, highest confidence first. Confidence is the
// share of the skill's own keywords found in the question, capped at 1.
func (t *Tagger) TagQuestion(q TaggableQuestion) []SkillTag {
	keywords := t.ExtractKeywords(q)
	keywordSet := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		keywordSet[kw] = true
	}

	var tags []SkillTag
	for _, skill := range t.ontology.SearchByKeywords(keywords) {
		var matched []string
		for _, kw := range skill.Keywords {
			if keywordSet[strings.ToLower(kw)] {
				matched = append(matched, strings.ToLower(kw))
			}
		}

		confidence := float64(len(matched)) / float64(len(skill.Keywords))
		if confidence > 1.0 {
			confidence = 1.0
		}
		if confidence <= tagThreshold {
			continue
		}

		sort.Strings(matched)
		tags = append(tags, SkillTag{
			SkillID:         skill.ID,
			SkillName:       skill.Name,
			Category:        skill.Category,
			Confidence:      confidence,
			MatchedKeywords: matched,
		})
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Confidence > tags[j].Confidence
	})
	return tags
}

// CompetenciesFromSkills returns every competency touched by the given
// skill ids, with its coverage fraction.
func (t *Tagger) CompetenciesFromSkills(skillIDs []string) []CompetencyCoverage {
	idSet := make(map[string]bool, len(skillIDs))
	for _, id := range skillIDs {
		idSet[id] = true
	}

	var coverage []CompetencyCoverage
	for _, comp := range t.ontology.AllCompetencies() {
		var matching []string
		for _, id := range comp.SkillIDs {
			if idSet[id] {
				matching = append(matching, id)
			}
		}
		if len(matching) == 0 {
			continue
		}
		coverage = append(coverage, CompetencyCoverage{
			CompetencyID:   comp.ID,
			CompetencyName: comp.Name,
			MatchingSkills: matching,
			Coverage:       float64(len(matching)) / float64(len(comp.SkillIDs)),
		})
	}
	return coverage
}
