// Package recommend turns learner performance into study guidance: weak
// and strong areas, recommended topics, focused exam plans, and the
// milestone ladder.
package recommend

import (
	"fmt"
	"strings"

	"github.com/clinprep/backend/internal/models"
	"github.com/clinprep/backend/internal/ontology"
)

// masteryThreshold splits areas into weak and strong.
const masteryThreshold = 0.7

// highPriorityBelow marks areas under half accuracy as high priority.
const highPriorityBelow = 0.5

// skillTopicMap maps catalog skills to the study topics that exercise
// them. Skills outside the map fall back to their display name.
var skillTopicMap = map[string][]string{
	"skill_ards_recognition":         {"ARDS", "respiratory distress"},
	"skill_vent_setup":               {"mechanical ventilation", "ventilator settings"},
	"skill_vent_monitoring":          {"ABG interpretation", "ventilator alarms"},
	"skill_sepsis_recognition":       {"sepsis", "septic shock"},
	"skill_sepsis_management":        {"sepsis bundle", "fluid resuscitation"},
	"skill_medication_admin":         {"medication safety", "IV administration"},
	"skill_critical_drug_management": {"vasoactive drugs", "high-alert medications"},
}

// ProfileSource is the slice of the profile manager the engine reads.
type ProfileSource interface {
	GetProfile(learnerID string) (*models.LearnerProfile, error)
	GetSkillGaps(learnerID string) []models.SkillGap
	GetTopicWeaknesses(learnerID string) []models.TopicStanding
	GetTopicStrengths(learnerID string) []models.TopicStanding
	GetAllPerformanceData(learnerID string) (*models.PerformanceSummary, error)
}

type Engine struct {
	profiles ProfileSource
	ontology *ontology.Ontology
}

func NewEngine(profiles ProfileSource, onto *ontology.Ontology) *Engine {
	return &Engine{profiles: profiles, ontology: onto}
}

// GetWeakSkills returns up to five practiced skills below the mastery
// threshold, weakest first.
func (e *Engine) GetWeakSkills(learnerID string) []models.WeakSkill {
	gaps := e.profiles.GetSkillGaps(learnerID)

	weak := []models.WeakSkill{}
	for _, gap := range gaps {
		if gap.Accuracy >= masteryThreshold {
			continue
		}

		name := skillDisplayName(gap.SkillID)
		category := "General"
		if skill, ok := e.ontology.GetSkill(gap.SkillID); ok {
			name = skill.Name
			category = string(skill.Category)
		}

		weak = append(weak, models.WeakSkill{
			SkillID:           gap.SkillID,
			SkillName:         name,
			Category:          category,
			Accuracy:          gap.Accuracy,
			Attempts:          gap.Attempts,
			ImprovementNeeded: masteryThreshold - gap.Accuracy,
		})
	}

	if len(weak) > 5 {
		weak = weak[:5]
	}
	return weak
}

// GetWeakTopics returns up to five practiced topics below the mastery
// threshold, weakest first, with a priority flag.
func (e *Engine) GetWeakTopics(learnerID string) []models.WeakTopic {
	weaknesses := e.profiles.GetTopicWeaknesses(learnerID)

	weak := []models.WeakTopic{}
	for _, standing := range weaknesses {
		if standing.Accuracy >= masteryThreshold {
			continue
		}

		priority := "medium"
		if standing.Accuracy < highPriorityBelow {
			priority = "high"
		}

		weak = append(weak, models.WeakTopic{
			Topic:             standing.Topic,
			Accuracy:          standing.Accuracy,
			Attempts:          standing.Attempts,
			Correct:           standing.Correct,
			ImprovementNeeded: masteryThreshold - standing.Accuracy,
			Priority:          priority,
		})
	}

	if len(weak) > 5 {
		weak = weak[:5]
	}
	return weak
}

// GetStrongTopics returns up to five topics at or above the mastery
// threshold, strongest first.
func (e *Engine) GetStrongTopics(learnerID string) []models.StrongTopic {
	strengths := e.profiles.GetTopicStrengths(learnerID)

	strong := []models.StrongTopic{}
	for _, standing := range strengths {
		if standing.Accuracy < masteryThreshold {
			continue
		}
		strong = append(strong, models.StrongTopic{
			Topic:    standing.Topic,
			Accuracy: standing.Accuracy,
			Attempts: standing.Attempts,
			Correct:  standing.Correct,
		})
	}

	if len(strong) > 5 {
		strong = strong[:5]
	}
	return strong
}

// GetRecommendedTopics builds up to eight study recommendations from the
// learner's weak topics and weak skills. Topic entries come first, and
// duplicates are removed case-insensitively by display name.
func (e *Engine) GetRecommendedTopics(learnerID string) []models.StudyRecommendation {
	weakSkills := e.GetWeakSkills(learnerID)
	weakTopics := e.GetWeakTopics(learnerID)

	var recs []models.StudyRecommendation
	for _, topic := range weakTopics {
		recs = append(recs, models.StudyRecommendation{
			SkillName:            topic.Topic,
			RecommendedTopics:    []string{topic.Topic},
			CurrentAccuracy:      percentLabel(topic.Accuracy),
			TargetAccuracy:       "80%",
			RecommendedQuestions: 5,
			Priority:             topic.Priority,
			Type:                 "topic",
		})
	}

	for _, weakSkill := range weakSkills {
		skill, ok := e.ontology.GetSkill(weakSkill.SkillID)
		if !ok {
			continue
		}

		topics, ok := skillTopicMap[weakSkill.SkillID]
		if !ok {
			topics = []string{skill.Name}
		}

		priority := "medium"
		if weakSkill.Accuracy < highPriorityBelow {
			priority = "high"
		}

		recs = append(recs, models.StudyRecommendation{
			SkillName:            skill.Name,
			RecommendedTopics:    topics,
			CurrentAccuracy:      percentLabel(weakSkill.Accuracy),
			TargetAccuracy:       "80%",
			RecommendedQuestions: 5,
			Priority:             priority,
			Type:                 "skill",
		})
	}

	seen := make(map[string]bool)
	unique := []models.StudyRecommendation{}
	for _, rec := range recs {
		key := strings.ToLower(rec.SkillName)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, rec)
	}

	if len(unique) > 8 {
		unique = unique[:8]
	}
	return unique
}

// GenerateFocusedExam plans an exam over the learner's weak areas: up to
// three weak topics and two weak skills, each getting an equal share of
// questions. With no weak areas the plan is a comprehensive review.
func (e *Engine) GenerateFocusedExam(learnerID string, numQuestions int) *models.FocusedExamPlan {
	weakSkills := e.GetWeakSkills(learnerID)
	weakTopics := e.GetWeakTopics(learnerID)

	if len(weakSkills) == 0 && len(weakTopics) == 0 {
		return &models.FocusedExamPlan{
			Focus:             "comprehensive_review",
			Message:           "Great job! No major gaps identified. This will be a comprehensive review.",
			SkillDistribution: map[string]models.SkillFocus{},
			TopicDistribution: map[string]models.TopicFocus{},
		}
	}

	totalWeak := len(weakTopics) + len(weakSkills)
	questionsPerArea := numQuestions / totalWeak
	if questionsPerArea < 2 {
		questionsPerArea = 2
	}

	topicDist := map[string]models.TopicFocus{}
	focusTopics := weakTopics
	if len(focusTopics) > 3 {
		focusTopics = focusTopics[:3]
	}
	for _, topic := range focusTopics {
		topicDist[topic.Topic] = models.TopicFocus{
			NumQuestions:    questionsPerArea,
			CurrentAccuracy: percentLabel(topic.Accuracy),
		}
	}

	skillDist := map[string]models.SkillFocus{}
	focusSkills := weakSkills
	if len(focusSkills) > 2 {
		focusSkills = focusSkills[:2]
	}
	for _, weakSkill := range focusSkills {
		skillDist[weakSkill.SkillID] = models.SkillFocus{
			SkillName:       weakSkill.SkillName,
			NumQuestions:    questionsPerArea,
			CurrentAccuracy: percentLabel(weakSkill.Accuracy),
		}
	}

	focusAreas := make([]string, 0, len(focusTopics)+len(focusSkills))
	for _, topic := range focusTopics {
		focusAreas = append(focusAreas, topic.Topic)
	}
	for _, weakSkill := range focusSkills {
		focusAreas = append(focusAreas, weakSkill.SkillName)
	}

	return &models.FocusedExamPlan{
		Focus:             "gap_remediation",
		Message:           fmt.Sprintf("This exam focuses on your %d weakest areas: %s", len(focusAreas), strings.Join(focusAreas, ", ")),
		SkillDistribution: skillDist,
		TopicDistribution: topicDist,
		RecommendedTopics: focusAreas,
	}
}

// GetComprehensiveRecommendations assembles the full recommendation
// dashboard for a learner.
func (e *Engine) GetComprehensiveRecommendations(learnerID string) *models.ComprehensiveRecommendations {
	if _, err := e.profiles.GetProfile(learnerID); err != nil {
		return &models.ComprehensiveRecommendations{
			HasData: false,
			Message: "No profile found. Create a profile to get recommendations.",
		}
	}

	perf, err := e.profiles.GetAllPerformanceData(learnerID)
	if err != nil || perf.TotalQuestions == 0 {
		return &models.ComprehensiveRecommendations{
			HasData: false,
			Message: "Complete some questions to get personalized recommendations.",
		}
	}

	return &models.ComprehensiveRecommendations{
		HasData:         true,
		OverallAccuracy: perf.OverallAccuracy,
		TotalQuestions:  perf.TotalQuestions,
		ExamsCompleted:  perf.ExamsCompleted,
		TopicsPracticed: perf.TopicsPracticed,
		Milestone:       e.GetNextMilestone(learnerID),
		WeakTopics:      e.GetWeakTopics(learnerID),
		StrongTopics:    e.GetStrongTopics(learnerID),
		WeakSkills:      e.GetWeakSkills(learnerID),
		Recommendations: e.GetRecommendedTopics(learnerID),
		FocusedExam:     e.GenerateFocusedExam(learnerID, 10),
		RecentExams:     perf.RecentExams,
	}
}

func percentLabel(accuracy float64) string {
	return fmt.Sprintf("%.0f%%", accuracy*100)
}

func skillDisplayName(skillID string) string {
	name := strings.TrimPrefix(skillID, "skill_")
	name = strings.ReplaceAll(name, "_", " ")
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
