package recommend

import (
	"fmt"

	"github.com/clinprep/backend/internal/models"
)

// milestoneDef is one rung of the ladder. The check runs against the
// learner's performance summary; progress renders how far along they are.
type milestoneDef struct {
	name        string
	description string
	check       func(p *models.PerformanceSummary) bool
	progress    func(p *models.PerformanceSummary) string
}

// milestoneLadder is walked in order. The learner's current milestone is
// the last consecutively met rung from the bottom; the next is the first
// unmet one.
var milestoneLadder = []milestoneDef{
	{
		name:        "Beginner",
		description: "Answer 5 questions",
		check: func(p *models.PerformanceSummary) bool {
			return p.TotalQuestions >= 5
		},
		progress: func(p *models.PerformanceSummary) string {
			return fmt.Sprintf("%d/5 questions", minInt(p.TotalQuestions, 5))
		},
	},
	{
		name:        "Explorer",
		description: "Practice 3 different topics",
		check: func(p *models.PerformanceSummary) bool {
			return p.TopicsPracticed >= 3
		},
		progress: func(p *models.PerformanceSummary) string {
			return fmt.Sprintf("%d/3 topics", minInt(p.TopicsPracticed, 3))
		},
	},
	{
		name:        "Committed",
		description: "Complete 3 exams",
		check: func(p *models.PerformanceSummary) bool {
			return p.ExamsCompleted >= 3
		},
		progress: func(p *models.PerformanceSummary) string {
			return fmt.Sprintf("%d/3 exams", minInt(p.ExamsCompleted, 3))
		},
	},
	{
		name:        "Proficient",
		description: "Answer 25 questions with 70%+ accuracy",
		check: func(p *models.PerformanceSummary) bool {
			return p.TotalQuestions >= 25 && p.OverallAccuracy >= 70
		},
		progress: func(p *models.PerformanceSummary) string {
			return fmt.Sprintf("%d/25 questions, %.0f%%/70%% accuracy", p.TotalQuestions, p.OverallAccuracy)
		},
	},
	{
		name:        "Expert",
		description: "Answer 50 questions with 85%+ accuracy",
		check: func(p *models.PerformanceSummary) bool {
			return p.TotalQuestions >= 50 && p.OverallAccuracy >= 85
		},
		progress: func(p *models.PerformanceSummary) string {
			return fmt.Sprintf("%d/50 questions, %.0f%%/85%% accuracy", p.TotalQuestions, p.OverallAccuracy)
		},
	},
	{
		name:        "Master",
		description: "Answer 100 questions with 90%+ accuracy",
		check: func(p *models.PerformanceSummary) bool {
			return p.TotalQuestions >= 100 && p.OverallAccuracy >= 90
		},
		progress: func(p *models.PerformanceSummary) string {
			return fmt.Sprintf("%d/100 questions, %.0f%%/90%% accuracy", p.TotalQuestions, p.OverallAccuracy)
		},
	},
}

// GetNextMilestone walks the ladder and reports the learner's current
// milestone plus progress toward the next. Learners with no profile
// start at Novice.
func (e *Engine) GetNextMilestone(learnerID string) *models.MilestoneStatus {
	perf, err := e.profiles.GetAllPerformanceData(learnerID)
	if err != nil {
		return &models.MilestoneStatus{
			Current:     "Novice",
			Next:        "Beginner",
			Progress:    "0/5 questions",
			Description: "Answer 5 questions",
		}
	}

	current := "Novice"
	for _, rung := range milestoneLadder {
		if !rung.check(perf) {
			return &models.MilestoneStatus{
				Current:     current,
				Next:        rung.name,
				Progress:    rung.progress(perf),
				Description: rung.description,
			}
		}
		current = rung.name
	}

	return &models.MilestoneStatus{
		Current:     current,
		Next:        "Master",
		Progress:    "Complete",
		Description: "You've mastered all milestones!",
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
