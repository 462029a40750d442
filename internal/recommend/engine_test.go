package recommend

import (
	"fmt"
	"strings"
	"testing"

	"github.com/clinprep/backend/internal/models"
	"github.com/clinprep/backend/internal/ontology"
)

// fakeProfiles serves canned performance data.
type fakeProfiles struct {
	exists     bool
	gaps       []models.SkillGap
	weakTopics []models.TopicStanding
	strong     []models.TopicStanding
	summary    *models.PerformanceSummary
}

func (f *fakeProfiles) GetProfile(learnerID string) (*models.LearnerProfile, error) {
	if !f.exists {
		return nil, fmt.Errorf("profile %s: %w", learnerID, models.ErrNotFound)
	}
	return &models.LearnerProfile{LearnerID: learnerID}, nil
}

func (f *fakeProfiles) GetSkillGaps(learnerID string) []models.SkillGap {
	return f.gaps
}

func (f *fakeProfiles) GetTopicWeaknesses(learnerID string) []models.TopicStanding {
	return f.weakTopics
}

func (f *fakeProfiles) GetTopicStrengths(learnerID string) []models.TopicStanding {
	return f.strong
}

func (f *fakeProfiles) GetAllPerformanceData(learnerID string) (*models.PerformanceSummary, error) {
	if !f.exists || f.summary == nil {
		return nil, fmt.Errorf("profile %s: %w", learnerID, models.ErrNotFound)
	}
	return f.summary, nil
}

func newEngine(profiles *fakeProfiles) *Engine {
	return NewEngine(profiles, ontology.New())
}

func TestGetWeakSkills(t *testing.T) {
	profiles := &fakeProfiles{
		exists: true,
		gaps: []models.SkillGap{
			{SkillID: "skill_sepsis_recognition", Accuracy: 0.4, Attempts: 5, Proficiency: models.ProficiencyBeginner},
			{SkillID: "skill_unmapped_extra", Accuracy: 0.6, Attempts: 3, Proficiency: models.ProficiencyBeginner},
		},
	}
	e := newEngine(profiles)

	weak := e.GetWeakSkills("learner_1")
	if len(weak) != 2 {
		t.Fatalf("GetWeakSkills() returned %d, want 2", len(weak))
	}

	// Catalog skills resolve to their display name and category.
	if weak[0].SkillName != "Recognize Sepsis" {
		t.Errorf("SkillName = %q, want Recognize Sepsis", weak[0].SkillName)
	}
	if weak[0].Category != "Clinical Assessment" {
		t.Errorf("Category = %q, want Clinical Assessment", weak[0].Category)
	}
	if delta := weak[0].ImprovementNeeded; delta < 0.29 || delta > 0.31 {
		t.Errorf("ImprovementNeeded = %v, want ~0.3", delta)
	}

	// Skills outside the catalog derive a name from the id.
	if weak[1].SkillName != "Unmapped Extra" {
		t.Errorf("fallback SkillName = %q, want Unmapped Extra", weak[1].SkillName)
	}
	if weak[1].Category != "General" {
		t.Errorf("fallback Category = %q, want General", weak[1].Category)
	}
}

func TestGetWeakTopicsPriority(t *testing.T) {
	profiles := &fakeProfiles{
		exists: true,
		weakTopics: []models.TopicStanding{
			{Topic: "Sepsis", Accuracy: 0.3, Attempts: 10, Correct: 3},
			{Topic: "Ventilation", Accuracy: 0.6, Attempts: 5, Correct: 3},
		},
	}
	e := newEngine(profiles)

	weak := e.GetWeakTopics("learner_1")
	if len(weak) != 2 {
		t.Fatalf("GetWeakTopics() returned %d, want 2", len(weak))
	}
	if weak[0].Priority != "high" {
		t.Errorf("priority at 0.3 accuracy = %q, want high", weak[0].Priority)
	}
	if weak[1].Priority != "medium" {
		t.Errorf("priority at 0.6 accuracy = %q, want medium", weak[1].Priority)
	}
}

func TestGetRecommendedTopics(t *testing.T) {
	profiles := &fakeProfiles{
		exists: true,
		gaps: []models.SkillGap{
			{SkillID: "skill_sepsis_recognition", Accuracy: 0.4, Attempts: 5},
		},
		weakTopics: []models.TopicStanding{
			{Topic: "Fluid Resuscitation", Accuracy: 0.5, Attempts: 4, Correct: 2},
		},
	}
	e := newEngine(profiles)

	recs := e.GetRecommendedTopics("learner_1")
	if len(recs) != 2 {
		t.Fatalf("GetRecommendedTopics() returned %d, want 2", len(recs))
	}

	// Topic recommendations come before skill recommendations.
	if recs[0].Type != "topic" || recs[0].SkillName != "Fluid Resuscitation" {
		t.Errorf("recs[0] = %+v, want topic Fluid Resuscitation", recs[0])
	}
	if recs[1].Type != "skill" || recs[1].SkillName != "Recognize Sepsis" {
		t.Errorf("recs[1] = %+v, want skill Recognize Sepsis", recs[1])
	}
	if recs[1].CurrentAccuracy != "40%" {
		t.Errorf("CurrentAccuracy = %q, want 40%%", recs[1].CurrentAccuracy)
	}
	wantTopics := []string{"sepsis", "septic shock"}
	if strings.Join(recs[1].RecommendedTopics, ",") != strings.Join(wantTopics, ",") {
		t.Errorf("RecommendedTopics = %v, want %v", recs[1].RecommendedTopics, wantTopics)
	}
}

func TestGetRecommendedTopicsDedupAndCap(t *testing.T) {
	topics := []models.TopicStanding{
		// Collides with the skill name "Recognize ARDS" except for case.
		{Topic: "Recognize Ards", Accuracy: 0.35, Attempts: 3},
	}
	for i := 0; i < 4; i++ {
		topics = append(topics, models.TopicStanding{
			Topic:    fmt.Sprintf("Topic %d", i),
			Accuracy: 0.4,
			Attempts: 3,
		})
	}
	gaps := []models.SkillGap{
		{SkillID: "skill_ards_recognition", Accuracy: 0.4, Attempts: 4},
		{SkillID: "skill_vent_setup", Accuracy: 0.45, Attempts: 4},
		{SkillID: "skill_vent_monitoring", Accuracy: 0.5, Attempts: 4},
		{SkillID: "skill_sepsis_management", Accuracy: 0.55, Attempts: 4},
	}
	profiles := &fakeProfiles{exists: true, gaps: gaps, weakTopics: topics}
	e := newEngine(profiles)

	recs := e.GetRecommendedTopics("learner_1")
	if len(recs) != 8 {
		t.Fatalf("GetRecommendedTopics() returned %d, want capped at 8", len(recs))
	}

	seen := make(map[string]bool)
	for _, rec := range recs {
		key := strings.ToLower(rec.SkillName)
		if seen[key] {
			t.Errorf("duplicate recommendation %q", rec.SkillName)
		}
		seen[key] = true
	}
}

func TestGenerateFocusedExam(t *testing.T) {
	profiles := &fakeProfiles{
		exists: true,
		gaps: []models.SkillGap{
			{SkillID: "skill_sepsis_recognition", Accuracy: 0.4, Attempts: 5},
			{SkillID: "skill_vent_setup", Accuracy: 0.5, Attempts: 4},
			{SkillID: "skill_vent_monitoring", Accuracy: 0.6, Attempts: 4},
		},
		weakTopics: []models.TopicStanding{
			{Topic: "Sepsis", Accuracy: 0.3, Attempts: 10, Correct: 3},
			{Topic: "Ventilation", Accuracy: 0.5, Attempts: 4, Correct: 2},
		},
	}
	e := newEngine(profiles)

	plan := e.GenerateFocusedExam("learner_1", 10)
	if plan.Focus != "gap_remediation" {
		t.Errorf("Focus = %q, want gap_remediation", plan.Focus)
	}

	// 5 weak areas and 10 questions gives 2 per area.
	if len(plan.TopicDistribution) != 2 {
		t.Errorf("TopicDistribution has %d topics, want 2", len(plan.TopicDistribution))
	}
	if got := plan.TopicDistribution["Sepsis"]; got.NumQuestions != 2 {
		t.Errorf("Sepsis NumQuestions = %d, want 2", got.NumQuestions)
	}
	// Skills cap at two.
	if len(plan.SkillDistribution) != 2 {
		t.Errorf("SkillDistribution has %d skills, want 2", len(plan.SkillDistribution))
	}
	if _, ok := plan.SkillDistribution["skill_vent_monitoring"]; ok {
		t.Error("third weak skill included, want only top two")
	}
	if len(plan.RecommendedTopics) != 4 {
		t.Errorf("RecommendedTopics = %v, want 4 focus areas", plan.RecommendedTopics)
	}
}

func TestGenerateFocusedExamNoGaps(t *testing.T) {
	e := newEngine(&fakeProfiles{exists: true})

	plan := e.GenerateFocusedExam("learner_1", 10)
	if plan.Focus != "comprehensive_review" {
		t.Errorf("Focus = %q, want comprehensive_review", plan.Focus)
	}
	if len(plan.TopicDistribution) != 0 || len(plan.SkillDistribution) != 0 {
		t.Errorf("distributions not empty: %v / %v", plan.TopicDistribution, plan.SkillDistribution)
	}
}

func TestGetNextMilestone(t *testing.T) {
	tests := []struct {
		name         string
		summary      *models.PerformanceSummary
		wantCurrent  string
		wantNext     string
		wantProgress string
	}{
		{
			name:         "fresh learner",
			summary:      &models.PerformanceSummary{},
			wantCurrent:  "Novice",
			wantNext:     "Beginner",
			wantProgress: "0/5 questions",
		},
		{
			name: "mid ladder",
			summary: &models.PerformanceSummary{
				TotalQuestions:  30,
				OverallAccuracy: 75,
				TopicsPracticed: 4,
				ExamsCompleted:  3,
			},
			wantCurrent:  "Proficient",
			wantNext:     "Expert",
			wantProgress: "30/50 questions, 75%/85% accuracy",
		},
		{
			name: "first unmet rung blocks later ones",
			summary: &models.PerformanceSummary{
				TotalQuestions:  30,
				OverallAccuracy: 75,
				TopicsPracticed: 2,
				ExamsCompleted:  5,
			},
			wantCurrent:  "Beginner",
			wantNext:     "Explorer",
			wantProgress: "2/3 topics",
		},
		{
			name: "ladder complete",
			summary: &models.PerformanceSummary{
				TotalQuestions:  120,
				OverallAccuracy: 92,
				TopicsPracticed: 6,
				ExamsCompleted:  8,
			},
			wantCurrent:  "Master",
			wantNext:     "Master",
			wantProgress: "Complete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(&fakeProfiles{exists: true, summary: tt.summary})
			got := e.GetNextMilestone("learner_1")
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %q, want %q", got.Current, tt.wantCurrent)
			}
			if got.Next != tt.wantNext {
				t.Errorf("Next = %q, want %q", got.Next, tt.wantNext)
			}
			if got.Progress != tt.wantProgress {
				t.Errorf("Progress = %q, want %q", got.Progress, tt.wantProgress)
			}
		})
	}
}

func TestGetNextMilestoneNoProfile(t *testing.T) {
	e := newEngine(&fakeProfiles{})

	got := e.GetNextMilestone("ghost")
	if got.Current != "Novice" || got.Next != "Beginner" {
		t.Errorf("milestone = %s -> %s, want Novice -> Beginner", got.Current, got.Next)
	}
}

func TestGetComprehensiveRecommendations(t *testing.T) {
	// No profile at all.
	e := newEngine(&fakeProfiles{})
	recs := e.GetComprehensiveRecommendations("ghost")
	if recs.HasData {
		t.Error("HasData = true for missing profile, want false")
	}

	// Profile with no answered questions.
	e = newEngine(&fakeProfiles{exists: true, summary: &models.PerformanceSummary{}})
	recs = e.GetComprehensiveRecommendations("learner_1")
	if recs.HasData {
		t.Error("HasData = true with zero questions, want false")
	}

	// Profile with activity.
	e = newEngine(&fakeProfiles{
		exists: true,
		summary: &models.PerformanceSummary{
			TotalQuestions:  12,
			OverallAccuracy: 66.7,
			TopicsPracticed: 2,
			ExamsCompleted:  1,
		},
		weakTopics: []models.TopicStanding{
			{Topic: "Sepsis", Accuracy: 0.4, Attempts: 5, Correct: 2},
		},
	})
	recs = e.GetComprehensiveRecommendations("learner_1")
	if !recs.HasData {
		t.Fatal("HasData = false, want true")
	}
	if recs.Milestone == nil || recs.Milestone.Current != "Beginner" {
		t.Errorf("Milestone = %+v, want current Beginner", recs.Milestone)
	}
	if recs.FocusedExam == nil || recs.FocusedExam.Focus != "gap_remediation" {
		t.Errorf("FocusedExam = %+v, want gap_remediation", recs.FocusedExam)
	}
	if len(recs.WeakTopics) != 1 {
		t.Errorf("WeakTopics = %v, want 1 entry", recs.WeakTopics)
	}
}
