package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/clinprep/backend/internal/models"
)

// memStore keeps profiles in memory for tests.
type memStore struct {
	saved map[string]*models.LearnerProfile
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string]*models.LearnerProfile)}
}

func (s *memStore) LoadAll() (map[string]*models.LearnerProfile, error) {
	return make(map[string]*models.LearnerProfile), nil
}

func (s *memStore) Save(p *models.LearnerProfile) error {
	s.saved[p.LearnerID] = p
	return nil
}

func newTestManager(t *testing.T) (*Manager, *memStore) {
	t.Helper()
	store := newMemStore()
	m, err := NewManager(store)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	return m, store
}

func attempt(skillIDs []string, topic string, correct bool) models.QuestionAttempt {
	return models.QuestionAttempt{
		QuestionID:   "q_test",
		SkillIDs:     skillIDs,
		Topic:        topic,
		Difficulty:   "intermediate",
		QuestionType: "mcq",
		Correct:      correct,
		Timestamp:    time.Now().UTC(),
	}
}

func TestCreateProfileIdempotent(t *testing.T) {
	m, store := newTestManager(t)

	first, err := m.CreateProfile("learner_1", "Dana Reyes", "ICU Nurse")
	if err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}

	if err := m.RecordAttempt("learner_1", attempt([]string{"skill_vent_setup"}, "ARDS", true)); err != nil {
		t.Fatalf("RecordAttempt() error: %v", err)
	}

	// Creating again returns the existing profile untouched.
	again, err := m.CreateProfile("learner_1", "Someone Else", "RN")
	if err != nil {
		t.Fatalf("CreateProfile() second call error: %v", err)
	}
	if again.Name != first.Name {
		t.Errorf("second CreateProfile() Name = %q, want %q", again.Name, first.Name)
	}
	if len(again.Attempts) != 1 {
		t.Errorf("second CreateProfile() lost attempts: got %d, want 1", len(again.Attempts))
	}

	if _, ok := store.saved["learner_1"]; !ok {
		t.Error("profile was not persisted")
	}
}

func TestRecordAttemptUpdatesAggregates(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.CreateProfile("learner_1", "Dana Reyes", "ICU Nurse"); err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}

	results := []bool{true, true, false, true}
	for _, correct := range results {
		if err := m.RecordAttempt("learner_1", attempt([]string{"skill_sepsis_recognition"}, "  Sepsis ", correct)); err != nil {
			t.Fatalf("RecordAttempt() error: %v", err)
		}
	}

	p, err := m.GetProfile("learner_1")
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}

	perf := p.SkillPerformance["skill_sepsis_recognition"]
	if perf == nil {
		t.Fatal("skill_sepsis_recognition aggregate missing")
	}
	if perf.TotalAttempts != 4 || perf.CorrectAttempts != 3 {
		t.Errorf("skill aggregate = %d/%d, want 3/4", perf.CorrectAttempts, perf.TotalAttempts)
	}
	if perf.Accuracy != 0.75 {
		t.Errorf("skill accuracy = %v, want 0.75", perf.Accuracy)
	}
	if perf.ProficiencyLevel != models.ProficiencyIntermediate {
		t.Errorf("proficiency = %q, want intermediate", perf.ProficiencyLevel)
	}

	// Topic key is normalized to lowercase and trimmed.
	topicPerf := p.TopicPerformance["sepsis"]
	if topicPerf == nil {
		t.Fatal("topic aggregate missing for normalized key \"sepsis\"")
	}
	if topicPerf.TotalAttempts != 4 || topicPerf.CorrectAttempts != 3 {
		t.Errorf("topic aggregate = %d/%d, want 3/4", topicPerf.CorrectAttempts, topicPerf.TotalAttempts)
	}
}

func TestRecordAttemptUntaggedFallsBackToTopicSkill(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.CreateProfile("learner_1", "Dana Reyes", "ICU Nurse"); err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}

	if err := m.RecordAttempt("learner_1", attempt(nil, "Sepsis Management", true)); err != nil {
		t.Fatalf("RecordAttempt() error: %v", err)
	}

	p, err := m.GetProfile("learner_1")
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}

	perf := p.SkillPerformance["topic_sepsis_management"]
	if perf == nil {
		t.Fatal("synthetic aggregate missing for topic_sepsis_management")
	}
	if perf.TotalAttempts != 1 || perf.CorrectAttempts != 1 {
		t.Errorf("synthetic aggregate = %d/%d, want 1/1", perf.CorrectAttempts, perf.TotalAttempts)
	}

	if len(p.Attempts) != 1 {
		t.Fatalf("len(Attempts) = %d, want 1", len(p.Attempts))
	}
	got := p.Attempts[0].SkillIDs
	if len(got) != 1 || got[0] != "topic_sepsis_management" {
		t.Errorf("stored attempt skill ids = %v, want [topic_sepsis_management]", got)
	}
}

func TestRecordAttemptUnknownLearner(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.RecordAttempt("ghost", attempt(nil, "Sepsis", true))
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("RecordAttempt(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestSkillGapsAndStrengths(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.CreateProfile("learner_1", "Dana Reyes", "ICU Nurse"); err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}

	// skill_weak: 1/4 correct, skill_strong: 4/4 correct.
	seed := []struct {
		skill   string
		correct bool
	}{
		{"skill_weak", true}, {"skill_weak", false}, {"skill_weak", false}, {"skill_weak", false},
		{"skill_strong", true}, {"skill_strong", true}, {"skill_strong", true}, {"skill_strong", true},
	}
	for _, s := range seed {
		if err := m.RecordAttempt("learner_1", attempt([]string{s.skill}, "Ventilation", s.correct)); err != nil {
			t.Fatalf("RecordAttempt() error: %v", err)
		}
	}

	gaps := m.GetSkillGaps("learner_1")
	if len(gaps) != 1 {
		t.Fatalf("GetSkillGaps() returned %d gaps, want 1", len(gaps))
	}
	if gaps[0].SkillID != "skill_weak" || gaps[0].Accuracy != 0.25 {
		t.Errorf("gap = %+v, want skill_weak at 0.25", gaps[0])
	}

	strengths := m.GetStrengths("learner_1")
	if len(strengths) != 1 {
		t.Fatalf("GetStrengths() returned %d, want 1", len(strengths))
	}
	if strengths[0].SkillID != "skill_strong" || strengths[0].Accuracy != 1.0 {
		t.Errorf("strength = %+v, want skill_strong at 1.0", strengths[0])
	}
}

func TestTopicStandings(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.CreateProfile("learner_1", "Dana Reyes", "ICU Nurse"); err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}

	seed := []struct {
		topic   string
		correct bool
	}{
		{"sepsis management", true}, {"sepsis management", true},
		{"ventilator weaning", false}, {"ventilator weaning", false}, {"ventilator weaning", true},
	}
	for _, s := range seed {
		if err := m.RecordAttempt("learner_1", attempt(nil, s.topic, s.correct)); err != nil {
			t.Fatalf("RecordAttempt() error: %v", err)
		}
	}

	strengths := m.GetTopicStrengths("learner_1")
	if len(strengths) != 1 {
		t.Fatalf("GetTopicStrengths() returned %d, want 1", len(strengths))
	}
	if strengths[0].Topic != "Sepsis Management" {
		t.Errorf("strength topic = %q, want title-cased %q", strengths[0].Topic, "Sepsis Management")
	}

	weaknesses := m.GetTopicWeaknesses("learner_1")
	if len(weaknesses) != 1 {
		t.Fatalf("GetTopicWeaknesses() returned %d, want 1", len(weaknesses))
	}
	if weaknesses[0].Topic != "Ventilator Weaning" || weaknesses[0].Correct != 1 {
		t.Errorf("weakness = %+v, want Ventilator Weaning with 1 correct", weaknesses[0])
	}
}

func TestExamHistoryOrderAndLimit(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.CreateProfile("learner_1", "Dana Reyes", "ICU Nurse"); err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		rec := models.ExamRecord{
			ExamID:      "exam_" + string(rune('a'+i)),
			Mode:        "practice",
			Score:       float64(60 + i*10),
			CompletedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := m.RecordExamCompletion("learner_1", rec); err != nil {
			t.Fatalf("RecordExamCompletion() error: %v", err)
		}
	}

	history := m.GetExamHistory("learner_1", 2)
	if len(history) != 2 {
		t.Fatalf("GetExamHistory(limit=2) returned %d, want 2", len(history))
	}
	if history[0].ExamID != "exam_d" || history[1].ExamID != "exam_c" {
		t.Errorf("history order = [%s, %s], want newest first [exam_d, exam_c]", history[0].ExamID, history[1].ExamID)
	}
}

func TestGetRadarChartData(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.CreateProfile("learner_1", "Dana Reyes", "ICU Nurse"); err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}

	for _, correct := range []bool{true, true, false} {
		if err := m.RecordAttempt("learner_1", attempt([]string{"skill_vent_setup"}, "Ventilation", correct)); err != nil {
			t.Fatalf("RecordAttempt() error: %v", err)
		}
	}

	chart := m.GetRadarChartData("learner_1", []string{"skill_vent_setup", "skill_sepsis_recognition"})

	wantLabels := []string{"Vent Setup", "Sepsis Recognition"}
	for i, want := range wantLabels {
		if chart.Labels[i] != want {
			t.Errorf("Labels[%d] = %q, want %q", i, chart.Labels[i], want)
		}
	}
	if chart.Data[0] != 66.7 {
		t.Errorf("Data[0] = %v, want 66.7", chart.Data[0])
	}
	// Untracked skills chart as zero to keep the axis set stable.
	if chart.Data[1] != 0 {
		t.Errorf("Data[1] = %v, want 0", chart.Data[1])
	}
}

func TestGetAllPerformanceData(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.CreateProfile("learner_1", "Dana Reyes", "ICU Nurse"); err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}

	for _, correct := range []bool{true, false, true, true} {
		if err := m.RecordAttempt("learner_1", attempt([]string{"skill_vent_setup"}, "Ventilation", correct)); err != nil {
			t.Fatalf("RecordAttempt() error: %v", err)
		}
	}

	summary, err := m.GetAllPerformanceData("learner_1")
	if err != nil {
		t.Fatalf("GetAllPerformanceData() error: %v", err)
	}

	if summary.TotalQuestions != 4 || summary.CorrectQuestions != 3 {
		t.Errorf("totals = %d/%d, want 3/4", summary.CorrectQuestions, summary.TotalQuestions)
	}
	if summary.OverallAccuracy != 75.0 {
		t.Errorf("OverallAccuracy = %v, want 75.0", summary.OverallAccuracy)
	}
	if summary.SkillsPracticed != 1 || summary.TopicsPracticed != 1 {
		t.Errorf("practiced = %d skills / %d topics, want 1/1", summary.SkillsPracticed, summary.TopicsPracticed)
	}

	if _, err := m.GetAllPerformanceData("ghost"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetAllPerformanceData(unknown) error = %v, want ErrNotFound", err)
	}
}
