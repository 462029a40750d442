package profile

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/clinprep/backend/internal/models"
)

// masteryThreshold splits skills and topics into strengths and gaps.
const masteryThreshold = 0.7

// Storage is the persistence contract the manager writes through.
type Storage interface {
	LoadAll() (map[string]*models.LearnerProfile, error)
	Save(*models.LearnerProfile) error
}

// Manager holds every learner profile in memory and writes each one back
// through the store after every mutation. All access goes through the
// manager's lock.
type Manager struct {
	store    Storage
	mu       sync.Mutex
	profiles map[string]*models.LearnerProfile
}

// NewManager loads all persisted profiles and returns a ready manager.
func NewManager(store Storage) (*Manager, error) {
	profiles, err := store.LoadAll()
	if err != nil {
		return nil, err
	}

	return &Manager{
		store:    store,
		profiles: profiles,
	}, nil
}


// CreateProfile creates a profile for the learner, or returns the
// existing one unchanged.
func (m *Manager) CreateProfile(learnerID, name, role string) (*models.LearnerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.profiles[learnerID]; ok {
		return cloneProfile(existing), nil
	}

	now := time.Now().UTC()
	p := &models.LearnerProfile{
		LearnerID:        learnerID,
		Name:             name,
		Role:             role,
		Attempts:         []models.QuestionAttempt{},
		SkillPerformance: make(map[string]*models.SkillPerformance),
		TopicPerformance: make(map[string]*models.TopicPerformance),
		ExamHistory:      []models.ExamRecord{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m.profiles[learnerID] = p

	if err := m.store.Save(p); err != nil {
		return nil, err
	}
	return cloneProfile(p), nil
}

// GetProfile returns a snapshot of the learner's profile.
func (m *Manager) GetProfile(learnerID string) (*models.LearnerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[learnerID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", learnerID, models.ErrNotFound)
	}
	return cloneProfile(p), nil
}

// RecordAttempt appends the attempt to the learner's history and updates
// the per-skill and per-topic aggregates. Attempts with no skill tags are
// recorded under a synthetic topic-derived skill id so they still count
// toward an aggregate. The topic key is normalized to lowercase with
// surrounding whitespace removed.
func (m *Manager) RecordAttempt(learnerID string, attempt models.QuestionAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[learnerID]
	if !ok {
		return fmt.Errorf("profile %s: %w", learnerID, models.ErrNotFound)
	}

	if attempt.Timestamp.IsZero() {
		attempt.Timestamp = time.Now().UTC()
	}
	if len(attempt.SkillIDs) == 0 {
		attempt.SkillIDs = []string{topicFallbackSkill(attempt.Topic)}
	}
	p.Attempts = append(p.Attempts, attempt)

	for _, skillID := range attempt.SkillIDs {
		perf, ok := p.SkillPerformance[skillID]
		if !ok {
			perf = &models.SkillPerformance{
				SkillID:          skillID,
				LastAttempted:    attempt.Timestamp,
				ProficiencyLevel: models.ProficiencyNovice,
			}
			p.SkillPerformance[skillID] = perf
		}

		perf.TotalAttempts++
		if attempt.Correct {
			perf.CorrectAttempts++
		}
		perf.Accuracy = float64(perf.CorrectAttempts) / float64(perf.TotalAttempts)
		perf.LastAttempted = attempt.Timestamp
		perf.ProficiencyLevel = CalculateProficiency(perf.Accuracy, perf.TotalAttempts)
	}

	topic := strings.ToLower(strings.TrimSpace(attempt.Topic))
	if topic != "" {
		perf, ok := p.TopicPerformance[topic]
		if !ok {
			perf = &models.TopicPerformance{
				Topic:         topic,
				LastAttempted: attempt.Timestamp,
			}
			p.TopicPerformance[topic] = perf
		}

		perf.TotalAttempts++
		if attempt.Correct {
			perf.CorrectAttempts++
		}
		perf.Accuracy = float64(perf.CorrectAttempts) / float64(perf.TotalAttempts)
		perf.LastAttempted = attempt.Timestamp
	}

	p.UpdatedAt = time.Now().UTC()
	return m.store.Save(p)
}

// RecordExamCompletion appends a completed exam to the learner's history.
func (m *Manager) RecordExamCompletion(learnerID string, record models.ExamRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[learnerID]
	if !ok {
		return fmt.Errorf("profile %s: %w", learnerID, models.ErrNotFound)
	}

	p.ExamHistory = append(p.ExamHistory, record)
	p.UpdatedAt = time.Now().UTC()
	return m.store.Save(p)
}

// GetSkillGaps returns practiced skills below the mastery threshold,
// weakest first. Unknown learners get an empty list.
func (m *Manager) GetSkillGaps(learnerID string) []models.SkillGap {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.skillGapsLocked(learnerID)
}

func (m *Manager) skillGapsLocked(learnerID string) []models.SkillGap {
	p, ok := m.profiles[learnerID]
	if !ok {
		return []models.SkillGap{}
	}

	gaps := []models.SkillGap{}
	for skillID, perf := range p.SkillPerformance {
		if perf.Accuracy < masteryThreshold && perf.TotalAttempts >= 1 {
			gaps = append(gaps, models.SkillGap{
				SkillID:     skillID,
				Accuracy:    perf.Accuracy,
				Attempts:    perf.TotalAttempts,
				Proficiency: perf.ProficiencyLevel,
			})
		}
	}

	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Accuracy != gaps[j].Accuracy {
			return gaps[i].Accuracy < gaps[j].Accuracy
		}
		return gaps[i].SkillID < gaps[j].SkillID
	})
	return gaps
}

// GetStrengths returns practiced skills at or above the mastery
// threshold, strongest first.
func (m *Manager) GetStrengths(learnerID string) []models.SkillStrength {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.strengthsLocked(learnerID)
}

func (m *Manager) strengthsLocked(learnerID string) []models.SkillStrength {
	p, ok := m.profiles[learnerID]
	if !ok {
		return []models.SkillStrength{}
	}

	strengths := []models.SkillStrength{}
	for skillID, perf := range p.SkillPerformance {
		if perf.Accuracy >= masteryThreshold && perf.TotalAttempts >= 1 {
			strengths = append(strengths, models.SkillStrength{
				SkillID:     skillID,
				Accuracy:    perf.Accuracy,
				Attempts:    perf.TotalAttempts,
				Proficiency: perf.ProficiencyLevel,
			})
		}
	}

	sort.Slice(strengths, func(i, j int) bool {
		if strengths[i].Accuracy != strengths[j].Accuracy {
			return strengths[i].Accuracy > strengths[j].Accuracy
		}
		return strengths[i].SkillID < strengths[j].SkillID
	})
	return strengths
}

// GetTopicStrengths returns topics at or above the mastery threshold,
// strongest first, with title-cased topic names.
func (m *Manager) GetTopicStrengths(learnerID string) []models.TopicStanding {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.topicStandingsLocked(learnerID, true)
}

// GetTopicWeaknesses returns topics below the mastery threshold, weakest
// first, with title-cased topic names.
func (m *Manager) GetTopicWeaknesses(learnerID string) []models.TopicStanding {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.topicStandingsLocked(learnerID, false)
}

func (m *Manager) topicStandingsLocked(learnerID string, strong bool) []models.TopicStanding {
	p, ok := m.profiles[learnerID]
	if !ok {
		return []models.TopicStanding{}
	}

	standings := []models.TopicStanding{}
	for topic, perf := range p.TopicPerformance {
		if perf.TotalAttempts < 1 {
			continue
		}
		if strong != (perf.Accuracy >= masteryThreshold) {
			continue
		}
		standings = append(standings, models.TopicStanding{
			Topic:    titleCase(topic),
			Accuracy: perf.Accuracy,
			Attempts: perf.TotalAttempts,
			Correct:  perf.CorrectAttempts,
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Accuracy != standings[j].Accuracy {
			if strong {
				return standings[i].Accuracy > standings[j].Accuracy
			}
			return standings[i].Accuracy < standings[j].Accuracy
		}
		return standings[i].Topic < standings[j].Topic
	})
	return standings
}

// GetExamHistory returns the learner's most recent exams, newest first.
func (m *Manager) GetExamHistory(learnerID string, limit int) []models.ExamRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.examHistoryLocked(learnerID, limit)
}

func (m *Manager) examHistoryLocked(learnerID string, limit int) []models.ExamRecord {
	p, ok := m.profiles[learnerID]
	if !ok {
		return []models.ExamRecord{}
	}

	exams := append([]models.ExamRecord{}, p.ExamHistory...)
	sort.Slice(exams, func(i, j int) bool {
		return exams[i].CompletedAt.After(exams[j].CompletedAt)
	})
	if limit > 0 && len(exams) > limit {
		exams = exams[:limit]
	}
	return exams
}

// GetRadarChartData returns accuracy percentages for the given skills in
// order. Skills never practiced come back as zero so the chart keeps a
// stable axis set.
func (m *Manager) GetRadarChartData(learnerID string, skillIDs []string) models.RadarChartData {
	m.mu.Lock()
	defer m.mu.Unlock()

	chart := models.RadarChartData{Labels: []string{}, Data: []float64{}}
	p, ok := m.profiles[learnerID]
	if !ok {
		return chart
	}

	for _, skillID := range skillIDs {
		chart.Labels = append(chart.Labels, skillLabel(skillID))
		if perf, ok := p.SkillPerformance[skillID]; ok {
			chart.Data = append(chart.Data, round1(perf.Accuracy*100))
		} else {
			chart.Data = append(chart.Data, 0)
		}
	}
	return chart
}

// GetAllPerformanceData assembles the full dashboard summary.
func (m *Manager) GetAllPerformanceData(learnerID string) (*models.PerformanceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[learnerID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", learnerID, models.ErrNotFound)
	}

	correct := 0
	for _, a := range p.Attempts {
		if a.Correct {
			correct++
		}
	}
	accuracy := 0.0
	if len(p.Attempts) > 0 {
		accuracy = round1(float64(correct) / float64(len(p.Attempts)) * 100)
	}

	snapshot := cloneProfile(p)
	return &models.PerformanceSummary{
		TotalQuestions:   len(p.Attempts),
		CorrectQuestions: correct,
		OverallAccuracy:  accuracy,
		SkillsPracticed:  len(p.SkillPerformance),
		TopicsPracticed:  len(p.TopicPerformance),
		ExamsCompleted:   len(p.ExamHistory),
		SkillPerformance: snapshot.SkillPerformance,
		TopicPerformance: snapshot.TopicPerformance,
		TopicStrengths:   m.topicStandingsLocked(learnerID, true),
		TopicWeaknesses:  m.topicStandingsLocked(learnerID, false),
		SkillStrengths:   m.strengthsLocked(learnerID),
		SkillGaps:        m.skillGapsLocked(learnerID),
		RecentExams:      m.examHistoryLocked(learnerID, 5),
	}, nil
}

// topicFallbackSkill builds a synthetic skill id for untagged attempts,
// e.g. "Sepsis Management" becomes "topic_sepsis_management".
func topicFallbackSkill(topic string) string {
	slug := strings.ReplaceAll(strings.ToLower(topic), " ", "_")
	return "topic_" + slug
}

// skillLabel turns a skill id into a chart label, e.g.
// "skill_vent_setup" becomes "Vent Setup".
func skillLabel(skillID string) string {
	label := strings.TrimPrefix(skillID, "skill_")
	label = strings.ReplaceAll(label, "_", " ")
	return titleCase(label)
}

func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) && !prevLetter {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func cloneProfile(p *models.LearnerProfile) *models.LearnerProfile {
	c := *p
	c.Attempts = append([]models.QuestionAttempt{}, p.Attempts...)
	c.ExamHistory = append([]models.ExamRecord{}, p.ExamHistory...)
	c.SkillPerformance = make(map[string]*models.SkillPerformance, len(p.SkillPerformance))
	for k, v := range p.SkillPerformance {
		sp := *v
		c.SkillPerformance[k] = &sp
	}
	c.TopicPerformance = make(map[string]*models.TopicPerformance, len(p.TopicPerformance))
	for k, v := range p.TopicPerformance {
		tp := *v
		c.TopicPerformance[k] = &tp
	}
	return &c
}
