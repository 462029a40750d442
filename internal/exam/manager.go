package exam

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clinprep/backend/internal/models"
)

// Storage is the persistence contract the manager writes through.
type Storage interface {
	LoadAll() (map[string]*models.ExamSession, error)
	Save(*models.ExamSession) error
}

// ProfileRecorder receives answered questions and completed exams.
// Recording is best effort: failures are logged, never surfaced to the
// learner mid-exam.
type ProfileRecorder interface {
	RecordAttempt(learnerID string, attempt models.QuestionAttempt) error
	RecordExamCompletion(learnerID string, record models.ExamRecord) error
}

// Manager holds every exam session in memory and writes each one back
// through the store after every mutation.
type Manager struct {
	store    Storage
	profiles ProfileRecorder
	mu       sync.Mutex
	sessions map[string]*models.ExamSession
}

// NewManager loads all persisted sessions and returns a ready manager.
func NewManager(store Storage, profiles ProfileRecorder) (*Manager, error) {
	sessions, err := store.LoadAll()
	if err != nil {
		return nil, err
	}

	return &Manager{
		store:    store,
		profiles: profiles,
		sessions: sessions,
	}, nil
}

// CreateSession starts a new exam session. The session id is derived
// from the learner id and the creation timestamp.
func (m *Manager) CreateSession(req models.CreateSessionRequest) (*models.ExamSession, error) {
	if !models.ValidExamModes[req.Mode] {
		return nil, fmt.Errorf("invalid exam mode %q", req.Mode)
	}
	if req.TotalQuestions < 1 {
		return nil, fmt.Errorf("total_questions must be positive, got %d", req.TotalQuestions)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	sess := &models.ExamSession{
		SessionID:        fmt.Sprintf("exam_%s_%s", req.LearnerID, now.Format("20060102_150405")),
		LearnerID:        req.LearnerID,
		Mode:             req.Mode,
		TotalQuestions:   req.TotalQuestions,
		TimeLimitMinutes: req.TimeLimitMinutes,
		Questions:        []models.ExamQuestion{},
		StartTime:        now,
		Status:           models.SessionInProgress,
	}
	m.sessions[sess.SessionID] = sess

	if err := m.store.Save(sess); err != nil {
		return nil, err
	}
	return cloneSession(sess), nil
}

// GetSession returns a snapshot of one session.
func (m *Manager) GetSession(sessionID string) (*models.ExamSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	return cloneSession(sess), nil
}

// GetLearnerSessions returns every session for a learner, newest first.
func (m *Manager) GetLearnerSessions(learnerID string) []*models.ExamSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sessions []*models.ExamSession
	for _, sess := range m.sessions {
		if sess.LearnerID == learnerID {
			sessions = append(sessions, cloneSession(sess))
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	return sessions
}

// AddQuestion appends a question slot to the session. Questions with no
// skill tags get a topic-derived fallback skill id so profile aggregates
// always have a key to attach to.
func (m *Manager) AddQuestion(sessionID string, req models.AddQuestionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	if sess.Status != models.SessionInProgress {
		return fmt.Errorf("session %s: %w", sessionID, models.ErrSessionNotActive)
	}

	skillIDs := req.SkillIDs
	if len(skillIDs) == 0 {
		skillIDs = []string{topicFallbackSkill(req.Topic)}
	}

	sess.Questions = append(sess.Questions, models.ExamQuestion{
		QuestionID:    req.QuestionID,
		Topic:         req.Topic,
		Difficulty:    req.Difficulty,
		QuestionType:  req.QuestionType,
		SkillIDs:      skillIDs,
		Content:       req.Content,
		Rationale:     req.Rationale,
		CorrectAnswer: req.CorrectAnswer,
	})
	return m.store.Save(sess)
}

// SubmitAnswer scores one answer with an exact string match against the
// question's answer key, records the attempt to the learner profile, and
// returns immediate feedback. A question can only be answered once, and
// only while the session is in progress.
func (m *Manager) SubmitAnswer(sessionID string, req models.SubmitAnswerRequest) (*models.SubmitAnswerResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	if sess.Status != models.SessionInProgress {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrSessionNotActive)
	}
	if req.QuestionIndex < 0 || req.QuestionIndex >= len(sess.Questions) {
		return nil, fmt.Errorf("index %d in session %s: %w", req.QuestionIndex, sessionID, models.ErrOutOfRange)
	}

	q := &sess.Questions[req.QuestionIndex]
	if q.Answered() {
		return nil, fmt.Errorf("question %d in session %s: %w", req.QuestionIndex, sessionID, models.ErrAlreadyAnswered)
	}

	now := time.Now().UTC()
	isCorrect := req.Answer == q.CorrectAnswer
	q.UserAnswer = &req.Answer
	q.IsCorrect = &isCorrect
	q.TimeSpentSeconds = &req.TimeSpentSeconds
	q.Timestamp = &now

	attempt := models.QuestionAttempt{
		QuestionID:       q.QuestionID,
		SkillIDs:         q.SkillIDs,
		Topic:            q.Topic,
		Difficulty:       string(q.Difficulty),
		QuestionType:     string(q.QuestionType),
		Correct:          isCorrect,
		Timestamp:        now,
		TimeSpentSeconds: &req.TimeSpentSeconds,
		ExamSessionID:    sessionID,
	}
	if err := m.profiles.RecordAttempt(sess.LearnerID, attempt); err != nil {
		log.Printf("WARN: [exam] recording attempt for learner %s: %v", sess.LearnerID, err)
	}

	if err := m.store.Save(sess); err != nil {
		return nil, err
	}

	return &models.SubmitAnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: q.CorrectAnswer,
		Rationale:     questionRationale(q),
	}, nil
}

// CompleteSession closes the session, computes the final score, and
// records the exam to the learner's history. Completing an already
// terminal session is rejected.
func (m *Manager) CompleteSession(sessionID string) (*models.CompleteSessionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	if sess.Status != models.SessionInProgress {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrSessionNotActive)
	}

	now := time.Now().UTC()
	sess.EndTime = &now
	sess.Status = models.SessionCompleted

	total := len(sess.Questions)
	correct := 0
	for i := range sess.Questions {
		if sess.Questions[i].IsCorrect != nil && *sess.Questions[i].IsCorrect {
			correct++
		}
	}
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}
	sess.Score = &score

	if err := m.store.Save(sess); err != nil {
		return nil, err
	}

	durationMinutes := now.Sub(sess.StartTime).Minutes()

	record := models.ExamRecord{
		ExamID:          sessionID,
		Mode:            string(sess.Mode),
		TotalQuestions:  total,
		CorrectAnswers:  correct,
		Score:           score,
		DurationMinutes: round2(durationMinutes),
		CompletedAt:     now,
		TopicsTested:    sessionTopics(sess),
		SkillsTested:    sessionSkills(sess),
	}
	if err := m.profiles.RecordExamCompletion(sess.LearnerID, record); err != nil {
		log.Printf("WARN: [exam] recording exam completion for learner %s: %v", sess.LearnerID, err)
	}

	return &models.CompleteSessionResult{
		Score:           score,
		Correct:         correct,
		Total:           total,
		DurationMinutes: durationMinutes,
	}, nil
}

// AbandonSession marks an in-progress session as abandoned. Abandoned
// sessions do not produce an exam record.
func (m *Manager) AbandonSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	if sess.Status != models.SessionInProgress {
		return fmt.Errorf("session %s: %w", sessionID, models.ErrSessionNotActive)
	}

	now := time.Now().UTC()
	sess.EndTime = &now
	sess.Status = models.SessionAbandoned
	return m.store.Save(sess)
}

// GetSessionSummary tallies the session by difficulty, skill, and topic.
// The difficulty map always carries all three tiers, even when empty.
func (m *Manager) GetSessionSummary(sessionID string) (*models.SessionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}

	difficultyPerf := map[string]models.TallyBucket{
		string(models.DifficultyBeginner):     {},
		string(models.DifficultyIntermediate): {},
		string(models.DifficultyAdvanced):     {},
	}
	skillPerf := map[string]models.TallyBucket{}
	topicPerf := map[string]models.TallyBucket{}

	for i := range sess.Questions {
		q := &sess.Questions[i]
		correct := q.IsCorrect != nil && *q.IsCorrect

		if bucket, ok := difficultyPerf[string(q.Difficulty)]; ok {
			bucket.Total++
			if correct {
				bucket.Correct++
			}
			difficultyPerf[string(q.Difficulty)] = bucket
		}

		skillIDs := q.SkillIDs
		if len(skillIDs) == 0 {
			skillIDs = []string{topicFallbackSkill(q.Topic)}
		}
		for _, skillID := range skillIDs {
			bucket := skillPerf[skillID]
			bucket.Total++
			if correct {
				bucket.Correct++
			}
			skillPerf[skillID] = bucket
		}

		bucket := topicPerf[q.Topic]
		bucket.Total++
		if correct {
			bucket.Correct++
		}
		topicPerf[q.Topic] = bucket
	}

	return &models.SessionSummary{
		SessionID:             sessionID,
		Mode:                  sess.Mode,
		Score:                 sess.Score,
		DifficultyPerformance: difficultyPerf,
		SkillPerformance:      skillPerf,
		TopicPerformance:      topicPerf,
	}, nil
}

// GetAdaptiveNextDifficulty returns the difficulty the next question
// should be generated at. Unknown sessions fall back to intermediate.
func (m *Manager) GetAdaptiveNextDifficulty(sessionID string) models.Difficulty {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return models.DifficultyIntermediate
	}
	return NextDifficulty(sess)
}

// topicFallbackSkill builds a synthetic skill id for untagged questions,
// e.g. "Sepsis Management" becomes "topic_sepsis_management".
func topicFallbackSkill(topic string) string {
	slug := strings.ReplaceAll(strings.ToLower(topic), " ", "_")
	return "topic_" + slug
}

func questionRationale(q *models.ExamQuestion) string {
	if q.Rationale != "" {
		return q.Rationale
	}
	if q.Content != nil {
		return q.Content.Rationale()
	}
	return ""
}

func sessionTopics(sess *models.ExamSession) []string {
	seen := make(map[string]bool)
	var topics []string
	for i := range sess.Questions {
		topic := sess.Questions[i].Topic
		if !seen[topic] {
			seen[topic] = true
			topics = append(topics, topic)
		}
	}
	return topics
}

func sessionSkills(sess *models.ExamSession) []string {
	seen := make(map[string]bool)
	var skills []string
	for i := range sess.Questions {
		q := &sess.Questions[i]
		skillIDs := q.SkillIDs
		if len(skillIDs) == 0 {
			skillIDs = []string{topicFallbackSkill(q.Topic)}
		}
		for _, skillID := range skillIDs {
			if !seen[skillID] {
				seen[skillID] = true
				skills = append(skills, skillID)
			}
		}
	}
	return skills
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func cloneSession(sess *models.ExamSession) *models.ExamSession {
	c := *sess
	c.Questions = append([]models.ExamQuestion{}, sess.Questions...)
	return &c
}
