package models

// WeakSkill is a practiced skill below the mastery threshold, with how
// far it sits from the target.
type WeakSkill struct {
	SkillID           string  `json:"skill_id"`
	SkillName         string  `json:"skill_name"`
	Category          string  `json:"category"`
	Accuracy          float64 `json:"accuracy"`
	Attempts          int     `json:"attempts"`
	ImprovementNeeded float64 `json:"improvement_needed"`
}

// WeakTopic is a practiced topic below the mastery threshold.
type WeakTopic struct {
	Topic             string  `json:"topic"`
	Accuracy          float64 `json:"accuracy"`
	Attempts          int     `json:"attempts"`
	Correct           int     `json:"correct"`
	ImprovementNeeded float64 `json:"improvement_needed"`
	Priority          string  `json:"priority"`
}

// StrongTopic is a practiced topic at or above the mastery threshold.
type StrongTopic struct {
	Topic    string  `json:"topic"`
	Accuracy float64 `json:"accuracy"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
}

// StudyRecommendation is one suggested focus area for upcoming practice.
// Type is "topic" or "skill" depending on where the gap was observed.
type StudyRecommendation struct {
	SkillName            string   `json:"skill_name"`
	RecommendedTopics    []string `json:"recommended_topics"`
	CurrentAccuracy      string   `json:"current_accuracy"`
	TargetAccuracy       string   `json:"target_accuracy"`
	RecommendedQuestions int      `json:"recommended_questions"`
	Priority             string   `json:"priority"`
	Type                 string   `json:"type"`
}

// TopicFocus sizes one topic's share of a focused exam.
type TopicFocus struct {
	NumQuestions    int    `json:"num_questions"`
	CurrentAccuracy string `json:"current_accuracy"`
}

// SkillFocus sizes one skill's share of a focused exam.
type SkillFocus struct {
	SkillName       string `json:"skill_name"`
	NumQuestions    int    `json:"num_questions"`
	CurrentAccuracy string `json:"current_accuracy"`
}

// FocusedExamPlan describes a remediation exam built from weak areas.
// With no weak areas the plan falls back to a comprehensive review with
// empty distributions.
type FocusedExamPlan struct {
	Focus             string                `json:"focus"`
	Message           string                `json:"message"`
	SkillDistribution map[string]SkillFocus `json:"skill_distribution"`
	TopicDistribution map[string]TopicFocus `json:"topic_distribution"`
	RecommendedTopics []string              `json:"recommended_topics,omitempty"`
}

// MilestoneStatus reports the learner's position on the milestone ladder.
type MilestoneStatus struct {
	Current     string `json:"current"`
	Next        string `json:"next"`
	Progress    string `json:"progress"`
	Description string `json:"description"`
}

// ComprehensiveRecommendations bundles every recommendation surface into
// one dashboard payload. HasData is false for learners with no profile
// or no answered questions yet.
type ComprehensiveRecommendations struct {
	HasData         bool                  `json:"has_data"`
	Message         string                `json:"message,omitempty"`
	OverallAccuracy float64               `json:"overall_accuracy,omitempty"`
	TotalQuestions  int                   `json:"total_questions,omitempty"`
	ExamsCompleted  int                   `json:"exams_completed,omitempty"`
	TopicsPracticed int                   `json:"topics_practiced,omitempty"`
	Milestone       *MilestoneStatus      `json:"milestone,omitempty"`
	WeakTopics      []WeakTopic           `json:"weak_topics,omitempty"`
	StrongTopics    []StrongTopic         `json:"strong_topics,omitempty"`
	WeakSkills      []WeakSkill           `json:"weak_skills,omitempty"`
	Recommendations []StudyRecommendation `json:"recommendations,omitempty"`
	FocusedExam     *FocusedExamPlan      `json:"focused_exam,omitempty"`
	RecentExams     []ExamRecord          `json:"recent_exams,omitempty"`
}
