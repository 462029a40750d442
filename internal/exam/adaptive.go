package exam

import "github.com/clinprep/backend/internal/models"

// NextDifficulty picks the difficulty for the next question from recent
// answered performance. Until three questions have been answered the
// session stays at intermediate. After that the last three answered
// questions decide: two or more correct escalates one tier from the most
// recently answered question's tier, otherwise the tier drops by one.
// Both directions saturate at the ends of the scale.
func NextDifficulty(session *models.ExamSession) models.Difficulty {
	var answered []*models.ExamQuestion
	for i := range session.Questions {
		if session.Questions[i].Answered() {
			answered = append(answered, &session.Questions[i])
		}
	}
	if len(answered) < 3 {
		return models.DifficultyIntermediate
	}

	recent := answered[len(answered)-3:]
	correct := 0
	for _, q := range recent {
		if q.IsCorrect != nil && *q.IsCorrect {
			correct++
		}
	}

	current := recent[len(recent)-1].Difficulty
	if correct >= 2 {
		return escalate(current)
	}
	return deescalate(current)
}

func escalate(d models.Difficulty) models.Difficulty {
	switch d {
	case models.DifficultyBeginner:
		return models.DifficultyIntermediate
	default:
		return models.DifficultyAdvanced
	}
}

func deescalate(d models.Difficulty) models.Difficulty {
	switch d {
	case models.DifficultyAdvanced:
		return models.DifficultyIntermediate
	default:
		return models.DifficultyBeginner
	}
}
