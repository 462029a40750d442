package profile

import "github.com/clinprep/backend/internal/models"

// CalculateProficiency maps a skill's running accuracy and attempt count
// to a proficiency level. Few attempts cap the level regardless of
// accuracy so one lucky answer cannot mark a skill as mastered.
func CalculateProficiency(accuracy float64, attempts int) models.ProficiencyLevel {
	switch {
	case attempts < 2:
		return models.ProficiencyNovice
	case attempts < 4:
		if accuracy >= 0.5 {
			return models.ProficiencyBeginner
		}
		return models.ProficiencyNovice
	case attempts < 8:
		switch {
		case accuracy >= 0.8:
			return models.ProficiencyAdvanced
		case accuracy >= 0.6:
			return models.ProficiencyIntermediate
		default:
			return models.ProficiencyBeginner
		}
	default:
		switch {
		case accuracy >= 0.85:
			return models.ProficiencyExpert
		case accuracy >= 0.75:
			return models.ProficiencyAdvanced
		case accuracy >= 0.6:
			return models.ProficiencyIntermediate
		default:
			return models.ProficiencyBeginner
		}
	}
}
