// Package profile tracks learner performance: per-question attempt
// history, per-skill and per-topic aggregates, proficiency levels, and
// completed exam records.
package profile

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/clinprep/backend/internal/models"
)

// Store persists learner profiles as whole JSON documents, one row per
// learner. Documents are loaded in full at startup and rewritten in full
// on every mutation.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// LoadAll reads every profile document. Rows that fail to decode are
// logged and skipped so one corrupt document cannot block startup.
func (s *Store) LoadAll() (map[string]*models.LearnerProfile, error) {
	rows, err := s.db.Query(`SELECT learner_id, doc FROM learner_profiles`)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	defer rows.Close()

	profiles := make(map[string]*models.LearnerProfile)
	for rows.Next() {
		var learnerID string
		var doc []byte
		if err := rows.Scan(&learnerID, &doc); err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}

		var p models.LearnerProfile
		if err := json.Unmarshal(doc, &p); err != nil {
			log.Printf("WARN: [profile] skipping corrupt profile %s: %v", learnerID, err)
			continue
		}
		if p.SkillPerformance == nil {
			p.SkillPerformance = make(map[string]*models.SkillPerformance)
		}
		if p.TopicPerformance == nil {
			p.TopicPerformance = make(map[string]*models.TopicPerformance)
		}
		profiles[p.LearnerID] = &p
	}
	return profiles, rows.Err()
}

// Save writes the full profile document, inserting or replacing the row.
func (s *Store) Save(p *models.LearnerProfile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.LearnerID, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO learner_profiles (learner_id, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (learner_id) DO UPDATE SET doc = $2, updated_at = NOW()
	`, p.LearnerID, doc)
	if err != nil {
		return fmt.Errorf("save profile %s: %w", p.LearnerID, err)
	}
	return nil
}
