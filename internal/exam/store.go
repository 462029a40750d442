// Package exam manages exam sessions: creation, question slots, answer
// scoring, adaptive difficulty, and completion. Answered questions and
// completed exams feed the learner profile.
package exam

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/clinprep/backend/internal/models"
)

// Store persists exam sessions as whole JSON documents, one row per
// session, loaded in full at startup and rewritten in full per mutation.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// LoadAll reads every session document. Rows that fail to decode are
// logged and skipped.
func (s *Store) LoadAll() (map[string]*models.ExamSession, error) {
	rows, err := s.db.Query(`SELECT session_id, doc FROM exam_sessions`)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()

	sessions := make(map[string]*models.ExamSession)
	for rows.Next() {
		var sessionID string
		var doc []byte
		if err := rows.Scan(&sessionID, &doc); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}

		var sess models.ExamSession
		if err := json.Unmarshal(doc, &sess); err != nil {
			log.Printf("WARN: [exam] skipping corrupt session %s: %v", sessionID, err)
			continue
		}
		sessions[sess.SessionID] = &sess
	}
	return sessions, rows.Err()
}

// Save writes the full session document, inserting or replacing the row.
func (s *Store) Save(sess *models.ExamSession) error {
	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.SessionID, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO exam_sessions (session_id, learner_id, doc, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (session_id) DO UPDATE SET doc = $3, updated_at = NOW()
	`, sess.SessionID, sess.LearnerID, doc)
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.SessionID, err)
	}
	return nil
}
