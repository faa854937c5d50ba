package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"daytrack/internal/model"
)

// RecordSittingSession appends one completed sit/stand cycle. The exercise
// list is stored as a JSON string column; order is preserved, blanks dropped.
func RecordSittingSession(db *sql.DB, date string, sitDurationMinutes int, exercises []string) (int64, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return 0, err
	}
	if sitDurationMinutes <= 0 {
		return 0, fmt.Errorf("sit duration must be > 0 minutes")
	}

	cleaned := make([]string, 0, len(exercises))
	for _, e := range exercises {
		if e = strings.TrimSpace(e); e != "" {
			cleaned = append(cleaned, e)
		}
	}
	encoded, err := json.Marshal(cleaned)
	if err != nil {
		return 0, fmt.Errorf("encode exercises: %w", err)
	}

	res, err := db.Exec(`
INSERT INTO sitting_sessions(date, sit_duration_minutes, exercises_completed, completed_at)
VALUES(?, ?, ?, ?)
`, date, sitDurationMinutes, string(encoded), time.Now().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert sitting session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve sitting session id: %w", err)
	}
	return id, nil
}

func ListSittingSessions(db *sql.DB, date string) ([]model.SittingSession, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`
SELECT id, date, sit_duration_minutes, exercises_completed, completed_at
FROM sitting_sessions
WHERE date = ?
ORDER BY completed_at ASC, id ASC
`, date)
	if err != nil {
		return nil, fmt.Errorf("list sitting sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]model.SittingSession, 0)
	for rows.Next() {
		var s model.SittingSession
		var exercisesRaw, completedRaw string
		if err := rows.Scan(&s.ID, &s.Date, &s.SitDurationMinutes, &exercisesRaw, &completedRaw); err != nil {
			return nil, fmt.Errorf("scan sitting session: %w", err)
		}
		if err := json.Unmarshal([]byte(exercisesRaw), &s.ExercisesCompleted); err != nil {
			return nil, fmt.Errorf("decode exercises for session %d: %w", s.ID, err)
		}
		completedAt, err := time.Parse(time.RFC3339, completedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at for session %d: %w", s.ID, err)
		}
		s.CompletedAt = completedAt
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sitting sessions: %w", err)
	}
	return sessions, nil
}
