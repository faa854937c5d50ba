package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"daytrack/internal/model"
)

// StartBoxingSession creates the date's boxing session. One session per date
// is enforced by a unique index; a second start surfaces a clear error.
func StartBoxingSession(db *sql.DB, date string, durationMinutes int) (int64, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return 0, err
	}
	if durationMinutes <= 0 {
		return 0, fmt.Errorf("duration must be > 0 minutes")
	}

	existing, err := GetBoxingSession(db, date)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("boxing session already exists for %s", date)
	}

	res, err := db.Exec(`
INSERT INTO boxing_sessions(date, duration_minutes)
VALUES(?, ?)
`, date, durationMinutes)
	if err != nil {
		return 0, fmt.Errorf("insert boxing session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve boxing session id: %w", err)
	}
	return id, nil
}

func CompleteBoxingSession(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("boxing session id must be > 0")
	}
	var date string
	err := db.QueryRow(`SELECT date FROM boxing_sessions WHERE id = ?`, id).Scan(&date)
	if err == sql.ErrNoRows {
		return fmt.Errorf("boxing session %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("lookup boxing session %d: %w", id, err)
	}

	if _, err := db.Exec(`UPDATE boxing_sessions SET completed_at = ? WHERE id = ?`, time.Now().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("complete boxing session %d: %w", id, err)
	}
	return UpdateStatsForDate(db, date, Today())
}

func GetBoxingSession(db *sql.DB, date string) (*model.BoxingSession, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return nil, err
	}
	var s model.BoxingSession
	var completedRaw sql.NullString
	err = db.QueryRow(`
SELECT id, date, duration_minutes, completed_at
FROM boxing_sessions
WHERE date = ?
`, date).Scan(&s.ID, &s.Date, &s.DurationMinutes, &completedRaw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get boxing session for %s: %w", date, err)
	}
	if completedRaw.Valid {
		t, err := time.Parse(time.RFC3339, completedRaw.String)
		if err != nil {
			return nil, fmt.Errorf("parse boxing completed_at: %w", err)
		}
		s.CompletedAt = &t
	}
	return &s, nil
}

// StartWeightSession creates a session and one exercise log per exercise of
// the session type. Each log's weight seeds from the most recent completed
// session for that exercise, falling back to the exercise's static default.
func StartWeightSession(db *sql.DB, date, sessionType string) (int64, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return 0, err
	}
	sessionType = strings.ToLower(strings.TrimSpace(sessionType))
	if sessionType != "a" && sessionType != "b" {
		return 0, fmt.Errorf("session type must be %q or %q", "a", "b")
	}

	exercises, err := ListExercises(db, sessionType)
	if err != nil {
		return 0, err
	}
	if len(exercises) == 0 {
		return 0, fmt.Errorf("no exercises defined for session type %q", sessionType)
	}

	seeds := make([]float64, len(exercises))
	for i, ex := range exercises {
		weight, err := LastWeightForExercise(db, ex.ID)
		if err != nil {
			return 0, err
		}
		if weight <= 0 {
			weight = ex.DefaultWeight
		}
		seeds[i] = weight
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin weight session tx: %w", err)
	}
	res, err := tx.Exec(`
INSERT INTO weight_sessions(date, session_type)
VALUES(?, ?)
`, date, sessionType)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert weight session: %w", err)
	}
	sessionID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("resolve weight session id: %w", err)
	}
	for i, ex := range exercises {
		if _, err := tx.Exec(`
INSERT INTO weight_exercise_logs(weight_session_id, exercise_id, weight, sets_target, sort_order)
VALUES(?, ?, ?, ?, ?)
`, sessionID, ex.ID, seeds[i], ex.SetsTarget, ex.SortOrder); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("seed exercise log for %q: %w", ex.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit weight session: %w", err)
	}
	return sessionID, nil
}

func UpdateExerciseLog(db *sql.DB, logID int64, weight float64, setsCompleted int) error {
	if logID <= 0 {
		return fmt.Errorf("exercise log id must be > 0")
	}
	if err := validateNonNegativeFloat("weight", weight); err != nil {
		return err
	}
	if err := validateNonNegativeInt("sets completed", setsCompleted); err != nil {
		return err
	}
	res, err := db.Exec(`
UPDATE weight_exercise_logs SET weight = ?, sets_completed = ? WHERE id = ?
`, weight, setsCompleted, logID)
	if err != nil {
		return fmt.Errorf("update exercise log %d: %w", logID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for exercise log %d: %w", logID, err)
	}
	if affected == 0 {
		return fmt.Errorf("exercise log %d not found", logID)
	}
	return nil
}

func CompleteWeightSession(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("weight session id must be > 0")
	}
	var date string
	err := db.QueryRow(`SELECT date FROM weight_sessions WHERE id = ?`, id).Scan(&date)
	if err == sql.ErrNoRows {
		return fmt.Errorf("weight session %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("lookup weight session %d: %w", id, err)
	}

	if _, err := db.Exec(`UPDATE weight_sessions SET completed_at = ? WHERE id = ?`, time.Now().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("complete weight session %d: %w", id, err)
	}
	return UpdateStatsForDate(db, date, Today())
}

func GetWeightSession(db *sql.DB, id int64) (*model.WeightSession, error) {
	if id <= 0 {
		return nil, fmt.Errorf("weight session id must be > 0")
	}
	var s model.WeightSession
	var completedRaw sql.NullString
	err := db.QueryRow(`
SELECT id, date, session_type, completed_at
FROM weight_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.Date, &s.SessionType, &completedRaw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weight session %d: %w", id, err)
	}
	if completedRaw.Valid {
		t, err := time.Parse(time.RFC3339, completedRaw.String)
		if err != nil {
			return nil, fmt.Errorf("parse weight session completed_at: %w", err)
		}
		s.CompletedAt = &t
	}

	rows, err := db.Query(`
SELECT l.id, l.weight_session_id, l.exercise_id, e.name, l.weight, l.sets_completed, l.sets_target, l.sort_order
FROM weight_exercise_logs l
JOIN exercises e ON e.id = l.exercise_id
WHERE l.weight_session_id = ?
ORDER BY l.sort_order ASC
`, id)
	if err != nil {
		return nil, fmt.Errorf("list exercise logs for session %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l model.WeightExerciseLog
		if err := rows.Scan(&l.ID, &l.WeightSessionID, &l.ExerciseID, &l.ExerciseName, &l.Weight, &l.SetsCompleted, &l.SetsTarget, &l.SortOrder); err != nil {
			return nil, fmt.Errorf("scan exercise log: %w", err)
		}
		s.Exercises = append(s.Exercises, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise logs: %w", err)
	}
	return &s, nil
}

// WeightSessionsForDate returns the date's sessions, most recent first.
func WeightSessionsForDate(db *sql.DB, date string) ([]model.WeightSession, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return nil, err
	}
	ids, err := listIDs(db, `SELECT id FROM weight_sessions WHERE date = ? ORDER BY id DESC`, date)
	if err != nil {
		return nil, err
	}
	sessions := make([]model.WeightSession, 0, len(ids))
	for _, id := range ids {
		s, err := GetWeightSession(db, id)
		if err != nil {
			return nil, err
		}
		if s != nil {
			sessions = append(sessions, *s)
		}
	}
	return sessions, nil
}

// LastWeightForExercise returns the weight used in the most recent completed
// session containing the exercise, or 0 when there is none.
func LastWeightForExercise(db *sql.DB, exerciseID int64) (float64, error) {
	if exerciseID <= 0 {
		return 0, fmt.Errorf("exercise id must be > 0")
	}
	var weight float64
	err := db.QueryRow(`
SELECT l.weight
FROM weight_exercise_logs l
JOIN weight_sessions s ON s.id = l.weight_session_id
WHERE l.exercise_id = ? AND s.completed_at IS NOT NULL
ORDER BY s.completed_at DESC
LIMIT 1
`, exerciseID).Scan(&weight)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("last weight for exercise %d: %w", exerciseID, err)
	}
	return weight, nil
}

// LastWeightSession returns the most recent completed session of a type, used
// for "last session" displays when alternating A/B days.
func LastWeightSession(db *sql.DB, sessionType string) (*model.WeightSession, error) {
	sessionType = strings.ToLower(strings.TrimSpace(sessionType))
	if sessionType != "a" && sessionType != "b" {
		return nil, fmt.Errorf("session type must be %q or %q", "a", "b")
	}
	var id int64
	err := db.QueryRow(`
SELECT id FROM weight_sessions
WHERE session_type = ? AND completed_at IS NOT NULL
ORDER BY completed_at DESC
LIMIT 1
`, sessionType).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last %q weight session: %w", sessionType, err)
	}
	return GetWeightSession(db, id)
}

func ListExercises(db *sql.DB, sessionType string) ([]model.Exercise, error) {
	sessionType = strings.ToLower(strings.TrimSpace(sessionType))
	if sessionType != "a" && sessionType != "b" {
		return nil, fmt.Errorf("session type must be %q or %q", "a", "b")
	}
	rows, err := db.Query(`
SELECT id, name, session_type, default_weight, sets_target, sort_order
FROM exercises
WHERE session_type = ?
ORDER BY sort_order ASC
`, sessionType)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]model.Exercise, 0)
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.SessionType, &e.DefaultWeight, &e.SetsTarget, &e.SortOrder); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}
	return exercises, nil
}

func listIDs(db *sql.DB, query string, args ...any) ([]int64, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	return ids, nil
}
