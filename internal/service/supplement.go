package service

import (
	"database/sql"
	"fmt"
	"strings"

	"daytrack/internal/model"
)

// WaterName is the one supplement with a relaxed completion threshold: two
// logged units count as complete even when the daily target is higher.
const WaterName = "Water"

const waterCompletionThreshold = 2

type CreateSupplementInput struct {
	Name      string
	Target    int
	Dosage    string
	SortOrder int
}

func CreateSupplement(db *sql.DB, in CreateSupplementInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("supplement name is required")
	}
	if in.Target <= 0 {
		return 0, fmt.Errorf("target must be > 0")
	}

	res, err := db.Exec(`
INSERT INTO supplements(name, target, dosage, sort_order)
VALUES(?, ?, ?, ?)
`, in.Name, in.Target, strings.TrimSpace(in.Dosage), in.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert supplement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted supplement id: %w", err)
	}
	return id, nil
}

func ListSupplements(db *sql.DB, includeArchived bool) ([]model.Supplement, error) {
	query := `
SELECT id, name, target, IFNULL(dosage, ''), is_archived, sort_order
FROM supplements`
	if !includeArchived {
		query += `
WHERE is_archived = 0`
	}
	query += `
ORDER BY sort_order ASC, name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list supplements: %w", err)
	}
	defer rows.Close()

	supplements := make([]model.Supplement, 0)
	for rows.Next() {
		var s model.Supplement
		if err := rows.Scan(&s.ID, &s.Name, &s.Target, &s.Dosage, &s.IsArchived, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("scan supplement: %w", err)
		}
		supplements = append(supplements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate supplements: %w", err)
	}
	return supplements, nil
}

func ArchiveSupplement(db *sql.DB, id int64) error {
	return setSupplementArchived(db, id, true)
}

func UnarchiveSupplement(db *sql.DB, id int64) error {
	return setSupplementArchived(db, id, false)
}

func setSupplementArchived(db *sql.DB, id int64, archived bool) error {
	if id <= 0 {
		return fmt.Errorf("supplement id must be > 0")
	}
	res, err := db.Exec(`UPDATE supplements SET is_archived = ? WHERE id = ?`, boolToInt(archived), id)
	if err != nil {
		return fmt.Errorf("archive supplement %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for supplement %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("supplement %d not found", id)
	}
	return nil
}

// LogSupplement upserts the (supplement, date) log row. The value is clamped
// to 0..target so over-tapping in the UI never stores an out-of-range count.
func LogSupplement(db *sql.DB, supplementID int64, date string, value int) error {
	if supplementID <= 0 {
		return fmt.Errorf("supplement id must be > 0")
	}
	date, err := dateOrToday(date)
	if err != nil {
		return err
	}

	var target int
	err = db.QueryRow(`SELECT target FROM supplements WHERE id = ?`, supplementID).Scan(&target)
	if err == sql.ErrNoRows {
		return fmt.Errorf("supplement %d not found", supplementID)
	}
	if err != nil {
		return fmt.Errorf("lookup supplement %d: %w", supplementID, err)
	}

	if value < 0 {
		value = 0
	}
	if value > target {
		value = target
	}

	_, err = db.Exec(`
INSERT INTO supplement_logs(supplement_id, date, value, updated_at)
VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(supplement_id, date) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, supplementID, date, value)
	if err != nil {
		return fmt.Errorf("log supplement %d for %s: %w", supplementID, date, err)
	}
	return UpdateStatsForDate(db, date, Today())
}

// IncrementSupplement bumps the logged value by one, capped at target.
func IncrementSupplement(db *sql.DB, supplementID int64, date string) (int, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return 0, err
	}
	logs, err := SupplementLogsForDate(db, date)
	if err != nil {
		return 0, err
	}
	current := 0
	for _, l := range logs {
		if l.SupplementID == supplementID {
			current = l.Value
			break
		}
	}
	if err := LogSupplement(db, supplementID, date, current+1); err != nil {
		return 0, err
	}
	logs, err = SupplementLogsForDate(db, date)
	if err != nil {
		return 0, err
	}
	for _, l := range logs {
		if l.SupplementID == supplementID {
			return l.Value, nil
		}
	}
	return 0, fmt.Errorf("supplement %d log missing after increment", supplementID)
}

func SupplementLogsForDate(db *sql.DB, date string) ([]model.SupplementLog, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`
SELECT id, supplement_id, date, value
FROM supplement_logs
WHERE date = ?
ORDER BY supplement_id ASC
`, date)
	if err != nil {
		return nil, fmt.Errorf("list supplement logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.SupplementLog, 0)
	for rows.Next() {
		var l model.SupplementLog
		if err := rows.Scan(&l.ID, &l.SupplementID, &l.Date, &l.Value); err != nil {
			return nil, fmt.Errorf("scan supplement log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate supplement logs: %w", err)
	}
	return logs, nil
}

// CompletionThreshold is the logged value at which a supplement counts toward
// the supplements-complete rule for a day.
func CompletionThreshold(s model.Supplement) int {
	if s.Name == WaterName && s.Target > waterCompletionThreshold {
		return waterCompletionThreshold
	}
	return s.Target
}
