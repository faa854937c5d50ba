package service

import (
	"database/sql"
	"fmt"
	"time"

	"daytrack/internal/model"
)

// Streak metrics. Values double as daily_stats column names.
const (
	MetricFasting     = "fasting_compliant"
	MetricSupplements = "supplements_complete"
)

// Eating window: first meal no earlier than noon, last meal before 18:00.
const (
	eatingWindowStartHour = 12
	eatingWindowEndHour   = 18
)

// CalculateFastingCompliance reports whether every meal entry for the date
// falls inside the eating window. A date with no entries is not compliant:
// nothing was logged, so abstinence cannot be verified.
func CalculateFastingCompliance(db *sql.DB, date string) (bool, error) {
	date, err := validateDate(date)
	if err != nil {
		return false, err
	}

	var count int
	var earliestRaw, latestRaw sql.NullString
	err = db.QueryRow(`
SELECT COUNT(*), MIN(logged_at), MAX(logged_at)
FROM meal_entries
WHERE date = ?
`, date).Scan(&count, &earliestRaw, &latestRaw)
	if err != nil {
		return false, fmt.Errorf("meal entry bounds for %s: %w", date, err)
	}
	if count == 0 {
		return false, nil
	}

	earliest, err := time.Parse(time.RFC3339, earliestRaw.String)
	if err != nil {
		return false, fmt.Errorf("parse earliest meal time for %s: %w", date, err)
	}
	latest, err := time.Parse(time.RFC3339, latestRaw.String)
	if err != nil {
		return false, fmt.Errorf("parse latest meal time for %s: %w", date, err)
	}
	return earliest.Hour() >= eatingWindowStartHour && latest.Hour() < eatingWindowEndHour, nil
}

// CalculateSupplementsComplete reports whether every non-archived supplement
// met its completion threshold for the date. Water completes at 2 regardless
// of its target; zero defined supplements counts as not complete, mirroring
// the fasting rule's treatment of missing data.
func CalculateSupplementsComplete(db *sql.DB, date string) (bool, error) {
	date, err := validateDate(date)
	if err != nil {
		return false, err
	}

	supplements, err := ListSupplements(db, false)
	if err != nil {
		return false, err
	}
	if len(supplements) == 0 {
		return false, nil
	}

	logs, err := SupplementLogsForDate(db, date)
	if err != nil {
		return false, err
	}
	logged := make(map[int64]int, len(logs))
	for _, l := range logs {
		logged[l.SupplementID] = l.Value
	}

	for _, s := range supplements {
		if logged[s.ID] < CompletionThreshold(s) {
			return false, nil
		}
	}
	return true, nil
}

// CalculateWorkoutComplete reports whether the date has any completed boxing
// or weight session. Informational only; it never feeds streaks.
func CalculateWorkoutComplete(db *sql.DB, date string) (bool, error) {
	date, err := validateDate(date)
	if err != nil {
		return false, err
	}
	var count int
	err = db.QueryRow(`
SELECT
  (SELECT COUNT(*) FROM boxing_sessions WHERE date = ? AND completed_at IS NOT NULL) +
  (SELECT COUNT(*) FROM weight_sessions WHERE date = ? AND completed_at IS NOT NULL)
`, date, date).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count completed sessions for %s: %w", date, err)
	}
	return count > 0, nil
}

func computeStats(db *sql.DB, date string) (fasting, supplements, workout bool, err error) {
	fasting, err = CalculateFastingCompliance(db, date)
	if err != nil {
		return false, false, false, err
	}
	supplements, err = CalculateSupplementsComplete(db, date)
	if err != nil {
		return false, false, false, err
	}
	workout, err = CalculateWorkoutComplete(db, date)
	if err != nil {
		return false, false, false, err
	}
	return fasting, supplements, workout, nil
}

// FinalizeDate recomputes the date's stats and freezes the row. Deterministic
// given unchanged child rows, so repeated calls are harmless.
func FinalizeDate(db *sql.DB, date string) error {
	date, err := validateDate(date)
	if err != nil {
		return err
	}
	fasting, supplements, workout, err := computeStats(db, date)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO daily_stats(date, fasting_compliant, supplements_complete, workout_complete, finalized, updated_at)
VALUES(?, ?, ?, ?, 1, CURRENT_TIMESTAMP)
ON CONFLICT(date) DO UPDATE SET
  fasting_compliant=excluded.fasting_compliant,
  supplements_complete=excluded.supplements_complete,
  workout_complete=excluded.workout_complete,
  finalized=1,
  updated_at=excluded.updated_at
`, date, boolToInt(fasting), boolToInt(supplements), boolToInt(workout))
	if err != nil {
		return fmt.Errorf("finalize stats for %s: %w", date, err)
	}
	return nil
}

// UpdateStatsForDate recomputes the date's stats without forcing finalization.
// An existing row keeps its finalized flag; a fresh row is finalized only when
// the date is already in the past relative to today.
func UpdateStatsForDate(db *sql.DB, date, today string) error {
	date, err := validateDate(date)
	if err != nil {
		return err
	}
	today, err = validateDate(today)
	if err != nil {
		return err
	}
	fasting, supplements, workout, err := computeStats(db, date)
	if err != nil {
		return err
	}
	finalized := 0
	if date < today {
		finalized = 1
	}
	_, err = db.Exec(`
INSERT INTO daily_stats(date, fasting_compliant, supplements_complete, workout_complete, finalized, updated_at)
VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(date) DO UPDATE SET
  fasting_compliant=excluded.fasting_compliant,
  supplements_complete=excluded.supplements_complete,
  workout_complete=excluded.workout_complete,
  updated_at=excluded.updated_at
`, date, boolToInt(fasting), boolToInt(supplements), boolToInt(workout), finalized)
	if err != nil {
		return fmt.Errorf("update stats for %s: %w", date, err)
	}
	return nil
}

func UpdateTodayStats(db *sql.DB) error {
	today := Today()
	return UpdateStatsForDate(db, today, today)
}

// InitializeDay brings the daily_stats table up to date and must run before
// any streak read. Ordering matters: stale unfinalized rows are finalized
// first, then gaps between the oldest row and yesterday are back-filled, and
// only then is today's unfinalized row created, so gap-filled history is
// derived from whatever child data exists for those dates and today is never
// finalized early. Every step checks before it writes, so overlapping calls
// are idempotent.
func InitializeDay(db *sql.DB, today string) error {
	today, err := validateDate(today)
	if err != nil {
		return err
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM daily_stats`).Scan(&count); err != nil {
		return fmt.Errorf("count daily stats: %w", err)
	}
	if count == 0 {
		return UpdateStatsForDate(db, today, today)
	}

	stale, err := listDates(db, `SELECT date FROM daily_stats WHERE finalized = 0 AND date < ? ORDER BY date ASC`, today)
	if err != nil {
		return err
	}
	for _, d := range stale {
		if err := FinalizeDate(db, d); err != nil {
			return err
		}
	}

	var oldest string
	if err := db.QueryRow(`SELECT MIN(date) FROM daily_stats`).Scan(&oldest); err != nil {
		return fmt.Errorf("oldest stats date: %w", err)
	}
	day, err := AddDays(oldest, 1)
	if err != nil {
		return err
	}
	for day < today {
		exists, err := statsRowExists(db, day)
		if err != nil {
			return err
		}
		if !exists {
			if err := FinalizeDate(db, day); err != nil {
				return err
			}
		}
		if day, err = AddDays(day, 1); err != nil {
			return err
		}
	}

	exists, err := statsRowExists(db, today)
	if err != nil {
		return err
	}
	if !exists {
		return UpdateStatsForDate(db, today, today)
	}
	return nil
}

func statsRowExists(db *sql.DB, date string) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM daily_stats WHERE date = ?`, date).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check stats row for %s: %w", date, err)
	}
	return true, nil
}

func listDates(db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dates: %w", err)
	}
	return dates, nil
}

// GetStreak counts consecutive finalized, compliant days walking backward from
// yesterday. A missing date or a failed day stops the walk; today is excluded
// because today is never finalized.
func GetStreak(db *sql.DB, metric, today string) (int, error) {
	switch metric {
	case MetricFasting, MetricSupplements:
	default:
		return 0, fmt.Errorf("unknown streak metric %q", metric)
	}
	return walkStreak(db, today, func(s model.DailyStats) bool {
		if metric == MetricFasting {
			return s.FastingCompliant
		}
		return s.SupplementsComplete
	})
}

type CombinedStreak struct {
	Days           int  `json:"days"`
	TodayQualifies bool `json:"today_qualifies"`
}

// GetCombinedStreak requires both metrics per counted day and also reports
// whether today's live (unfinalized) values already satisfy both rules, so a
// caller can show days+1 optimistically without touching stored state.
func GetCombinedStreak(db *sql.DB, today string) (CombinedStreak, error) {
	today, err := validateDate(today)
	if err != nil {
		return CombinedStreak{}, err
	}
	days, err := walkStreak(db, today, func(s model.DailyStats) bool {
		return s.FastingCompliant && s.SupplementsComplete
	})
	if err != nil {
		return CombinedStreak{}, err
	}

	fasting, err := CalculateFastingCompliance(db, today)
	if err != nil {
		return CombinedStreak{}, err
	}
	supplements, err := CalculateSupplementsComplete(db, today)
	if err != nil {
		return CombinedStreak{}, err
	}
	return CombinedStreak{Days: days, TodayQualifies: fasting && supplements}, nil
}

func walkStreak(db *sql.DB, today string, qualifies func(model.DailyStats) bool) (int, error) {
	today, err := validateDate(today)
	if err != nil {
		return 0, err
	}

	rows, err := db.Query(`
SELECT date, fasting_compliant, supplements_complete, finalized
FROM daily_stats
WHERE date < ?
ORDER BY date DESC
`, today)
	if err != nil {
		return 0, fmt.Errorf("load streak rows: %w", err)
	}
	defer rows.Close()

	expected, err := AddDays(today, -1)
	if err != nil {
		return 0, err
	}
	streak := 0
	for rows.Next() {
		var s model.DailyStats
		if err := rows.Scan(&s.Date, &s.FastingCompliant, &s.SupplementsComplete, &s.Finalized); err != nil {
			return 0, fmt.Errorf("scan streak row: %w", err)
		}
		if s.Date != expected || !s.Finalized || !qualifies(s) {
			break
		}
		streak++
		if expected, err = AddDays(expected, -1); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate streak rows: %w", err)
	}
	return streak, nil
}

// StatsForRange returns rows between two dates inclusive, ascending. The row
// count doubles as the "day N of tracking" figure for calendar displays.
func StatsForRange(db *sql.DB, start, end string) ([]model.DailyStats, error) {
	start, err := validateDate(start)
	if err != nil {
		return nil, err
	}
	end, err = validateDate(end)
	if err != nil {
		return nil, err
	}
	if start > end {
		return nil, fmt.Errorf("start date must be <= end date")
	}

	rows, err := db.Query(`
SELECT date, fasting_compliant, supplements_complete, workout_complete, finalized, updated_at
FROM daily_stats
WHERE date >= ? AND date <= ?
ORDER BY date ASC
`, start, end)
	if err != nil {
		return nil, fmt.Errorf("load stats range: %w", err)
	}
	defer rows.Close()

	stats := make([]model.DailyStats, 0)
	for rows.Next() {
		var s model.DailyStats
		if err := rows.Scan(&s.Date, &s.FastingCompliant, &s.SupplementsComplete, &s.WorkoutComplete, &s.Finalized, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}
	return stats, nil
}

func GetStatsForDate(db *sql.DB, date string) (*model.DailyStats, error) {
	date, err := validateDate(date)
	if err != nil {
		return nil, err
	}
	var s model.DailyStats
	err = db.QueryRow(`
SELECT date, fasting_compliant, supplements_complete, workout_complete, finalized, updated_at
FROM daily_stats
WHERE date = ?
`, date).Scan(&s.Date, &s.FastingCompliant, &s.SupplementsComplete, &s.WorkoutComplete, &s.Finalized, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stats for %s: %w", date, err)
	}
	return &s, nil
}

// HasDataForDate reports whether any meal entry, supplement log, or stats row
// exists for the date.
func HasDataForDate(db *sql.DB, date string) (bool, error) {
	date, err := validateDate(date)
	if err != nil {
		return false, err
	}
	var count int
	err = db.QueryRow(`
SELECT
  (SELECT COUNT(*) FROM meal_entries WHERE date = ?) +
  (SELECT COUNT(*) FROM supplement_logs WHERE date = ?) +
  (SELECT COUNT(*) FROM daily_stats WHERE date = ?)
`, date, date, date).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count data for %s: %w", date, err)
	}
	return count > 0, nil
}

// MoveDateData relocates meal entries, supplement logs, and the stats row from
// one date to another. It refuses to touch anything when the destination
// already has data: this is a correction tool, never a merge.
func MoveDateData(db *sql.DB, from, to string) error {
	from, err := validateDate(from)
	if err != nil {
		return err
	}
	to, err = validateDate(to)
	if err != nil {
		return err
	}
	if from == to {
		return fmt.Errorf("source and destination dates are the same")
	}

	occupied, err := HasDataForDate(db, to)
	if err != nil {
		return err
	}
	if occupied {
		return fmt.Errorf("date %s already has data; move aborted", to)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin move tx: %w", err)
	}
	for _, stmt := range []string{
		`UPDATE meal_entries SET date = ? WHERE date = ?`,
		`UPDATE supplement_logs SET date = ? WHERE date = ?`,
		`UPDATE daily_stats SET date = ? WHERE date = ?`,
	} {
		if _, err := tx.Exec(stmt, to, from); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("move data from %s to %s: %w", from, to, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit move from %s to %s: %w", from, to, err)
	}
	return nil
}

// DeleteDate hard-deletes everything recorded for a date. Items and exercise
// logs go via FK cascade.
func DeleteDate(db *sql.DB, date string) error {
	date, err := validateDate(date)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	for _, stmt := range []string{
		`DELETE FROM meal_entries WHERE date = ?`,
		`DELETE FROM supplement_logs WHERE date = ?`,
		`DELETE FROM boxing_sessions WHERE date = ?`,
		`DELETE FROM weight_sessions WHERE date = ?`,
		`DELETE FROM sitting_sessions WHERE date = ?`,
		`DELETE FROM daily_stats WHERE date = ?`,
	} {
		if _, err := tx.Exec(stmt, date); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delete data for %s: %w", date, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete for %s: %w", date, err)
	}
	return nil
}
