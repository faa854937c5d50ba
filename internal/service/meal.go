package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"daytrack/internal/model"
)

type MealItemInput struct {
	FoodID   int64
	Name     string
	ProteinG float64
	Calories int
	Quantity float64
}

type CreateMealEntryInput struct {
	Date     string
	LoggedAt time.Time
	MealType string
	Note     string
	Items    []MealItemInput
}

// CreateMealEntry inserts an entry plus its items in one transaction. Items
// referencing a food snapshot that food's protein/calories at add-time, so a
// later edit to the food never rewrites historical totals.
func CreateMealEntry(db *sql.DB, in CreateMealEntryInput) (int64, error) {
	date, err := dateOrToday(in.Date)
	if err != nil {
		return 0, err
	}
	if in.LoggedAt.IsZero() {
		in.LoggedAt = time.Now()
	}
	if len(in.Items) == 0 {
		return 0, fmt.Errorf("meal entry needs at least one item")
	}

	items := make([]model.MealEntryItem, 0, len(in.Items))
	for i, it := range in.Items {
		resolved, err := resolveMealItem(db, it)
		if err != nil {
			return 0, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, resolved)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin meal entry tx: %w", err)
	}

	res, err := tx.Exec(`
INSERT INTO meal_entries(date, logged_at, meal_type, note)
VALUES(?, ?, ?, ?)
`, date, in.LoggedAt.Format(time.RFC3339), strings.TrimSpace(in.MealType), strings.TrimSpace(in.Note))
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert meal entry: %w", err)
	}
	entryID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("resolve inserted meal entry id: %w", err)
	}

	for _, it := range items {
		if _, err := tx.Exec(`
INSERT INTO meal_entry_items(meal_entry_id, food_id, name, protein_g, calories, quantity)
VALUES(?, ?, ?, ?, ?, ?)
`, entryID, it.FoodID, it.Name, it.ProteinG, it.Calories, it.Quantity); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert meal entry item %q: %w", it.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit meal entry: %w", err)
	}

	if err := UpdateStatsForDate(db, date, Today()); err != nil {
		return 0, err
	}
	return entryID, nil
}

func resolveMealItem(db *sql.DB, in MealItemInput) (model.MealEntryItem, error) {
	if in.Quantity <= 0 {
		in.Quantity = 1
	}
	out := model.MealEntryItem{Quantity: in.Quantity}

	if in.FoodID > 0 {
		food, err := GetFood(db, in.FoodID)
		if err != nil {
			return out, err
		}
		id := food.ID
		out.FoodID = &id
		out.Name = food.Name
		out.ProteinG = food.ProteinG
		out.Calories = food.Calories
		return out, nil
	}

	out.Name = normalizeName(in.Name)
	if out.Name == "" {
		return out, fmt.Errorf("item name or food id is required")
	}
	if food, err := foodByName(db, out.Name); err == nil && in.ProteinG == 0 && in.Calories == 0 {
		id := food.ID
		out.FoodID = &id
		out.ProteinG = food.ProteinG
		out.Calories = food.Calories
		return out, nil
	}
	if err := validateNonNegativeFloat("protein", in.ProteinG); err != nil {
		return out, err
	}
	if err := validateNonNegativeInt("calories", in.Calories); err != nil {
		return out, err
	}
	out.ProteinG = in.ProteinG
	out.Calories = in.Calories
	return out, nil
}

// AddMealItem appends one item to an existing entry.
func AddMealItem(db *sql.DB, entryID int64, in MealItemInput) (int64, error) {
	if entryID <= 0 {
		return 0, fmt.Errorf("meal entry id must be > 0")
	}
	var date string
	err := db.QueryRow(`SELECT date FROM meal_entries WHERE id = ?`, entryID).Scan(&date)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("meal entry %d not found", entryID)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup meal entry %d: %w", entryID, err)
	}

	item, err := resolveMealItem(db, in)
	if err != nil {
		return 0, err
	}
	res, err := db.Exec(`
INSERT INTO meal_entry_items(meal_entry_id, food_id, name, protein_g, calories, quantity)
VALUES(?, ?, ?, ?, ?, ?)
`, entryID, item.FoodID, item.Name, item.ProteinG, item.Calories, item.Quantity)
	if err != nil {
		return 0, fmt.Errorf("insert meal entry item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted item id: %w", err)
	}
	if err := UpdateStatsForDate(db, date, Today()); err != nil {
		return 0, err
	}
	return id, nil
}

func ListMealEntries(db *sql.DB, date string) ([]model.MealEntry, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
SELECT id, date, logged_at, IFNULL(meal_type, ''), IFNULL(note, '')
FROM meal_entries
WHERE date = ?
ORDER BY logged_at ASC
`, date)
	if err != nil {
		return nil, fmt.Errorf("list meal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.MealEntry, 0)
	for rows.Next() {
		var e model.MealEntry
		var loggedAtRaw string
		if err := rows.Scan(&e.ID, &e.Date, &loggedAtRaw, &e.MealType, &e.Note); err != nil {
			return nil, fmt.Errorf("scan meal entry: %w", err)
		}
		loggedAt, err := time.Parse(time.RFC3339, loggedAtRaw)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at for entry %d: %w", e.ID, err)
		}
		e.LoggedAt = loggedAt
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal entries: %w", err)
	}

	for i := range entries {
		items, err := listMealItems(db, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Items = items
	}
	return entries, nil
}

func listMealItems(db *sql.DB, entryID int64) ([]model.MealEntryItem, error) {
	rows, err := db.Query(`
SELECT id, meal_entry_id, food_id, name, protein_g, calories, quantity
FROM meal_entry_items
WHERE meal_entry_id = ?
ORDER BY id ASC
`, entryID)
	if err != nil {
		return nil, fmt.Errorf("list meal items for entry %d: %w", entryID, err)
	}
	defer rows.Close()

	items := make([]model.MealEntryItem, 0)
	for rows.Next() {
		var it model.MealEntryItem
		var foodID sql.NullInt64
		if err := rows.Scan(&it.ID, &it.MealEntryID, &foodID, &it.Name, &it.ProteinG, &it.Calories, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan meal item: %w", err)
		}
		if foodID.Valid {
			v := foodID.Int64
			it.FoodID = &v
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal items: %w", err)
	}
	return items, nil
}

// DeleteMealEntry removes an entry; items go with it via FK cascade.
func DeleteMealEntry(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("meal entry id must be > 0")
	}
	var date string
	err := db.QueryRow(`SELECT date FROM meal_entries WHERE id = ?`, id).Scan(&date)
	if err == sql.ErrNoRows {
		return fmt.Errorf("meal entry %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("lookup meal entry %d: %w", id, err)
	}

	if _, err := db.Exec(`DELETE FROM meal_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete meal entry %d: %w", id, err)
	}
	return UpdateStatsForDate(db, date, Today())
}

type DayTotals struct {
	Date     string  `json:"date"`
	ProteinG float64 `json:"protein_g"`
	Calories int     `json:"calories"`
	Entries  int     `json:"entries"`
}

// MealTotalsForDate sums snapshotted item macros scaled by quantity.
func MealTotalsForDate(db *sql.DB, date string) (DayTotals, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return DayTotals{}, err
	}
	out := DayTotals{Date: date}
	err = db.QueryRow(`
SELECT COUNT(DISTINCT e.id), IFNULL(SUM(i.protein_g * i.quantity), 0), CAST(ROUND(IFNULL(SUM(i.calories * i.quantity), 0)) AS INTEGER)
FROM meal_entries e
LEFT JOIN meal_entry_items i ON i.meal_entry_id = e.id
WHERE e.date = ?
`, date).Scan(&out.Entries, &out.ProteinG, &out.Calories)
	if err != nil {
		return DayTotals{}, fmt.Errorf("meal totals for %s: %w", date, err)
	}
	return out, nil
}
