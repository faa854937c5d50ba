package service

import (
	"database/sql"
	"fmt"

	"daytrack/internal/model"
)

type CreateFoodInput struct {
	Name     string
	ProteinG float64
	Calories int
}

func CreateFood(db *sql.DB, in CreateFoodInput) (int64, error) {
	in.Name = normalizeName(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("food name is required")
	}
	if err := validateNonNegativeFloat("protein", in.ProteinG); err != nil {
		return 0, err
	}
	if err := validateNonNegativeInt("calories", in.Calories); err != nil {
		return 0, err
	}

	res, err := db.Exec(`
INSERT INTO foods(name, protein_g, calories)
VALUES(?, ?, ?)
`, in.Name, in.ProteinG, in.Calories)
	if err != nil {
		return 0, fmt.Errorf("insert food: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted food id: %w", err)
	}
	return id, nil
}

// ListFoods returns the food pick list. Archived foods are excluded unless
// includeArchived is set; they stay referenceable by historical meal items.
func ListFoods(db *sql.DB, includeArchived bool) ([]model.Food, error) {
	query := `
SELECT id, name, protein_g, calories, is_default, is_archived, created_at
FROM foods`
	if !includeArchived {
		query += `
WHERE is_archived = 0`
	}
	query += `
ORDER BY name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	foods := make([]model.Food, 0)
	for rows.Next() {
		var f model.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.ProteinG, &f.Calories, &f.IsDefault, &f.IsArchived, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return foods, nil
}

func GetFood(db *sql.DB, id int64) (*model.Food, error) {
	if id <= 0 {
		return nil, fmt.Errorf("food id must be > 0")
	}
	var f model.Food
	err := db.QueryRow(`
SELECT id, name, protein_g, calories, is_default, is_archived, created_at
FROM foods
WHERE id = ?
`, id).Scan(&f.ID, &f.Name, &f.ProteinG, &f.Calories, &f.IsDefault, &f.IsArchived, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("food %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get food %d: %w", id, err)
	}
	return &f, nil
}

func UpdateFood(db *sql.DB, id int64, in CreateFoodInput) error {
	if id <= 0 {
		return fmt.Errorf("food id must be > 0")
	}
	in.Name = normalizeName(in.Name)
	if in.Name == "" {
		return fmt.Errorf("food name is required")
	}
	if err := validateNonNegativeFloat("protein", in.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeInt("calories", in.Calories); err != nil {
		return err
	}

	res, err := db.Exec(`
UPDATE foods SET name = ?, protein_g = ?, calories = ? WHERE id = ?
`, in.Name, in.ProteinG, in.Calories, id)
	if err != nil {
		return fmt.Errorf("update food %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for food %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("food %d not found", id)
	}
	return nil
}

// ArchiveFood soft-deletes a food. Historical meal items keep their snapshotted
// protein/calories, so archiving never rewrites past totals.
func ArchiveFood(db *sql.DB, id int64) error {
	return setFoodArchived(db, id, true)
}

func UnarchiveFood(db *sql.DB, id int64) error {
	return setFoodArchived(db, id, false)
}

func setFoodArchived(db *sql.DB, id int64, archived bool) error {
	if id <= 0 {
		return fmt.Errorf("food id must be > 0")
	}
	res, err := db.Exec(`UPDATE foods SET is_archived = ? WHERE id = ?`, boolToInt(archived), id)
	if err != nil {
		return fmt.Errorf("archive food %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for food %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("food %d not found", id)
	}
	return nil
}

func foodByName(db *sql.DB, name string) (*model.Food, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, fmt.Errorf("food name is required")
	}
	var f model.Food
	err := db.QueryRow(`
SELECT id, name, protein_g, calories, is_default, is_archived, created_at
FROM foods
WHERE name = ?
`, name).Scan(&f.ID, &f.Name, &f.ProteinG, &f.Calories, &f.IsDefault, &f.IsArchived, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("food %q does not exist", name)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup food %q: %w", name, err)
	}
	return &f, nil
}
