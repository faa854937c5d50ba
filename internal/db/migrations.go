package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS foods (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  calories INTEGER NOT NULL CHECK(calories >= 0),
  is_default INTEGER NOT NULL DEFAULT 0,
  is_archived INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS supplements (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  target INTEGER NOT NULL CHECK(target > 0),
  dosage TEXT,
  is_archived INTEGER NOT NULL DEFAULT 0,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS supplement_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  supplement_id INTEGER NOT NULL,
  date TEXT NOT NULL,
  value INTEGER NOT NULL DEFAULT 0 CHECK(value >= 0),
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(supplement_id, date),
  FOREIGN KEY(supplement_id) REFERENCES supplements(id)
);

CREATE TABLE IF NOT EXISTS meal_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  logged_at DATETIME NOT NULL,
  meal_type TEXT,
  note TEXT
);

CREATE INDEX IF NOT EXISTS idx_meal_entries_date ON meal_entries(date);

CREATE TABLE IF NOT EXISTS meal_entry_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_entry_id INTEGER NOT NULL,
  food_id INTEGER,
  name TEXT NOT NULL,
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  calories INTEGER NOT NULL CHECK(calories >= 0),
  quantity REAL NOT NULL DEFAULT 1 CHECK(quantity > 0),
  FOREIGN KEY(meal_entry_id) REFERENCES meal_entries(id) ON DELETE CASCADE,
  FOREIGN KEY(food_id) REFERENCES foods(id)
);

CREATE INDEX IF NOT EXISTS idx_meal_entry_items_entry_id ON meal_entry_items(meal_entry_id);

CREATE TABLE IF NOT EXISTS daily_stats (
  date TEXT PRIMARY KEY,
  fasting_compliant INTEGER NOT NULL DEFAULT 0,
  supplements_complete INTEGER NOT NULL DEFAULT 0,
  finalized INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 2,
		name:    "workouts",
		sql: `
CREATE TABLE IF NOT EXISTS exercises (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  session_type TEXT NOT NULL CHECK(session_type IN ('a', 'b')),
  default_weight REAL NOT NULL CHECK(default_weight >= 0),
  sets_target INTEGER NOT NULL DEFAULT 5 CHECK(sets_target > 0),
  sort_order INTEGER NOT NULL DEFAULT 0,
  UNIQUE(name, session_type)
);

CREATE TABLE IF NOT EXISTS boxing_sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
  completed_at DATETIME,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS weight_sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  session_type TEXT NOT NULL CHECK(session_type IN ('a', 'b')),
  completed_at DATETIME,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_weight_sessions_date ON weight_sessions(date);

CREATE TABLE IF NOT EXISTS weight_exercise_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  weight_session_id INTEGER NOT NULL,
  exercise_id INTEGER NOT NULL,
  weight REAL NOT NULL CHECK(weight >= 0),
  sets_completed INTEGER NOT NULL DEFAULT 0 CHECK(sets_completed >= 0),
  sets_target INTEGER NOT NULL CHECK(sets_target > 0),
  sort_order INTEGER NOT NULL DEFAULT 0,
  FOREIGN KEY(weight_session_id) REFERENCES weight_sessions(id) ON DELETE CASCADE,
  FOREIGN KEY(exercise_id) REFERENCES exercises(id)
);

CREATE INDEX IF NOT EXISTS idx_weight_exercise_logs_session_id ON weight_exercise_logs(weight_session_id);
`,
	},
	{
		version: 3,
		name:    "sitting_sessions",
		sql: `
CREATE TABLE IF NOT EXISTS sitting_sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  sit_duration_minutes INTEGER NOT NULL CHECK(sit_duration_minutes > 0),
  exercises_completed TEXT NOT NULL DEFAULT '[]',
  completed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sitting_sessions_date ON sitting_sessions(date);
`,
	},
	{
		version: 4,
		name:    "workout_tracking",
		sql: `
ALTER TABLE daily_stats ADD COLUMN workout_complete INTEGER NOT NULL DEFAULT 0;

CREATE UNIQUE INDEX IF NOT EXISTS idx_boxing_sessions_date ON boxing_sessions(date);
`,
	},
	{
		version: 5,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

type seedFood struct {
	name     string
	proteinG float64
	calories int
}

type seedSupplement struct {
	name      string
	target    int
	dosage    string
	sortOrder int
}

type seedExercise struct {
	name          string
	sessionType   string
	defaultWeight float64
	sortOrder     int
}

var defaultFoods = []seedFood{
	{"chicken breast", 31, 165},
	{"eggs (2)", 12, 140},
	{"greek yogurt", 17, 100},
	{"whey scoop", 24, 120},
	{"ground beef", 26, 250},
	{"salmon", 25, 208},
	{"cottage cheese", 14, 98},
	{"protein bar", 20, 200},
}

var defaultSupplements = []seedSupplement{
	{"Creatine", 1, "5g", 1},
	{"Vitamin D", 1, "2000 IU", 2},
	{"Magnesium", 1, "400mg", 3},
	{"Fish Oil", 2, "1g", 4},
	{"Water", 4, "500ml", 5},
}

var defaultExercises = []seedExercise{
	{"squat", "a", 45, 1},
	{"bench press", "a", 45, 2},
	{"barbell row", "a", 45, 3},
	{"squat", "b", 45, 1},
	{"overhead press", "b", 45, 2},
	{"deadlift", "b", 95, 3},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	for _, f := range defaultFoods {
		if _, err := db.Exec(`INSERT OR IGNORE INTO foods(name, protein_g, calories, is_default) VALUES(?, ?, ?, 1)`, f.name, f.proteinG, f.calories); err != nil {
			return fmt.Errorf("seed default food %s: %w", f.name, err)
		}
	}
	for _, s := range defaultSupplements {
		if _, err := db.Exec(`INSERT OR IGNORE INTO supplements(name, target, dosage, sort_order) VALUES(?, ?, ?, ?)`, s.name, s.target, s.dosage, s.sortOrder); err != nil {
			return fmt.Errorf("seed default supplement %s: %w", s.name, err)
		}
	}
	for _, e := range defaultExercises {
		if _, err := db.Exec(`INSERT OR IGNORE INTO exercises(name, session_type, default_weight, sets_target, sort_order) VALUES(?, ?, ?, 5, ?)`, e.name, e.sessionType, e.defaultWeight, e.sortOrder); err != nil {
			return fmt.Errorf("seed default exercise %s: %w", e.name, err)
		}
	}

	return nil
}
