package model

import "time"

type DailyStats struct {
	Date                string
	FastingCompliant    bool
	SupplementsComplete bool
	WorkoutComplete     bool
	Finalized           bool
	UpdatedAt           time.Time
}

type Food struct {
	ID         int64
	Name       string
	ProteinG   float64
	Calories   int
	IsDefault  bool
	IsArchived bool
	CreatedAt  time.Time
}

type MealEntry struct {
	ID       int64
	Date     string
	LoggedAt time.Time
	MealType string
	Note     string
	Items    []MealEntryItem
}

type MealEntryItem struct {
	ID          int64
	MealEntryID int64
	FoodID      *int64
	Name        string
	ProteinG    float64
	Calories    int
	Quantity    float64
}

type Supplement struct {
	ID         int64
	Name       string
	Target     int
	Dosage     string
	IsArchived bool
	SortOrder  int
}

type SupplementLog struct {
	ID           int64
	SupplementID int64
	Date         string
	Value        int
}

type BoxingSession struct {
	ID              int64
	Date            string
	DurationMinutes int
	CompletedAt     *time.Time
}

type WeightSession struct {
	ID          int64
	Date        string
	SessionType string
	CompletedAt *time.Time
	Exercises   []WeightExerciseLog
}

type WeightExerciseLog struct {
	ID              int64
	WeightSessionID int64
	ExerciseID      int64
	ExerciseName    string
	Weight          float64
	SetsCompleted   int
	SetsTarget      int
	SortOrder       int
}

type Exercise struct {
	ID            int64
	Name          string
	SessionType   string
	DefaultWeight float64
	SetsTarget    int
	SortOrder     int
}

type SittingSession struct {
	ID                 int64
	Date               string
	SitDurationMinutes int
	ExercisesCompleted []string
	CompletedAt        time.Time
}
