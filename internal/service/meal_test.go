package service_test

import (
	"testing"
	"time"

	"daytrack/internal/service"
)

func TestMealItemSnapshotsFoodMacros(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	foodID, err := service.CreateFood(db, service.CreateFoodInput{Name: "tuna steak", ProteinG: 40, Calories: 180})
	if err != nil {
		t.Fatalf("create food: %v", err)
	}

	date := "2026-01-10"
	entryID, err := service.CreateMealEntry(db, service.CreateMealEntryInput{
		Date:     date,
		LoggedAt: time.Date(2026, 1, 10, 13, 0, 0, 0, time.Local),
		MealType: "lunch",
		Items:    []service.MealItemInput{{FoodID: foodID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	// Editing the food afterwards must not change the logged item.
	if err := service.UpdateFood(db, foodID, service.CreateFoodInput{Name: "tuna steak", ProteinG: 99, Calories: 999}); err != nil {
		t.Fatalf("update food: %v", err)
	}

	entries, err := service.ListMealEntries(db, date)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != entryID {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	item := entries[0].Items[0]
	if item.ProteinG != 40 || item.Calories != 180 {
		t.Errorf("item macros = %.1fg/%d, want snapshot 40g/180", item.ProteinG, item.Calories)
	}
	if item.FoodID == nil || *item.FoodID != foodID {
		t.Errorf("item food id = %v, want %d", item.FoodID, foodID)
	}

	totals, err := service.MealTotalsForDate(db, date)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.ProteinG != 80 || totals.Calories != 360 {
		t.Errorf("totals = %.1fg/%d, want 80g/360 (quantity 2)", totals.ProteinG, totals.Calories)
	}
}

func TestMealItemByNameFallsBackToAdHoc(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	date := "2026-01-10"
	_, err := service.CreateMealEntry(db, service.CreateMealEntryInput{
		Date:     date,
		LoggedAt: time.Date(2026, 1, 10, 13, 0, 0, 0, time.Local),
		Items:    []service.MealItemInput{{Name: "street tacos", ProteinG: 25, Calories: 600}},
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	entries, err := service.ListMealEntries(db, date)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	item := entries[0].Items[0]
	if item.FoodID != nil {
		t.Error("ad-hoc item must not link to the pick list")
	}
	if item.Name != "street tacos" || item.ProteinG != 25 || item.Calories != 600 {
		t.Errorf("unexpected ad-hoc item: %+v", item)
	}
}

func TestMealItemByNameResolvesSeededFood(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	date := "2026-01-10"
	_, err := service.CreateMealEntry(db, service.CreateMealEntryInput{
		Date:     date,
		LoggedAt: time.Date(2026, 1, 10, 13, 0, 0, 0, time.Local),
		Items:    []service.MealItemInput{{Name: "chicken breast"}},
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	entries, err := service.ListMealEntries(db, date)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	item := entries[0].Items[0]
	if item.FoodID == nil {
		t.Fatal("seeded food name must resolve to the pick list")
	}
	if item.ProteinG != 31 || item.Calories != 165 {
		t.Errorf("item macros = %.1fg/%d, want 31g/165 from the seed", item.ProteinG, item.Calories)
	}
}

func TestCreateMealEntryRequiresItems(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	_, err := service.CreateMealEntry(db, service.CreateMealEntryInput{Date: "2026-01-10"})
	if err == nil {
		t.Fatal("entry with no items must fail")
	}
}

func TestAddMealItemAndDeleteEntry(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	date := "2026-01-10"
	entryID, err := service.CreateMealEntry(db, service.CreateMealEntryInput{
		Date:     date,
		LoggedAt: time.Date(2026, 1, 10, 13, 0, 0, 0, time.Local),
		Items:    []service.MealItemInput{{Name: "rice", ProteinG: 4, Calories: 200}},
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := service.AddMealItem(db, entryID, service.MealItemInput{Name: "beans", ProteinG: 8, Calories: 120}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	totals, err := service.MealTotalsForDate(db, date)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.ProteinG != 12 || totals.Calories != 320 || totals.Entries != 1 {
		t.Errorf("totals after add = %+v", totals)
	}

	if err := service.DeleteMealEntry(db, entryID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	var itemCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM meal_entry_items`).Scan(&itemCount); err != nil {
		t.Fatalf("count items: %v", err)
	}
	if itemCount != 0 {
		t.Errorf("items left after entry delete: %d", itemCount)
	}

	totals, err = service.MealTotalsForDate(db, date)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Entries != 0 || totals.Calories != 0 {
		t.Errorf("totals after delete = %+v", totals)
	}
}

func TestDeleteMealEntryRefreshesStats(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	date := "2026-01-10"
	mealAt(t, db, date, 13, 0)
	lateID, err := service.CreateMealEntry(db, service.CreateMealEntryInput{
		Date:     date,
		LoggedAt: time.Date(2026, 1, 10, 21, 0, 0, 0, time.Local),
		Items:    []service.MealItemInput{{Name: "late snack", Calories: 200}},
	})
	if err != nil {
		t.Fatalf("create late entry: %v", err)
	}

	compliant, err := service.CalculateFastingCompliance(db, date)
	if err != nil {
		t.Fatalf("compliance: %v", err)
	}
	if compliant {
		t.Fatal("late meal must break compliance")
	}

	if err := service.DeleteMealEntry(db, lateID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	stats, err := service.GetStatsForDate(db, date)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats == nil || !stats.FastingCompliant {
		t.Errorf("stats not refreshed after delete: %+v", stats)
	}
}
