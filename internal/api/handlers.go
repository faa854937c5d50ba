package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"daytrack/internal/model"
	"daytrack/internal/service"
)

// Server wraps the database handle behind the HTTP surface. The UI calls
// these endpoints the same way the CLI calls the service layer directly.
type Server struct {
	db *sql.DB
}

func NewServer(db *sql.DB) *Server {
	return &Server{db: db}
}

func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api/v1")
	{
		api.GET("/ping", s.Ping)
		api.POST("/day/init", s.InitDay)
		api.POST("/day/move", s.MoveDay)
		api.DELETE("/day/:date", s.DeleteDay)
		api.GET("/today", s.Today)
		api.GET("/streaks", s.Streaks)
		api.GET("/stats", s.StatsRange)
		api.GET("/meals", s.ListMeals)
		api.POST("/meals", s.CreateMeal)
		api.DELETE("/meals/:id", s.DeleteMeal)
		api.GET("/supplements", s.SupplementChecklist)
		api.POST("/supplements/:id/log", s.LogSupplement)
		api.GET("/workouts", s.Workouts)
	}

	return router
}

func (s *Server) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) InitDay(c *gin.Context) {
	if err := service.InitializeDay(s.db, service.Today()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize day", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": service.Today()})
}

type moveDayRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

func (s *Server) MoveDay(c *gin.Context) {
	var req moveDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}
	if err := service.MoveDateData(s.db, req.From, req.To); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "move failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "moved", "from": req.From, "to": req.To})
}

func (s *Server) DeleteDay(c *gin.Context) {
	if err := service.DeleteDate(s.db, c.Param("date")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delete failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted", "date": c.Param("date")})
}

func (s *Server) Today(c *gin.Context) {
	today := service.Today()
	stats, err := service.GetStatsForDate(s.db, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats", "details": err.Error()})
		return
	}
	totals, err := service.MealTotalsForDate(s.db, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load totals", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":    today,
		"stats":   stats,
		"totals":  totals,
		"fasting": service.CalculateFastingState(time.Now()),
	})
}

func (s *Server) Streaks(c *gin.Context) {
	today := service.Today()
	fasting, err := service.GetStreak(s.db, service.MetricFasting, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute streaks", "details": err.Error()})
		return
	}
	supplements, err := service.GetStreak(s.db, service.MetricSupplements, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute streaks", "details": err.Error()})
		return
	}
	combined, err := service.GetCombinedStreak(s.db, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute streaks", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"fasting":     fasting,
		"supplements": supplements,
		"combined":    combined,
	})
}

func (s *Server) StatsRange(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	stats, err := service.StatsForRange(s.db, start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "days": len(stats)})
}

func (s *Server) ListMeals(c *gin.Context) {
	entries, err := service.ListMealEntries(s.db, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to list meals", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type mealItemRequest struct {
	FoodID   int64   `json:"food_id"`
	Name     string  `json:"name"`
	ProteinG float64 `json:"protein_g"`
	Calories int     `json:"calories"`
	Quantity float64 `json:"quantity"`
}

type createMealRequest struct {
	Date     string            `json:"date"`
	LoggedAt string            `json:"logged_at"`
	MealType string            `json:"meal_type"`
	Note     string            `json:"note"`
	Items    []mealItemRequest `json:"items" binding:"required"`
}

func (s *Server) CreateMeal(c *gin.Context) {
	var req createMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	in := service.CreateMealEntryInput{Date: req.Date, MealType: req.MealType, Note: req.Note}
	if req.LoggedAt != "" {
		t, err := time.Parse(time.RFC3339, req.LoggedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "logged_at must be RFC3339"})
			return
		}
		in.LoggedAt = t
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.MealItemInput{
			FoodID:   it.FoodID,
			Name:     it.Name,
			ProteinG: it.ProteinG,
			Calories: it.Calories,
			Quantity: it.Quantity,
		})
	}

	id, err := service.CreateMealEntry(s.db, in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to log meal", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) DeleteMeal(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := service.DeleteMealEntry(s.db, id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to delete meal", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type supplementStatus struct {
	Supplement model.Supplement `json:"supplement"`
	Value      int              `json:"value"`
	Complete   bool             `json:"complete"`
}

func (s *Server) SupplementChecklist(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = service.Today()
	}
	supplements, err := service.ListSupplements(s.db, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list supplements", "details": err.Error()})
		return
	}
	logs, err := service.SupplementLogsForDate(s.db, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to list logs", "details": err.Error()})
		return
	}
	logged := make(map[int64]int, len(logs))
	for _, l := range logs {
		logged[l.SupplementID] = l.Value
	}
	out := make([]supplementStatus, 0, len(supplements))
	for _, sup := range supplements {
		out = append(out, supplementStatus{
			Supplement: sup,
			Value:      logged[sup.ID],
			Complete:   logged[sup.ID] >= service.CompletionThreshold(sup),
		})
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "supplements": out})
}

type logSupplementRequest struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

func (s *Server) LogSupplement(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req logSupplementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}
	if err := service.LogSupplement(s.db, id, req.Date, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to log supplement", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged"})
}

func (s *Server) Workouts(c *gin.Context) {
	date := c.Query("date")
	boxing, err := service.GetBoxingSession(s.db, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to load boxing session", "details": err.Error()})
		return
	}
	weights, err := service.WeightSessionsForDate(s.db, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to load weight sessions", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"boxing": boxing, "weights": weights})
}
