package httpapi

import (
	"net/http"
	"time"

	"fitness-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// subject pulls the ownership-scoping identifier off the request, aborting
// with 401 when the gate did not attach one. Resource handlers never read a
// user id from anywhere else.
func subject(c *gin.Context) (string, bool) {
	sub, err := auth.Subject(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return "", false
	}
	return sub, true
}

/* ===================== ACTIVITIES ===================== */

type createActivityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h Handlers) CreateActivity(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	a, err := h.Activities.CreateActivity(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, "Create activity failed", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h Handlers) ListActivities(c *gin.Context) {
	all, err := h.Activities.ListActivities(c.Request.Context())
	if err != nil {
		respondError(c, "List activities failed", err)
		return
	}
	c.JSON(http.StatusOK, all)
}

type linkActivityRequest struct {
	ActivityID string `json:"activity_id"`
}

func (h Handlers) LinkActivity(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	var req linkActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ua, err := h.Activities.LinkActivity(c.Request.Context(), sub, req.ActivityID)
	if err != nil {
		respondError(c, "Link activity failed", err)
		return
	}
	c.JSON(http.StatusCreated, ua)
}

func (h Handlers) ListUserActivities(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	list, err := h.Activities.ListUserActivities(c.Request.Context(), sub, c.Query("activity_id"))
	if err != nil {
		respondError(c, "List user activities failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

/* ===================== PLANS ===================== */

type createPlanRequest struct {
	UserActivityID string `json:"user_activity_id"`
	Name           string `json:"name"`
}

func (h Handlers) CreatePlan(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := h.Plans.CreatePlan(c.Request.Context(), sub, req.UserActivityID, req.Name)
	if err != nil {
		respondError(c, "Create plan failed", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h Handlers) ListPlans(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	plans, err := h.Plans.ListPlans(c.Request.Context(), sub, c.Query("user_activity_id"))
	if err != nil {
		respondError(c, "List plans failed", err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h Handlers) GetPlan(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	p, err := h.Plans.PlanByID(c.Request.Context(), sub, c.Param("plan_id"))
	if err != nil {
		respondError(c, "Get plan failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type createGroupRequest struct {
	PlanID    string `json:"plan_id"`
	Name      string `json:"name"`
	DayOfWeek int    `json:"day_of_week"`
}

func (h Handlers) CreateGroup(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	g, err := h.Plans.CreateGroup(c.Request.Context(), sub, req.PlanID, req.Name, req.DayOfWeek)
	if err != nil {
		respondError(c, "Create group failed", err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h Handlers) ListGroups(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	groups, err := h.Plans.ListGroups(c.Request.Context(), sub, c.Param("plan_id"))
	if err != nil {
		respondError(c, "List groups failed", err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

/* ===================== EXERCISES ===================== */

type createExerciseRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TrackingType string `json:"tracking_type"`
}

func (h Handlers) CreateExercise(c *gin.Context) {
	var req createExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	e, err := h.Exercises.CreateExercise(c.Request.Context(), req.Name, req.Description, req.TrackingType)
	if err != nil {
		respondError(c, "Create exercise failed", err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h Handlers) ListExercises(c *gin.Context) {
	all, err := h.Exercises.ListExercises(c.Request.Context())
	if err != nil {
		respondError(c, "List exercises failed", err)
		return
	}
	c.JSON(http.StatusOK, all)
}

type addGroupExerciseRequest struct {
	ExerciseID string `json:"exercise_id"`
	Position   int    `json:"position"`
}

func (h Handlers) AddGroupExercise(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	var req addGroupExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ge, err := h.Exercises.AddToGroup(c.Request.Context(), sub, c.Param("group_id"), req.ExerciseID, req.Position)
	if err != nil {
		respondError(c, "Add group exercise failed", err)
		return
	}
	c.JSON(http.StatusCreated, ge)
}

func (h Handlers) ListGroupExercises(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	list, err := h.Exercises.ListGroupExercises(c.Request.Context(), sub, c.Param("group_id"))
	if err != nil {
		respondError(c, "List group exercises failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

/* ===================== LOGS ===================== */

type createLogRequest struct {
	ExerciseID  string             `json:"exercise_id"`
	PerformedAt time.Time          `json:"performed_at"`
	Metrics     map[string]float64 `json:"metrics"`
}

func (h Handlers) CreateLog(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	var req createLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	l, err := h.Exercises.LogExercise(c.Request.Context(), sub, req.ExerciseID, req.PerformedAt, req.Metrics)
	if err != nil {
		respondError(c, "Create log failed", err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h Handlers) ListLogs(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}
	from, okFrom := parseTimeQuery(c, "from")
	if !okFrom {
		return
	}
	to, okTo := parseTimeQuery(c, "to")
	if !okTo {
		return
	}
	logs, err := h.Exercises.ListLogs(c.Request.Context(), sub, c.Query("exercise_id"), from, to)
	if err != nil {
		respondError(c, "List logs failed", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// WeeklySummary aggregates the caller's logs for the week starting at
// ?week_start=YYYY-MM-DD (default: start of the current week, Monday).
func (h Handlers) WeeklySummary(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		return
	}

	weekStart := startOfWeek(time.Now().UTC())
	if raw := c.Query("week_start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
			return
		}
		weekStart = parsed
	}

	sum, err := h.Exercises.Summary(c.Request.Context(), sub, weekStart)
	if err != nil {
		respondError(c, "Summary failed", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func parseTimeQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": name + " must be RFC3339"})
		return time.Time{}, false
	}
	return t, true
}

func startOfWeek(t time.Time) time.Time {
	day := t.Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7 // Monday-based
	return day.AddDate(0, 0, -offset)
}
