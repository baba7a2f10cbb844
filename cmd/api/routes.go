package main

import (
	"fitness-platform/internal/httpapi"
	"fitness-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
//
// The auth gate is installed on the engine before this runs, so every route
// below except the public set requires a valid access token.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, healthz gin.HandlerFunc) {
	// public
	r.GET("/healthz", healthz)

	// AUTH routes. signup/login/refresh are public; /auth/user is not.
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.GET("/user", h.CurrentUser)
	}

	// ACTIVITY catalog and per-user links.
	r.GET("/activities", h.ListActivities)
	r.POST("/activities", rbac.RequireAdmin(), h.CreateActivity)
	r.GET("/user-activities", h.ListUserActivities)
	r.POST("/user-activities", h.LinkActivity)

	// PLANS and their groups.
	plans := r.Group("/plans")
	{
		plans.POST("", h.CreatePlan)
		plans.GET("", h.ListPlans)
		plans.GET("/:plan_id", h.GetPlan)
		plans.GET("/:plan_id/groups", h.ListGroups)
	}
	r.POST("/exercise-groups", h.CreateGroup)
	r.GET("/exercise-groups/:group_id/exercises", h.ListGroupExercises)
	r.POST("/exercise-groups/:group_id/exercises", h.AddGroupExercise)

	// EXERCISE catalog.
	r.GET("/exercises", h.ListExercises)
	r.POST("/exercises", rbac.RequireAdmin(), h.CreateExercise)

	// LOGS and summaries.
	logs := r.Group("/exercise-logs")
	{
		logs.POST("", h.CreateLog)
		logs.GET("", h.ListLogs)
		logs.GET("/summary", h.WeeklySummary)
	}
}
