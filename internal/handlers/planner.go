package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/dayplanner-backend/internal/middleware"
	"github.com/yungbote/dayplanner-backend/internal/services"
)

type PlannerHandler struct {
	dayPlanService services.DayPlanService
}

func NewPlannerHandler(dayPlanService services.DayPlanService) *PlannerHandler {
	return &PlannerHandler{dayPlanService: dayPlanService}
}

// GetDayPlan serves today's plan. ?refresh=true bypasses the cached copy.
func (ph *PlannerHandler) GetDayPlan(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	refresh := c.Query("refresh") == "true"
	result, err := ph.dayPlanService.GetDayPlan(c.Request.Context(), userID, refresh)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "USER_NOT_FOUND", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "DAY_PLAN_FAILED", err)
		return
	}
	RespondOK(c, result)
}

// AutoscheduleToday runs the planning agent for a single assignment.
func (ph *PlannerHandler) AutoscheduleToday(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	assignmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", fmt.Errorf("invalid assignment id"))
		return
	}

	result, err := ph.dayPlanService.AutoscheduleToday(c.Request.Context(), userID, uint(assignmentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "ASSIGNMENT_NOT_FOUND", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "AUTOSCHEDULE_FAILED", err)
		return
	}
	RespondOK(c, result)
}
