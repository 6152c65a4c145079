package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/dayplanner-backend/internal/middleware"
	"github.com/yungbote/dayplanner-backend/internal/services"
)

type BusHandler struct {
	dayPlanService services.DayPlanService
	busService     services.BusService
}

func NewBusHandler(dayPlanService services.DayPlanService, busService services.BusService) *BusHandler {
	return &BusHandler{
		dayPlanService: dayPlanService,
		busService:     busService,
	}
}

// Today lists the remaining buses for today per route and direction.
// ?filter=true narrows the list to trips that fit around the user's campus
// schedule.
func (bh *BusHandler) Today(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	filterBySchedule := c.Query("filter") == "true"
	timetable, err := bh.dayPlanService.BusesForToday(c.Request.Context(), userID, filterBySchedule)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "USER_NOT_FOUND", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "BUS_LOOKUP_FAILED", err)
		return
	}
	RespondOK(c, timetable)
}

// GetPreferences returns the user's bus timing preferences, falling back to
// the configured defaults when none are stored.
func (bh *BusHandler) GetPreferences(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	pref, err := bh.busService.Preferences(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "BUS_PREFERENCES_FAILED", err)
		return
	}
	RespondOK(c, gin.H{"preferences": pref})
}

func (bh *BusHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	var input services.BusPreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	pref, err := bh.busService.UpdatePreferences(c.Request.Context(), userID, input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BUS_PREFERENCES_UPDATE_FAILED", err)
		return
	}
	RespondOK(c, gin.H{"preferences": pref})
}
