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

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) Register(c *gin.Context) {
	var input services.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	user, err := uh.userService.Register(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "REGISTER_FAILED", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	me, err := uh.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "USER_NOT_FOUND", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "GET_FAILED", err)
		return
	}
	RespondOK(c, gin.H{"me": me})
}

func (uh *UserHandler) UpdateCalendarFeed(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	var body struct {
		CalendarFeedURL string `json:"calendar_feed_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	user, err := uh.userService.UpdateCalendarFeed(c.Request.Context(), userID, body.CalendarFeedURL)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "USER_NOT_FOUND", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "UPDATE_FAILED", err)
		return
	}
	RespondOK(c, gin.H{"me": user})
}
