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

type AssignmentHandler struct {
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

func (ah *AssignmentHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	var input services.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	created, err := ah.assignmentService.Create(c.Request.Context(), userID, input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "CREATE_FAILED", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"assignment": created})
}

func (ah *AssignmentHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	id, err := parseAssignmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
		return
	}

	assignment, err := ah.assignmentService.Get(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "ASSIGNMENT_NOT_FOUND", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "GET_FAILED", err)
		return
	}
	RespondOK(c, gin.H{"assignment": assignment})
}

func (ah *AssignmentHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	includeCompleted := c.Query("include_completed") == "true"
	assignments, err := ah.assignmentService.List(c.Request.Context(), userID, includeCompleted)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "LIST_FAILED", err)
		return
	}
	RespondOK(c, gin.H{"assignments": assignments})
}

func (ah *AssignmentHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	id, err := parseAssignmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
		return
	}

	var input services.AssignmentUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	updated, err := ah.assignmentService.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "ASSIGNMENT_NOT_FOUND", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "UPDATE_FAILED", err)
		return
	}
	RespondOK(c, gin.H{"assignment": updated})
}

func (ah *AssignmentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", fmt.Errorf("user not resolved"))
		return
	}

	id, err := parseAssignmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
		return
	}

	if err := ah.assignmentService.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "ASSIGNMENT_NOT_FOUND", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "DELETE_FAILED", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func parseAssignmentID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid assignment id")
	}
	return uint(id), nil
}
