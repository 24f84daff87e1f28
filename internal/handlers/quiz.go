package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type QuizHandler struct {
	log         *logger.Logger
	quizService services.QuizService
}

func NewQuizHandler(log *logger.Logger, quizService services.QuizService) *QuizHandler {
	return &QuizHandler{
		log:         log.With("handler", "QuizHandler"),
		quizService: quizService,
	}
}

func quizIDParam(c *gin.Context) (uuid.UUID, bool) {
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "quiz_not_found", services.ErrQuizNotFound)
		return uuid.Nil, false
	}
	return quizID, true
}

// POST /api/quizzes
// POST /api/quizzes/generate
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req services.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Title == "" || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and prompt are required"})
		return
	}
	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create quiz", "error", err)
		RespondError(c, http.StatusInternalServerError, "quiz_create_failed", err)
		return
	}
	RespondOK(c, quiz)
}

// GET /api/quizzes?skip=&limit=
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	summaries, total, err := h.quizService.ListQuizzes(c.Request.Context(), skip, limit)
	if err != nil {
		h.log.Error("Failed to list quizzes", "error", err)
		RespondError(c, http.StatusInternalServerError, "quiz_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"quizzes": summaries, "total": total})
}

// GET /api/quizzes/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}
	quiz, err := h.quizService.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			RespondError(c, http.StatusNotFound, "quiz_not_found", err)
			return
		}
		h.log.Error("Failed to get quiz", "error", err)
		RespondError(c, http.StatusInternalServerError, "quiz_get_failed", err)
		return
	}
	RespondOK(c, quiz)
}

// PUT /api/quizzes/:id
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}
	var req services.QuizUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	quiz, err := h.quizService.UpdateQuiz(c.Request.Context(), quizID, &req)
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			RespondError(c, http.StatusNotFound, "quiz_not_found", err)
			return
		}
		h.log.Error("Failed to update quiz", "error", err)
		RespondError(c, http.StatusInternalServerError, "quiz_update_failed", err)
		return
	}
	RespondOK(c, quiz)
}

// DELETE /api/quizzes/:id
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}
	if err := h.quizService.DeleteQuiz(c.Request.Context(), quizID); err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			RespondError(c, http.StatusNotFound, "quiz_not_found", err)
			return
		}
		h.log.Error("Failed to delete quiz", "error", err)
		RespondError(c, http.StatusInternalServerError, "quiz_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "Quiz deleted successfully"})
}
