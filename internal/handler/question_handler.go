package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/mm-grybel/CS50-Study/internal/errors"
	"github.com/mm-grybel/CS50-Study/internal/service"
)

// QuestionHandler handles question listing, CRUD and search endpoints.
type QuestionHandler struct {
	questionService service.QuestionService
}

// NewQuestionHandler creates a new question handler.
func NewQuestionHandler(questionService service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// QuestionRequest represents a question create or update payload.
type QuestionRequest struct {
	QuestionText string `json:"question_text" validate:"required"`
	Answer       string `json:"answer" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Difficulty   int    `json:"difficulty" validate:"required"`
}

// SearchRequest represents a question search payload. An empty term is
// allowed and matches nothing.
type SearchRequest struct {
	SearchTerm string `json:"search_term"`
}

func (r QuestionRequest) toInput() service.QuestionInput {
	return service.QuestionInput{
		QuestionText: r.QuestionText,
		Answer:       r.Answer,
		Category:     r.Category,
		Difficulty:   r.Difficulty,
	}
}

// ListQuestions godoc
// @Summary List questions, paginated and ordered by id
// @Tags questions
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} service.QuestionPage
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.questionService.ListQuestions(c.Request().Context(), page)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// GetQuestion godoc
// @Summary Get a question by id
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} model.Question
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	question, err := h.questionService.GetQuestion(c.Request().Context(), uint(id))
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, question)
}

// AddQuestion godoc
// @Summary Add a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body QuestionRequest true "Question data"
// @Success 201 {object} model.Question
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) AddQuestion(c echo.Context) error {
	var req QuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := CurrentUser(c)
	if user == nil {
		he := apperrors.MapErrorToHTTP(apperrors.ErrAuthRequired)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	question, err := h.questionService.AddQuestion(c.Request().Context(), req.toInput(), user.ID)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		if he.StatusCode == http.StatusInternalServerError {
			he.Message = "An error occurred. Your question could not be added."
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary Update a question, overwriting its mutable fields
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body QuestionRequest true "Question data"
// @Success 200 {object} model.Question
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req QuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	question, err := h.questionService.UpdateQuestion(c.Request().Context(), uint(id), req.toInput())
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		if he.StatusCode == http.StatusInternalServerError {
			he.Message = "An error occurred. The question could not be updated."
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, question)
}

// SearchQuestions godoc
// @Summary Search questions by substring of question text
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SearchRequest true "Search term"
// @Success 200 {object} service.SearchResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions/search [post]
func (h *QuestionHandler) SearchQuestions(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.questionService.SearchQuestions(c.Request().Context(), req.SearchTerm)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// MyQuestions godoc
// @Summary List the authenticated user's questions
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Question
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/questions [get]
func (h *QuestionHandler) MyQuestions(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		he := apperrors.MapErrorToHTTP(apperrors.ErrAuthRequired)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	questions, err := h.questionService.QuestionsByAuthor(c.Request().Context(), user.ID)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, questions)
}
