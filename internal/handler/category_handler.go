package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/mm-grybel/CS50-Study/internal/errors"
	"github.com/mm-grybel/CS50-Study/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents a category creation payload.
type CategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

// ListCategories godoc
// @Summary List categories ordered by id
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Category
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, categories)
}

// AddCategory godoc
// @Summary Add a category with a unique type label
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "Category data"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) AddCategory(c echo.Context) error {
	var req CategoryRequest
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

	category, err := h.categoryService.AddCategory(c.Request().Context(), req.Category, user.ID)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		if he.StatusCode == http.StatusInternalServerError {
			he.Message = "An error occurred. The category could not be added."
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, category)
}
