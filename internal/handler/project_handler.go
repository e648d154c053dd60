package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"siteworks/internal/errors"
	"siteworks/internal/service"
)

// ProjectHandler handles client project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects godoc
// @Summary List the caller's projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	projects, err := h.projectService.ListProjects(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{"projects": projects}))
}

// GetProject godoc
// @Summary Get one of the caller's projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid project id"))
	}

	project, err := h.projectService.GetProject(c.Request().Context(), claims.UserID, uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{"project": project}))
}
