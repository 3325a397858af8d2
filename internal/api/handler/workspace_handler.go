package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

// WorkspaceHandler handles HTTP requests for workspace operations.
type WorkspaceHandler struct {
	service ports.WorkspaceService
}

func NewWorkspaceHandler(service ports.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{service: service}
}

type createWorkspaceRequest struct {
	Name string `json:"name" validate:"required"`
}

type workspaceResponse struct {
	Workspace *domain.Workspace `json:"workspace"`
}

type workspaceListResponse struct {
	Workspaces []domain.Workspace `json:"workspaces"`
}

// Create handles POST /api/workspaces. The creator receives an admin
// membership which appears in the returned workspace's member list.
//
// @Summary      Create a workspace
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorkspaceRequest  true  "Workspace details"
// @Success      201   {object}  workspaceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/workspaces [post]
func (h *WorkspaceHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ws, err := h.service.CreateWorkspace(c.Request().Context(), req.Name, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, workspaceResponse{Workspace: ws})
}

// List handles GET /api/workspaces. Only workspaces the caller is a member
// of are returned.
//
// @Summary      List my workspaces
// @Tags         workspaces
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  workspaceListResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/workspaces [get]
func (h *WorkspaceHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	workspaces, err := h.service.ListWorkspaces(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, workspaceListResponse{Workspaces: workspaces})
}
