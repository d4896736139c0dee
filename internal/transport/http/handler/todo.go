package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskkeeper/internal/app"
	"taskkeeper/internal/transport/http/middleware"
	"taskkeeper/internal/transport/http/response"
)

type TodoHandler struct {
	todoService *app.TodoService
}

type TodoRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=128"`
	Description string `json:"description" binding:"required,min=3,max=100"`
	Priority    int    `json:"priority" binding:"required,gte=1,lte=5"`
	Complete    bool   `json:"complete"`
}

func NewTodoHandler(todoService *app.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) List(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	todos, err := h.todoService.List(c.Request.Context(), caller)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list todos failed")
		}
		return
	}

	response.OK(c, todos)
}

func (h *TodoHandler) Get(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	id, ok := todoIDFromPath(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid todo id")
		return
	}

	todo, err := h.todoService.Get(caller, id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTodoNotFound):
			response.Error(c, http.StatusNotFound, response.CodeTodoNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get todo failed")
		}
		return
	}

	response.OK(c, todo)
}

func (h *TodoHandler) Create(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	todo, err := h.todoService.Create(c.Request.Context(), caller, app.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create todo failed")
		}
		return
	}

	response.Created(c, todo)
}

func (h *TodoHandler) Update(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	id, ok := todoIDFromPath(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid todo id")
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.todoService.Update(c.Request.Context(), caller, id, app.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTodoNotFound):
			response.Error(c, http.StatusNotFound, response.CodeTodoNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update todo failed")
		}
		return
	}

	response.NoContent(c)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	id, ok := todoIDFromPath(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid todo id")
		return
	}

	if err := h.todoService.Delete(c.Request.Context(), caller, id); err != nil {
		switch {
		case errors.Is(err, app.ErrTodoNotFound):
			response.Error(c, http.StatusNotFound, response.CodeTodoNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete todo failed")
		}
		return
	}

	response.NoContent(c)
}

func todoIDFromPath(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

func identityFromContext(c *gin.Context) (app.Identity, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return app.Identity{}, false
	}
	userID, ok := userIDAny.(uint)
	if !ok || userID == 0 {
		return app.Identity{}, false
	}

	username, _ := c.Get(middleware.ContextUsernameKey)
	usernameStr, _ := username.(string)
	role, _ := c.Get(middleware.ContextRoleKey)
	roleStr, _ := role.(string)

	return app.Identity{
		ID:       userID,
		Username: usernameStr,
		Role:     roleStr,
	}, true
}
