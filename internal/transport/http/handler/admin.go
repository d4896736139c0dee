package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskkeeper/internal/app"
	"taskkeeper/internal/transport/http/response"
)

// AdminHandler serves the admin-scoped todo endpoints. The role gate in
// the router is backed up by the service-level check, so a wiring mistake
// in the middleware chain cannot open these up.
type AdminHandler struct {
	todoService *app.TodoService
}

func NewAdminHandler(todoService *app.TodoService) *AdminHandler {
	return &AdminHandler{todoService: todoService}
}

func (h *AdminHandler) ListAll(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	todos, err := h.todoService.AdminListAll(caller)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list all todos failed")
		}
		return
	}

	response.OK(c, todos)
}

func (h *AdminHandler) Delete(c *gin.Context) {
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

	if err := h.todoService.AdminDelete(c.Request.Context(), caller, id); err != nil {
		switch {
		case errors.Is(err, app.ErrForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
		case errors.Is(err, app.ErrTodoNotFound):
			response.Error(c, http.StatusNotFound, response.CodeTodoNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "admin delete todo failed")
		}
		return
	}

	response.NoContent(c)
}
