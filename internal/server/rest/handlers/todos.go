package handlers

import (
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/respond"
	"github.com/dmitrijs2005/finplanner/internal/server/services"
	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	todos  *services.TodoService
	logger logging.Logger
}

func NewTodoHandler(todos *services.TodoService, logger logging.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, logger: logger}
}

type createTodoRequest struct {
	Title     string `json:"title" binding:"required"`
	Completed bool   `json:"completed"`
}

type updateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context(), userID(c))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, todos)
}

func (h *TodoHandler) Get(c *gin.Context) {
	todo, err := h.todos.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, todo)
}

func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), userID(c), &models.Todo{Title: req.Title, Completed: req.Completed})
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Created(c, todo)
}

func (h *TodoHandler) Update(c *gin.Context) {
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	todo, err := h.todos.Update(c.Request.Context(), userID(c), c.Param("id"), models.TodoPatch{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, todo)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	if err := h.todos.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Message(c, "Todo deleted")
}
