package handlers

import (
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/respond"
	"github.com/dmitrijs2005/finplanner/internal/server/services"
	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	notes  *services.NoteService
	logger logging.Logger
}

func NewNoteHandler(notes *services.NoteService, logger logging.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger}
}

type createNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.notes.List(c.Request.Context(), userID(c))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, notes)
}

func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, note)
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	note, err := h.notes.Create(c.Request.Context(), userID(c), &models.Note{Title: req.Title, Content: req.Content})
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Created(c, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	note, err := h.notes.Update(c.Request.Context(), userID(c), c.Param("id"), models.NotePatch{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Message(c, "Note deleted")
}
