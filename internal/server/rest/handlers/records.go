package handlers

import (
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/respond"
	"github.com/dmitrijs2005/finplanner/internal/server/services"
	"github.com/dmitrijs2005/finplanner/internal/timex"
	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	records *services.RecordService
	logger  logging.Logger
}

func NewRecordHandler(records *services.RecordService, logger logging.Logger) *RecordHandler {
	return &RecordHandler{records: records, logger: logger}
}

type createRecordRequest struct {
	Type        string      `json:"type" binding:"required,oneof=income expense"`
	Amount      *float64    `json:"amount" binding:"required,gte=0"`
	Description string      `json:"description" binding:"required"`
	Category    string      `json:"category" binding:"required"`
	Date        *timex.Date `json:"date"`
}

type updateRecordRequest struct {
	Type        *string     `json:"type" binding:"omitempty,oneof=income expense"`
	Amount      *float64    `json:"amount" binding:"omitempty,gte=0"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	Date        *timex.Date `json:"date"`
}

func (h *RecordHandler) List(c *gin.Context) {
	records, err := h.records.List(c.Request.Context(), userID(c))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, records)
}

func (h *RecordHandler) Get(c *gin.Context) {
	record, err := h.records.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, record)
}

func (h *RecordHandler) Create(c *gin.Context) {
	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	r := &models.Record{
		Type:        models.RecordType(req.Type),
		Amount:      *req.Amount,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Date != nil {
		r.Date = req.Date.Time
	}

	record, err := h.records.Create(c.Request.Context(), userID(c), r)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Created(c, record)
}

func (h *RecordHandler) Update(c *gin.Context) {
	var req updateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	patch := models.RecordPatch{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Type != nil {
		t := models.RecordType(*req.Type)
		patch.Type = &t
	}
	if req.Date != nil && !req.Date.IsZero() {
		d := req.Date.Time
		patch.Date = &d
	}

	record, err := h.records.Update(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, record)
}

func (h *RecordHandler) Delete(c *gin.Context) {
	if err := h.records.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Message(c, "Record deleted")
}

func (h *RecordHandler) Summary(c *gin.Context) {
	s, err := h.records.Summary(c.Request.Context(), userID(c))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, s)
}

// Categories returns the allowed categories per record type.
func (h *RecordHandler) Categories(c *gin.Context) {
	respond.OK(c, gin.H{
		string(models.RecordIncome):  models.Categories(models.RecordIncome),
		string(models.RecordExpense): models.Categories(models.RecordExpense),
	})
}
