package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aquadesk/pkg/models"
	"aquadesk/service"
)

func (h *handlers) localOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Order().LocalByDate(c.Param("date")))
}

func (h *handlers) addLocalOrder(c *gin.Context) {
	var input service.NewOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	order, err := h.svc.Order().AddLocal(c.Request.Context(), c.Param("date"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handlers) localDates(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Order().LocalDates())
}

func (h *handlers) replaceLocalOrders(c *gin.Context) {
	var orders []*models.Order
	if err := c.ShouldBindJSON(&orders); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order list"})
		return
	}
	if err := h.svc.Order().ReplaceLocal(c.Request.Context(), c.Param("date"), orders); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Order().LocalByDate(c.Param("date")))
}

func (h *handlers) updateLocalOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch models.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch payload"})
		return
	}

	order, err := h.svc.Order().UpdateLocal(c.Request.Context(), c.Param("date"), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) removeLocalOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Order().RemoveLocal(c.Request.Context(), c.Param("date"), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) completeLocalOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var report models.DeliveryReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery report"})
		return
	}

	order, err := h.svc.Order().CompleteLocal(c.Request.Context(), c.Param("date"), id, report)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) remoteOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Order().Remote(c.Request.Context()))
}

func (h *handlers) createRemoteOrder(c *gin.Context) {
	var input service.NewOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}
	if err := h.svc.Order().CreateRemote(c.Request.Context(), input); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

type remotePatchForm struct {
	BidonCount int `json:"bidon_count" binding:"required"`
}

func (h *handlers) updateRemoteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var form remotePatchForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bidon_count is required"})
		return
	}
	if err := h.svc.Order().UpdateRemote(c.Request.Context(), id, form.BidonCount); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) deleteRemoteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Order().DeleteRemote(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) startRemoteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Order().StartRemote(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) completeRemoteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var report models.DeliveryReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery report"})
		return
	}
	if err := h.svc.Order().CompleteRemote(c.Request.Context(), id, report); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
