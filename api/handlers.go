package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
	"aquadesk/service"
	"aquadesk/storage"
)

type handlers struct {
	svc   service.IServiceManager
	prefs storage.IPreferenceStorage
	log   logger.ILogger
}

// respondError maps domain errors to HTTP statuses. Raw upstream errors
// never reach the client body.
func (h *handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrDuplicatePhone):
		c.JSON(http.StatusConflict, gin.H{"error": "phone number already registered"})
	case errors.Is(err, models.ErrEphemeralID):
		c.JSON(http.StatusConflict, gin.H{"error": "order has no stable backend id; refresh and retry"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case strings.HasPrefix(err.Error(), "backend:"):
		h.log.Error("upstream call failed", logger.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable"})
	default:
		h.log.Error("internal error", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pathID parses the order id path segment. Negative ids are accepted:
// they address positionally numbered backend orders, whose mutations get
// a proper conflict response further down.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// --- auth ---

type loginForm struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	session, err := h.svc.Auth().Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// --- reports ---

func (h *handlers) report(c *gin.Context) {
	courierID, _ := strconv.ParseInt(c.Query("courier_id"), 10, 64)
	filter := service.ReportFilter{
		Date:       c.Query("date"),
		Search:     c.Query("search"),
		Status:     c.DefaultQuery("status", service.StatusFilterAll),
		CustomerID: c.Query("customer_id"),
		CourierID:  courierID,
		Payment:    models.PaymentMethod(c.Query("payment")),
	}

	c.JSON(http.StatusOK, h.svc.Report().Build(c.Request.Context(), filter))
}

// --- customers ---

func (h *handlers) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Customer().List(c.Request.Context()))
}

func (h *handlers) createCustomer(c *gin.Context) {
	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer payload"})
		return
	}
	if err := h.svc.Customer().Create(c.Request.Context(), input); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *handlers) updateCustomer(c *gin.Context) {
	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer payload"})
		return
	}
	if err := h.svc.Customer().Update(c.Request.Context(), c.Param("id"), input); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) deleteCustomer(c *gin.Context) {
	if err := h.svc.Customer().Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listCouriers(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Customer().Couriers(c.Request.Context()))
}

// --- preferences ---

type darkModeForm struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (h *handlers) preferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.prefs.Preferences())
}

func (h *handlers) setDarkMode(c *gin.Context) {
	var form darkModeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled flag is required"})
		return
	}
	if err := h.prefs.SetDarkMode(c.Request.Context(), *form.Enabled); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.prefs.Preferences())
}
