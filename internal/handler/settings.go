package handler

import (
	"net/http"

	"linktrack/internal/model"
	"linktrack/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingHandler handles admin settings requests
type SettingHandler struct {
	service service.SettingServiceInterface
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(svc service.SettingServiceInterface) *SettingHandler {
	return &SettingHandler{service: svc}
}

// List handles GET /api/settings
// @Summary List all settings
// @Produce json
// @Success 200 {object} Response{data=[]model.Setting}
// @Router /api/settings [get]
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, settings)
}

// Get handles GET /api/settings/:key
// @Summary Fetch one setting by key
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} Response{data=model.Setting}
// @Failure 404 {object} Response
// @Router /api/settings/{key} [get]
func (h *SettingHandler) Get(c *gin.Context) {
	setting, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, setting)
}

// Upsert handles PUT /api/settings/:key
// @Summary Create or replace a setting
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body model.UpsertSettingRequest true "Setting value"
// @Success 200 {object} Response{data=model.Setting}
// @Router /api/settings/{key} [put]
func (h *SettingHandler) Upsert(c *gin.Context) {
	var req model.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	setting, err := h.service.Upsert(c.Request.Context(), c.Param("key"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, setting)
}
