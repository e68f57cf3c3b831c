package handler

import (
	"net/http"

	"linktrack/internal/model"
	"linktrack/internal/service"

	"github.com/gin-gonic/gin"
)

// LinkHandler handles link management requests
type LinkHandler struct {
	service service.LinkServiceInterface
}

// NewLinkHandler creates a new LinkHandler
func NewLinkHandler(svc service.LinkServiceInterface) *LinkHandler {
	return &LinkHandler{service: svc}
}

// Create handles POST /api/links
// @Summary Create a short link
// @Accept json
// @Produce json
// @Param request body model.CreateLinkRequest true "Create request"
// @Success 201 {object} Response{data=model.LinkResponse}
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/links [post]
func (h *LinkHandler) Create(c *gin.Context) {
	var req model.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	link, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, link)
}

// List handles GET /api/links
// @Summary List active links, newest first
// @Produce json
// @Success 200 {object} Response{data=[]model.LinkResponse}
// @Router /api/links [get]
func (h *LinkHandler) List(c *gin.Context) {
	links, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, links)
}

// Get handles GET /api/links/:slug
// @Summary Fetch one link, including soft-deleted records
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} Response{data=model.LinkResponse}
// @Failure 404 {object} Response
// @Router /api/links/{slug} [get]
func (h *LinkHandler) Get(c *gin.Context) {
	link, err := h.service.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, link)
}

// Update handles PUT /api/links/:slug
// @Summary Partially update a link; only supplied fields change
// @Accept json
// @Produce json
// @Param slug path string true "Slug"
// @Param request body model.UpdateLinkRequest true "Update request"
// @Success 200 {object} Response{data=model.LinkResponse}
// @Failure 404 {object} Response
// @Router /api/links/{slug} [put]
func (h *LinkHandler) Update(c *gin.Context) {
	var req model.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	link, err := h.service.Update(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, link)
}

// Delete handles DELETE /api/links/:slug (soft delete)
// @Summary Soft-delete a link
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/links/{slug} [delete]
func (h *LinkHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "link deleted")
}

// Head handles HEAD /api/links/:slug, the slug-availability check.
// 200 means taken, 404 means available.
// @Summary Probe slug availability
// @Param slug path string true "Slug"
// @Success 200
// @Failure 404
// @Router /api/links/{slug} [head]
func (h *LinkHandler) Head(c *gin.Context) {
	taken, err := h.service.Available(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Status(statusFor(err))
		return
	}

	if taken {
		c.Status(http.StatusOK)
	} else {
		c.Status(http.StatusNotFound)
	}
}

// Stats handles GET /api/links/:slug/stats
// @Summary Per-link click statistics
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} Response{data=model.LinkStats}
// @Failure 404 {object} Response
// @Router /api/links/{slug}/stats [get]
func (h *LinkHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}
