package handler

import (
	"errors"
	"net/http"
	"time"

	"linktrack/internal/model"
	"linktrack/internal/service"

	"github.com/gin-gonic/gin"
)

// RedirectHandler serves the short-link redirect path
type RedirectHandler struct {
	resolver service.ResolverInterface
}

// NewRedirectHandler creates a new RedirectHandler
func NewRedirectHandler(resolver service.ResolverInterface) *RedirectHandler {
	return &RedirectHandler{resolver: resolver}
}

// Redirect handles GET /:slug
// @Summary Redirect to the destination URL with UTM parameters merged
// @Param slug path string true "Slug"
// @Success 302
// @Failure 400 {string} string "HTML error page"
// @Failure 404 {string} string "HTML error page"
// @Failure 410 {string} string "HTML error page"
// @Router /{slug} [get]
func (h *RedirectHandler) Redirect(c *gin.Context) {
	linkSlug := c.Param("slug")

	target, err := h.resolver.Resolve(c.Request.Context(), linkSlug)
	if err != nil {
		h.renderError(c, linkSlug, err)
		return
	}

	// Click recording must never delay the redirect
	go h.resolver.RecordClick(&model.ClickEvent{
		Slug:      linkSlug,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referer:   c.Request.Header.Get("Referer"),
		ClickedAt: time.Now().UTC(),
	})

	c.Redirect(http.StatusFound, target)
}

// renderError maps resolver errors to styled HTML error pages.
// Redirects are browser navigation, so the failure surface is a page,
// not the JSON envelope.
func (h *RedirectHandler) renderError(c *gin.Context, linkSlug string, err error) {
	status := statusFor(err)

	var title, message string
	switch {
	case errors.Is(err, service.ErrInvalidSlug):
		title = "Invalid link"
		message = "That short link is not well formed."
	case errors.Is(err, service.ErrLinkNotFound):
		title = "Link not found"
		message = "That short link does not exist."
	case errors.Is(err, service.ErrLinkExpired):
		title = "Link expired"
		message = "That short link has expired."
	case errors.Is(err, service.ErrLinkDisabled):
		title = "Link disabled"
		message = "That short link has been disabled."
	default:
		title = "Something went wrong"
		message = "An unexpected error occurred. Please try again later."
	}

	c.HTML(status, "error.html", gin.H{
		"status":  status,
		"title":   title,
		"message": message,
		"slug":    linkSlug,
	})
}
