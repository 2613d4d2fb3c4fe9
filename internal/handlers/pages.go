package handlers

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errNotFound = "not found"
)

//go:embed web/index.html
var indexHTML []byte

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      App shell
// @Description  Serves the single HTML page for every client route. The page opens /ws?path=<current path>.
// @Tags         pages
// @Produce      html
// @Success      200
// @Router       /articles [get]
func (h *Handler) page(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// notFound hands unknown browser paths to the shell, whose tab runtime
// redirects them home. Anything else gets a JSON 404.
func (h *Handler) notFound(c *gin.Context) {
	if c.Request.Method == http.MethodGet && strings.Contains(c.GetHeader("Accept"), "text/html") {
		h.page(c)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
}
