package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bitsboot/md2blog/internal/catalog"
)

func (s *Server) listPosts(c *gin.Context) {
	cat, ok := s.loadCatalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cat.Visible(c.Query("category")))
}

func (s *Server) getPost(c *gin.Context) {
	cat, ok := s.loadCatalog(c)
	if !ok {
		return
	}
	post, found := cat.BySlug(c.Param("slug"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *Server) relatedPosts(c *gin.Context) {
	cat, ok := s.loadCatalog(c)
	if !ok {
		return
	}
	post, found := cat.BySlug(c.Param("slug"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	n, ok := limitParam(c, catalog.RelatedCount)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cat.Related(post, n))
}

func (s *Server) featuredPosts(c *gin.Context) {
	cat, ok := s.loadCatalog(c)
	if !ok {
		return
	}
	n, ok := limitParam(c, catalog.FeaturedCount)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cat.Featured(n))
}

func (s *Server) listCategories(c *gin.Context) {
	cat, ok := s.loadCatalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cat.Categories())
}

// limitParam reads ?limit=, answering 400 for anything but a
// non-negative integer.
func limitParam(c *gin.Context, def int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return 0, false
	}
	return n, true
}
