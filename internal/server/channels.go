package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListChannels(c *gin.Context) {
	channels, err := s.channelSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": channels})
}

func (s *Server) GetChannel(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	ch, err := s.channelSvc.Resolve(c.Request.Context(), code)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ch})
}
