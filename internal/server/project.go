package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	projectdomain "github.com/sitetrack/sitetrack/internal/project/domain"
)

func (s *Server) CreateProject(c *gin.Context) {
	var req projectdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.projectSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListProjects(c *gin.Context) {
	resp, err := s.projectSvc.ListOwned(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (s *Server) GetProjectByID(c *gin.Context) {
	resp, err := s.projectSvc.Get(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
