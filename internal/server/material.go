package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	materialdomain "github.com/sitetrack/sitetrack/internal/material/domain"
)

func (s *Server) CreateMaterial(c *gin.Context) {
	var req materialdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ProjectID = c.Param("projectId")

	resp, err := s.materialSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListMaterials(c *gin.Context) {
	lowStock, err := parseOptionalBool(c.Query("low_stock"))
	if err != nil {
		AbortWithError(c, newValidationError("low_stock", "invalid_request", "invalid boolean"))
		return
	}

	req := materialdomain.ListRequest{
		ProjectID: c.Param("projectId"),
	}
	if lowStock != nil {
		req.LowStock = *lowStock
	}

	resp, err := s.materialSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (s *Server) GetMaterialByID(c *gin.Context) {
	resp, err := s.materialSvc.Get(c.Request.Context(), materialdomain.GetRequest{
		ProjectID: c.Param("projectId"),
		ID:        c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateMaterial(c *gin.Context) {
	var req materialdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ProjectID = c.Param("projectId")
	req.ID = c.Param("id")

	resp, err := s.materialSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ArchiveMaterial(c *gin.Context) {
	resp, err := s.materialSvc.Archive(c.Request.Context(), materialdomain.GetRequest{
		ProjectID: c.Param("projectId"),
		ID:        c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
