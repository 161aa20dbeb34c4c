package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/sitetrack/sitetrack/internal/ledger/domain"
	"github.com/sitetrack/sitetrack/pkg/db/pagination"
)

func (s *Server) RegisterTransaction(c *gin.Context) {
	var req ledgerdomain.RegisterTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ProjectID = c.Param("projectId")
	req.MaterialID = c.Param("id")

	if txType := strings.TrimSpace(req.TxType); txType != "" {
		c.Set("tx_type", txType)
	}

	resp, err := s.ledgerSvc.RegisterTransaction(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetStock(c *gin.Context) {
	resp, err := s.ledgerSvc.GetStock(c.Request.Context(), ledgerdomain.GetStockRequest{
		ProjectID:  c.Param("projectId"),
		MaterialID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListTransactions(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_time", "invalid time"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_time", "invalid time"))
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ledgerSvc.ListTransactions(c.Request.Context(), ledgerdomain.ListTransactionsRequest{
		ProjectID:  c.Param("projectId"),
		MaterialID: c.Param("id"),
		From:       from,
		To:         to,
		Page:       page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
