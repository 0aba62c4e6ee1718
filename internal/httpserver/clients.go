package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"salonpos/internal/domain"
)

type clientStore interface {
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

type createClientRequest struct {
	Name     string `json:"name"`
	Contract bool   `json:"contract"`
}

func listClientsHandler(store clientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)
		clients, err := store.ListByTenant(c.Request.Context(), tenant.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": clients, "total": len(clients)})
	}
}

func createClientHandler(store clientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)

		var req createClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c, "invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeValidationError(c, "name required")
			return
		}

		created, err := store.Create(c.Request.Context(), &domain.Client{
			TenantID: tenant.ID,
			Name:     req.Name,
			Contract: req.Contract,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}
