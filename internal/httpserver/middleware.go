package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"salonpos/internal/domain"
	tenantrepo "salonpos/internal/repository/tenant"
)

type tenantCtxKeyType struct{}

var tenantCtxKey tenantCtxKeyType

// TenantResolver maps a request hostname to a tenant. The host map is
// injected configuration, not ambient state; unknown hosts fall back to
// the default tenant key.
type TenantResolver struct {
	repo       tenantrepo.Repository
	hosts      map[string]string
	defaultKey string
}

func NewTenantResolver(repo tenantrepo.Repository, hosts map[string]string, defaultKey string) *TenantResolver {
	return &TenantResolver{repo: repo, hosts: hosts, defaultKey: defaultKey}
}

// Resolve finds the tenant for a request host (port stripped).
func (r *TenantResolver) Resolve(ctx context.Context, host string) (*domain.Tenant, error) {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	key, ok := r.hosts[strings.ToLower(host)]
	if !ok {
		key = r.defaultKey
	}
	return r.repo.GetByKey(ctx, key)
}

func tenantMiddleware(resolver *TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := resolver.Resolve(c.Request.Context(), c.Request.Host)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "unknown tenant"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "tenant lookup failed"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), tenantCtxKey, t)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func tenantFrom(c *gin.Context) *domain.Tenant {
	t, _ := c.Request.Context().Value(tenantCtxKey).(*domain.Tenant)
	return t
}
