package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	catalogsvc "salonpos/internal/service/catalog"
)

func searchCatalogHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)

		activeOnly := true
		if v := c.Query("active"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				writeValidationError(c, "active must be a boolean")
				return
			}
			activeOnly = parsed
		}

		entries, err := svc.Search(c.Request.Context(), tenant.ID, c.Query("query"), activeOnly)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": entries, "total": len(entries)})
	}
}
