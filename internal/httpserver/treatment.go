package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"salonpos/internal/money"
	treatmentsvc "salonpos/internal/service/treatment"
)

type createTreatmentRequest struct {
	ClientID string `json:"clientId"`
}

type addLineRequest struct {
	ItemID          string `json:"itemId"`
	Quantity        string `json:"quantity"`
	DiscountPercent string `json:"discountPercent"`
}

type setDiscountRequest struct {
	Discount string `json:"discount"`
}

func createTreatmentHandler(svc *treatmentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)

		var req createTreatmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c, "invalid request body")
			return
		}

		t, err := svc.Create(c.Request.Context(), tenant.ID, treatmentsvc.CreateInput{ClientID: req.ClientID})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toTreatmentView(t))
	}
}

func getTreatmentHandler(svc *treatmentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)
		t, err := svc.Get(c.Request.Context(), tenant.ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toTreatmentView(t))
	}
}

func addLineHandler(svc *treatmentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)

		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c, "invalid request body")
			return
		}

		if req.Quantity == "" {
			req.Quantity = "1"
		}
		quantityMils, err := money.ParseQuantityMils(req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}

		discountPercent := decimal.Zero
		if req.DiscountPercent != "" {
			discountPercent, err = decimal.NewFromString(strings.TrimSpace(req.DiscountPercent))
			if err != nil {
				writeValidationError(c, "discountPercent must be a number")
				return
			}
		}

		line, err := svc.AddLine(c.Request.Context(), tenant.ID, c.Param("id"), treatmentsvc.AddLineInput{
			ItemID:          req.ItemID,
			QuantityMils:    quantityMils,
			DiscountPercent: discountPercent,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

func removeLineHandler(svc *treatmentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)
		if err := svc.RemoveLine(c.Request.Context(), tenant.ID, c.Param("id"), c.Param("lineID")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func setDiscountHandler(svc *treatmentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)

		var req setDiscountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c, "invalid request body")
			return
		}
		cents, err := money.ParseCents(req.Discount)
		if err != nil {
			writeError(c, err)
			return
		}

		if err := svc.SetDiscount(c.Request.Context(), tenant.ID, c.Param("id"), cents); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
