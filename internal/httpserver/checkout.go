package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"salonpos/internal/money"
	checkoutsvc "salonpos/internal/service/checkout"
)

type addAllocationRequest struct {
	MethodID     string `json:"methodId"`
	Amount       string `json:"amount"`
	Installments int    `json:"installments"`
}

type addAllocationResponse struct {
	Allocation allocationView `json:"allocation"`
	Change     amountView     `json:"change"`
	Remaining  amountView     `json:"remaining"`
	Suggested  amountView     `json:"suggested"`
}

func openCheckoutHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)
		session, err := svc.Open(c.Request.Context(), tenant.ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toSessionView(session))
	}
}

func getCheckoutHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)
		session, err := svc.Get(tenant.ID, c.Param("sid"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toSessionView(session))
	}
}

func addAllocationHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)

		var req addAllocationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c, "invalid request body")
			return
		}
		amountCents, err := money.ParseCents(req.Amount)
		if err != nil {
			writeError(c, err)
			return
		}
		// An omitted installments field means a single charge.
		if req.Installments == 0 {
			req.Installments = 1
		}

		result, err := svc.AddAllocation(c.Request.Context(), tenant.ID, c.Param("sid"), req.MethodID, amountCents, req.Installments)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, addAllocationResponse{
			Allocation: allocationView{
				ID:           result.Allocation.ID,
				MethodID:     result.Allocation.MethodID,
				MethodName:   result.Allocation.MethodName,
				Kind:         result.Allocation.Kind,
				Amount:       amount(result.Allocation.AmountCents),
				Installments: result.Allocation.Installments,
			},
			Change:    amount(result.ChangeCents),
			Remaining: amount(result.RemainingCents),
			Suggested: amount(result.SuggestedCents),
		})
	}
}

func removeAllocationHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)
		if err := svc.RemoveAllocation(tenant.ID, c.Param("sid"), c.Param("aid")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func finalizeCheckoutHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)
		if err := svc.Finalize(c.Request.Context(), tenant.ID, c.Param("sid")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func cancelCheckoutHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)
		if err := svc.Cancel(tenant.ID, c.Param("sid")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
