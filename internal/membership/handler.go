package membership

import (
	"errors"
	"net/http"
	"strconv"

	"gymcore/internal/auth"
	"gymcore/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Purchase godoc
// @Summary      Purchase membership
// @Description  Buys a plan for the authenticated user after payment confirmation.
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PurchaseRequest  true  "Purchase details"
// @Success      201      {object}  Membership
// @Failure      400      {object}  gin.H
// @Failure      402      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /memberships/purchase [post]
func (h *Handler) Purchase(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, quote, err := h.service.Purchase(c.Request.Context(), userID, req)
	if err != nil {
		h.respondPurchaseError(c, err)
		return
	}

	metrics.MembershipEventsTotal.WithLabelValues("purchased").Inc()
	c.JSON(http.StatusCreated, gin.H{"membership": m, "quote": quote})
}

// Renew godoc
// @Summary      Renew membership
// @Description  Creates a new membership record with the renewal discount applied.
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PurchaseRequest  true  "Renewal details"
// @Success      201      {object}  Membership
// @Failure      400      {object}  gin.H
// @Failure      402      {object}  gin.H
// @Router       /memberships/renew [post]
func (h *Handler) Renew(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, quote, err := h.service.Renew(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrNoPriorMembership) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No previous membership to renew"})
			return
		}
		h.respondPurchaseError(c, err)
		return
	}

	metrics.MembershipEventsTotal.WithLabelValues("renewed").Inc()
	c.JSON(http.StatusCreated, gin.H{"membership": m, "quote": quote})
}

func (h *Handler) respondPurchaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
	case errors.Is(err, ErrPaymentNotConfirmed):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment was not confirmed"})
	case errors.Is(err, ErrPaymentAmountWrong):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Confirmed payment amount does not match the quote"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete purchase"})
	}
}

// Quote godoc
// @Summary      Quote a plan
// @Description  Returns the price breakdown for a plan without purchasing.
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        planID   path      int     true   "Plan ID"
// @Param        months   query     int     true   "Duration in months"
// @Param        student  query     bool    false  "Apply student discount"
// @Param        renewal  query     bool    false  "Apply renewal discount"
// @Success      200      {object}  pricing.Quote
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /plans/{planID}/quote [get]
func (h *Handler) Quote(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	months, err := strconv.Atoi(c.DefaultQuery("months", "1"))
	if err != nil || months <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
		return
	}

	student := c.Query("student") == "true"
	renewal := c.Query("renewal") == "true"

	quote, err := h.service.QuotePlan(c.Request.Context(), planID, months, renewal, student)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// Suspend godoc
// @Summary      Suspend membership
// @Description  Pauses an active membership until the given date.
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        membershipID  path      int             true  "Membership ID"
// @Param        request       body      SuspendRequest  true  "Suspension details"
// @Success      200           {object}  Membership
// @Failure      400           {object}  gin.H
// @Failure      403           {object}  gin.H
// @Failure      404           {object}  gin.H
// @Failure      409           {object}  gin.H
// @Router       /memberships/{membershipID}/suspend [post]
func (h *Handler) Suspend(c *gin.Context) {
	h.lifecycleAction(c, func(actorID int, actorRole string, membershipID int) (*Membership, error) {
		var req SuspendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, ErrInvalidUntilDate
		}
		return h.service.Suspend(c.Request.Context(), actorID, actorRole, membershipID, req)
	}, "suspended")
}

// Reactivate godoc
// @Summary      Reactivate membership
// @Description  Resumes a suspended membership; the end date is extended by the suspended days.
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        membershipID  path      int  true  "Membership ID"
// @Success      200           {object}  Membership
// @Failure      403           {object}  gin.H
// @Failure      404           {object}  gin.H
// @Failure      409           {object}  gin.H
// @Router       /memberships/{membershipID}/reactivate [post]
func (h *Handler) Reactivate(c *gin.Context) {
	h.lifecycleAction(c, func(actorID int, actorRole string, membershipID int) (*Membership, error) {
		return h.service.Reactivate(c.Request.Context(), actorID, actorRole, membershipID)
	}, "reactivated")
}

// Cancel godoc
// @Summary      Cancel membership
// @Description  Cancels an active or suspended membership. Terminal.
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        membershipID  path      int  true  "Membership ID"
// @Success      200           {object}  Membership
// @Failure      403           {object}  gin.H
// @Failure      404           {object}  gin.H
// @Failure      409           {object}  gin.H
// @Router       /memberships/{membershipID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	h.lifecycleAction(c, func(actorID int, actorRole string, membershipID int) (*Membership, error) {
		return h.service.Cancel(c.Request.Context(), actorID, actorRole, membershipID)
	}, "cancelled")
}

func (h *Handler) lifecycleAction(c *gin.Context, action func(int, string, int) (*Membership, error), event string) {
	actorID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	actorRole, _ := auth.GetUserRole(c)

	membershipID, err := strconv.Atoi(c.Param("membershipID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership ID"})
		return
	}

	m, err := action(actorID, actorRole, membershipID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMembershipNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage your own membership"})
		case errors.Is(err, ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrSuspensionEndInPast), errors.Is(err, ErrInvalidUntilDate), errors.Is(err, ErrNotYetEnded):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update membership"})
		}
		return
	}

	metrics.MembershipEventsTotal.WithLabelValues(event).Inc()
	c.JSON(http.StatusOK, m)
}

// ListMine godoc
// @Summary      List my memberships
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Membership
// @Failure      500  {object}  gin.H
// @Router       /memberships [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	memberships, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch memberships"})
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// ListPlans godoc
// @Summary      List plans
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Plan
// @Failure      500  {object}  gin.H
// @Router       /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// RunSweep godoc
// @Summary      Run lifecycle sweep
// @Description  Reactivates ended suspensions and expires ended memberships. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  SweepSummary
// @Failure      500  {object}  gin.H
// @Router       /admin/sweeps/lifecycle [post]
func (h *Handler) RunSweep(c *gin.Context) {
	summary, err := h.service.RunDailySweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
