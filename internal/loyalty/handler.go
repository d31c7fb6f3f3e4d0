package loyalty

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// GetProfile godoc
// @Summary      My loyalty profile
// @Tags         loyalty
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Profile
// @Failure      500  {object}  gin.H
// @Router       /loyalty/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch loyalty profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListActivities godoc
// @Summary      My loyalty activities
// @Tags         loyalty
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {array}   Activity
// @Failure      500     {object}  gin.H
// @Router       /loyalty/activities [get]
func (h *Handler) ListActivities(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	activities, err := h.service.ListActivities(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}

// ListRewards godoc
// @Summary      Reward catalog
// @Tags         loyalty
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reward
// @Failure      500  {object}  gin.H
// @Router       /loyalty/rewards [get]
func (h *Handler) ListRewards(c *gin.Context) {
	rewards, err := h.service.ListRewards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
		return
	}

	c.JSON(http.StatusOK, rewards)
}

// Redeem godoc
// @Summary      Redeem a reward
// @Description  Debits available points and issues a redemption code.
// @Tags         loyalty
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      RedeemRequest  true  "Reward to redeem"
// @Success      201      {object}  Redemption
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      422      {object}  gin.H
// @Router       /loyalty/redeem [post]
func (h *Handler) Redeem(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	redemption, err := h.service.Redeem(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, ErrInsufficientPoints):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Not enough available points"})
		case errors.Is(err, ErrTierNotMet):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Your tier does not qualify for this reward"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		}
		return
	}

	metrics.LoyaltyRedemptionsTotal.Inc()
	c.JSON(http.StatusCreated, redemption)
}

// LogActivity godoc
// @Summary      Award points
// @Description  Manually awards points to a member. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      LogActivityRequest  true  "Activity to log"
// @Success      201      {object}  Activity
// @Failure      400      {object}  gin.H
// @Router       /admin/loyalty/activities [post]
func (h *Handler) LogActivity(c *gin.Context) {
	var req LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := h.service.LogActivity(c.Request.Context(), req.UserID, req.ActivityType, req.Points, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log activity"})
		return
	}

	metrics.LoyaltyPointsAwardedTotal.Add(float64(req.Points))
	c.JSON(http.StatusCreated, activity)
}

// CancelActivity godoc
// @Summary      Cancel a points activity
// @Description  Excludes the activity's points from the available balance. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        activityID  path      int  true  "Activity ID"
// @Success      200         {object}  Activity
// @Failure      400         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Router       /admin/loyalty/activities/{activityID}/cancel [post]
func (h *Handler) CancelActivity(c *gin.Context) {
	activityID, err := strconv.Atoi(c.Param("activityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	activity, err := h.service.CancelActivity(c.Request.Context(), activityID)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel activity"})
		return
	}

	c.JSON(http.StatusOK, activity)
}

// RunExpiry godoc
// @Summary      Run point expiry sweep
// @Description  Marks activities past their expiry date. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  ExpirySummary
// @Failure      500  {object}  gin.H
// @Router       /admin/sweeps/loyalty [post]
func (h *Handler) RunExpiry(c *gin.Context) {
	summary, err := h.service.ProcessExpiredPoints(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Expiry sweep failed"})
		return
	}

	metrics.LoyaltyPointsExpiredTotal.Add(float64(summary.Expired))
	c.JSON(http.StatusOK, summary)
}
