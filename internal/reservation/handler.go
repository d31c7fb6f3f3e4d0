package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"gymcore/internal/api"
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

// CreateClass godoc
// @Summary      Create group class
// @Description  Creates a capacity-bounded group class. Admin only; the creator takes the first slot.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateClassRequest  true  "Class details"
// @Success      201      {object}  Reservation
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Router       /admin/classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	creatorID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	creatorRole, _ := auth.GetUserRole(c)

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.CreateGroupClass(c.Request.Context(), creatorID, creatorRole, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAdminOnly):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can create group classes"})
		case errors.Is(err, ErrStartNotFuture), errors.Is(err, ErrEndBeforeStart), errors.Is(err, ErrInvalidTimeFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create class"})
		}
		return
	}

	metrics.ReservationsTotal.WithLabelValues(string(TypeGroupClass)).Inc()
	c.JSON(http.StatusCreated, res)
}

// CreateReservation godoc
// @Summary      Create personal reservation
// @Description  Books an instructor or specialized space for a time window. Overlapping confirmed reservations on the same target are rejected.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReservationRequest  true  "Reservation details"
// @Success      201      {object}  Reservation
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /reservations [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.CreateTargeted(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTargetBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "Target already has an overlapping reservation"})
		case errors.Is(err, ErrInvalidType), errors.Is(err, ErrStartNotFuture),
			errors.Is(err, ErrEndBeforeStart), errors.Is(err, ErrInvalidTimeFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		}
		return
	}

	metrics.ReservationsTotal.WithLabelValues(string(req.Type)).Inc()
	c.JSON(http.StatusCreated, res)
}

// Join godoc
// @Summary      Join group class
// @Description  Free for diamond-tier members; others receive 402 with the fee and must use the paid path.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      402      {object}  api.PaymentRequiredResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /classes/{classID}/join [post]
func (h *Handler) Join(c *gin.Context) {
	userID, classID, ok := h.joinParams(c)
	if !ok {
		return
	}

	err := h.service.Join(c.Request.Context(), userID, classID)
	h.respondJoin(c, err)
}

// JoinWithPayment godoc
// @Summary      Join group class with payment
// @Description  Joins after the payment intent is confirmed by the payment provider.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        classID  path      int                     true  "Class ID"
// @Param        request  body      JoinWithPaymentRequest  true  "Payment confirmation"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      402      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /classes/{classID}/join-paid [post]
func (h *Handler) JoinWithPayment(c *gin.Context) {
	userID, classID, ok := h.joinParams(c)
	if !ok {
		return
	}

	var req JoinWithPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.JoinWithPayment(c.Request.Context(), userID, classID, req.PaymentIntentID)
	h.respondJoin(c, err)
}

func (h *Handler) joinParams(c *gin.Context) (userID, classID int, ok bool) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, 0, false
	}

	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return 0, 0, false
	}

	return userID, classID, true
}

func (h *Handler) respondJoin(c *gin.Context, err error) {
	if err == nil {
		metrics.ClassJoinsTotal.WithLabelValues("success").Inc()
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Joined class successfully"})
		return
	}

	var payErr *PaymentRequiredError
	switch {
	case errors.As(err, &payErr):
		metrics.ClassJoinsTotal.WithLabelValues("payment_required").Inc()
		c.JSON(http.StatusPaymentRequired, api.PaymentRequiredResponse{
			Error:    payErr.Error(),
			FeeCents: payErr.FeeCents,
		})
	case errors.Is(err, ErrClassNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
	case errors.Is(err, ErrClassStarted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Class has already started"})
	case errors.Is(err, ErrClassCancelled):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Class has been cancelled"})
	case errors.Is(err, ErrAlreadyJoined):
		c.JSON(http.StatusConflict, gin.H{"error": "You are already enrolled in this class"})
	case errors.Is(err, ErrClassFull):
		metrics.ClassJoinsTotal.WithLabelValues("full").Inc()
		c.JSON(http.StatusConflict, gin.H{"error": "Class is full"})
	case errors.Is(err, ErrPaymentNotConfirmed), errors.Is(err, ErrPaymentTooSmall):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join class"})
	}
}

// Cancel godoc
// @Summary      Cancel reservation
// @Description  Cancels a reservation. Only the owner or an admin may cancel.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  api.MessageResponse
// @Failure      400            {object}  api.ErrorResponse
// @Failure      403            {object}  api.ErrorResponse
// @Failure      404            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	actorID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	actorRole, _ := auth.GetUserRole(c)

	reservationID, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	err = h.service.Cancel(c.Request.Context(), actorID, actorRole, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own reservations"})
		case errors.Is(err, ErrNotFoundOrAlreadyCanceled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation not found or already cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reservation"})
		}
		return
	}

	metrics.ReservationCancellationsTotal.Inc()
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reservation cancelled successfully"})
}

// ListMine godoc
// @Summary      List my reservations
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      500  {object}  api.ErrorResponse
// @Router       /reservations [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reservations, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListClasses godoc
// @Summary      List upcoming classes
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        locationID  path      int  true  "Location ID"
// @Success      200         {array}   ClassWithAvailability
// @Failure      400         {object}  api.ErrorResponse
// @Failure      500         {object}  api.ErrorResponse
// @Router       /locations/{locationID}/classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("locationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	classes, err := h.service.ListUpcomingClasses(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// ListParticipants godoc
// @Summary      List class participants
// @Description  Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {array}   Participant
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/classes/{classID}/participants [get]
func (h *Handler) ListParticipants(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	participants, err := h.service.ListParticipants(c.Request.Context(), classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participants"})
		return
	}

	c.JSON(http.StatusOK, participants)
}
