package location

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Create location
// @Description  Registers a new franchise location. Admin only.
// @Tags         locations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateLocationRequest  true  "Location data"
// @Success      201      {object}  Location
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Router       /admin/locations [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}

	c.JSON(http.StatusCreated, loc)
}

// List godoc
// @Summary      List locations
// @Description  Returns all active franchise locations.
// @Tags         locations
// @Produce      json
// @Success      200  {array}  Location
// @Router       /locations [get]
func (h *Handler) List(c *gin.Context) {
	locations, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list locations"})
		return
	}

	c.JSON(http.StatusOK, locations)
}

// Get godoc
// @Summary      Get location
// @Tags         locations
// @Produce      json
// @Param        locationID  path      int  true  "Location ID"
// @Success      200         {object}  Location
// @Failure      404         {object}  gin.H
// @Router       /locations/{locationID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("locationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	loc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	c.JSON(http.StatusOK, loc)
}

// Deactivate godoc
// @Summary      Deactivate location
// @Description  Marks a location as inactive. Admin only.
// @Tags         locations
// @Security     BearerAuth
// @Produce      json
// @Param        locationID  path      int  true  "Location ID"
// @Success      200         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Router       /admin/locations/{locationID} [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("locationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deactivated"})
}
