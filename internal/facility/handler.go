package facility

import (
	"errors"
	"net/http"
	"strconv"

	"campobook/internal/api"
	"campobook/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateFacility godoc
// @Summary      Create facility
// @Description  Creates a facility owned by the authenticated owner.
// @Tags         facilities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateFacilityRequest  true  "Facility data"
// @Success      201      {object}  Facility
// @Failure      400      {object}  api.ErrorResponse
// @Router       /owner/facilities [post]
func (h *Handler) CreateFacility(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_request"})
		return
	}

	facility, err := h.service.CreateFacility(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidSchedule) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid opening hours", Code: "invalid_schedule"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create facility"})
		return
	}

	c.JSON(http.StatusCreated, facility)
}

// ListFacilities godoc
// @Summary      List facilities
// @Tags         facilities
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Facility
// @Failure      500  {object}  api.ErrorResponse
// @Router       /facilities [get]
func (h *Handler) ListFacilities(c *gin.Context) {
	facilities, err := h.service.GetAllFacilities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch facilities"})
		return
	}

	c.JSON(http.StatusOK, facilities)
}

// GetFacility godoc
// @Summary      Get facility
// @Tags         facilities
// @Security     BearerAuth
// @Produce      json
// @Param        facilityID  path      int  true  "Facility ID"
// @Success      200         {object}  Facility
// @Failure      404         {object}  api.ErrorResponse
// @Router       /facilities/{facilityID} [get]
func (h *Handler) GetFacility(c *gin.Context) {
	facilityID, err := strconv.Atoi(c.Param("facilityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid facility ID", Code: "invalid_request"})
		return
	}

	facility, err := h.service.GetFacilityByID(c.Request.Context(), facilityID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Facility not found", Code: "facility_not_found"})
		return
	}

	c.JSON(http.StatusOK, facility)
}

// UpdateOpeningHours godoc
// @Summary      Update opening hours
// @Tags         facilities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        facilityID  path      int                 true  "Facility ID"
// @Param        request     body      UpdateHoursRequest  true  "Weekly schedule"
// @Success      200         {object}  api.MessageResponse
// @Failure      403         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /owner/facilities/{facilityID}/hours [put]
func (h *Handler) UpdateOpeningHours(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	facilityID, err := strconv.Atoi(c.Param("facilityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid facility ID", Code: "invalid_request"})
		return
	}

	var req UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_request"})
		return
	}

	if err := h.service.UpdateOpeningHours(c.Request.Context(), ownerID, facilityID, req.OpeningHours); err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Opening hours updated"})
}

// UpdateStatus godoc
// @Summary      Activate or deactivate facility
// @Tags         facilities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        facilityID  path      int                  true  "Facility ID"
// @Param        request     body      UpdateStatusRequest  true  "Active flag"
// @Success      200         {object}  api.MessageResponse
// @Failure      403         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /owner/facilities/{facilityID}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	facilityID, err := strconv.Atoi(c.Param("facilityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid facility ID", Code: "invalid_request"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "is_active is required", Code: "invalid_request"})
		return
	}

	if err := h.service.SetActive(c.Request.Context(), ownerID, facilityID, *req.IsActive); err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Facility status updated"})
}

// CreateField godoc
// @Summary      Create field
// @Description  Adds a bookable field to a facility, optionally with pricing rules.
// @Tags         facilities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        facilityID  path      int                 true  "Facility ID"
// @Param        request     body      CreateFieldRequest  true  "Field data"
// @Success      201         {object}  Field
// @Failure      403         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /owner/facilities/{facilityID}/fields [post]
func (h *Handler) CreateField(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	facilityID, err := strconv.Atoi(c.Param("facilityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid facility ID", Code: "invalid_request"})
		return
	}

	var req CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_request"})
		return
	}

	field, err := h.service.CreateField(c.Request.Context(), ownerID, facilityID, req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, field)
}

// ListFields godoc
// @Summary      List fields
// @Tags         facilities
// @Security     BearerAuth
// @Produce      json
// @Param        facilityID  path      int  true  "Facility ID"
// @Success      200         {array}   Field
// @Failure      404         {object}  api.ErrorResponse
// @Router       /facilities/{facilityID}/fields [get]
func (h *Handler) ListFields(c *gin.Context) {
	facilityID, err := strconv.Atoi(c.Param("facilityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid facility ID", Code: "invalid_request"})
		return
	}

	fields, err := h.service.GetFieldsByFacility(c.Request.Context(), facilityID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFacilityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Facility not found", Code: "facility_not_found"})
	case errors.Is(err, ErrNotFacilityOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You do not own this facility", Code: "not_authorized"})
	case errors.Is(err, ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid opening hours", Code: "invalid_schedule"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal error"})
	}
}
