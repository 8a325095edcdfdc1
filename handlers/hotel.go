package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	hotelRepo "stayhub/database/repository/hotel"
	"stayhub/models"
	"stayhub/services/hotel"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HotelHandler exposes hotel search and listing management.
type HotelHandler struct {
	hotels hotel.HotelService
	logger *zap.Logger
}

func NewHotelHandler(hotels hotel.HotelService, logger *zap.Logger) *HotelHandler {
	return &HotelHandler{hotels: hotels, logger: logger}
}

func (h *HotelHandler) respondErr(c *gin.Context, err error, action string) {
	if errors.Is(err, hotelRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "hotel not found", "not_found")
		return
	}
	h.logger.Error(action, zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "failed to "+action, "")
}

func parseSearchCriteria(c *gin.Context) hotelRepo.SearchCriteria {
	criteria := hotelRepo.SearchCriteria{
		Destination: c.Query("destination"),
		SortOption:  c.Query("sortOption"),
	}
	criteria.AdultCount, _ = strconv.Atoi(c.Query("adultCount"))
	criteria.ChildCount, _ = strconv.Atoi(c.Query("childCount"))
	criteria.MaxPrice, _ = strconv.ParseInt(c.Query("maxPrice"), 10, 64)
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		criteria.Page = page
	} else {
		criteria.Page = 1
	}
	if v := c.Query("facilities"); v != "" {
		criteria.Facilities = strings.Split(v, ",")
	}
	if v := c.Query("types"); v != "" {
		criteria.Types = strings.Split(v, ",")
	}
	if v := c.Query("stars"); v != "" {
		for _, s := range strings.Split(v, ",") {
			if star, err := strconv.Atoi(s); err == nil {
				criteria.Stars = append(criteria.Stars, star)
			}
		}
	}
	return criteria
}

// Search handles GET /api/hotels/search.
func (h *HotelHandler) Search(c *gin.Context) {
	result, err := h.hotels.Search(c.Request.Context(), parseSearchCriteria(c))
	if err != nil {
		h.respondErr(c, err, "search hotels")
		return
	}

	pages := int64(0)
	if result.PageSize > 0 {
		pages = (result.Total + int64(result.PageSize) - 1) / int64(result.PageSize)
	}
	c.JSON(http.StatusOK, gin.H{
		"data": result.Hotels,
		"pagination": gin.H{
			"total": result.Total,
			"page":  result.Page,
			"pages": pages,
		},
	})
}

// Latest handles GET /api/hotels/latest.
func (h *HotelHandler) Latest(c *gin.Context) {
	limit := 6
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 20 {
		limit = v
	}
	hotels, err := h.hotels.Latest(c.Request.Context(), limit)
	if err != nil {
		h.respondErr(c, err, "fetch latest hotels")
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// GetByID handles GET /api/hotels/:hotelId. Bookings are never exposed on
// the public surface.
func (h *HotelHandler) GetByID(c *gin.Context) {
	found, err := h.hotels.GetByID(c.Request.Context(), c.Param("hotelId"), false)
	if err != nil {
		h.respondErr(c, err, "fetch hotel")
		return
	}
	c.JSON(http.StatusOK, found)
}

// MyHotels handles GET /api/my-hotels.
func (h *HotelHandler) MyHotels(c *gin.Context) {
	hotels, err := h.hotels.GetByOwner(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.respondErr(c, err, "fetch owner hotels")
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// GetMyHotel handles GET /api/my-hotels/:hotelId.
func (h *HotelHandler) GetMyHotel(c *gin.Context) {
	found, err := h.hotels.GetForEdit(c.Request.Context(), c.Param("hotelId"), c.GetString("userID"))
	if err != nil {
		h.respondErr(c, err, "fetch hotel")
		return
	}
	c.JSON(http.StatusOK, found)
}

// CreateHotel handles POST /api/my-hotels.
func (h *HotelHandler) CreateHotel(c *gin.Context) {
	var input hotel.HotelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error(), "invalid_argument")
		return
	}

	newHotel := &models.Hotel{
		OwnerID:       c.GetString("userID"),
		Name:          input.Name,
		City:          input.City,
		Country:       input.Country,
		Description:   input.Description,
		Type:          input.Type,
		AdultCount:    input.AdultCount,
		ChildCount:    input.ChildCount,
		Facilities:    input.Facilities,
		PricePerNight: input.PricePerNight,
		StarRating:    input.StarRating,
		ImageURLs:     input.ImageURLs,
	}
	if err := h.hotels.Create(c.Request.Context(), newHotel); err != nil {
		h.respondErr(c, err, "create hotel")
		return
	}
	c.JSON(http.StatusCreated, newHotel)
}

// UpdateHotel handles PUT /api/my-hotels/:hotelId.
func (h *HotelHandler) UpdateHotel(c *gin.Context) {
	var input hotel.HotelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error(), "invalid_argument")
		return
	}

	updated, err := h.hotels.Update(c.Request.Context(), c.Param("hotelId"), c.GetString("userID"), input)
	if err != nil {
		h.respondErr(c, err, "update hotel")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteHotel handles DELETE /api/my-hotels/:hotelId.
func (h *HotelHandler) DeleteHotel(c *gin.Context) {
	if err := h.hotels.Delete(c.Request.Context(), c.Param("hotelId"), c.GetString("userID")); err != nil {
		h.respondErr(c, err, "delete hotel")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hotel deleted"})
}
