package handlers

import (
	"errors"
	"net/http"
	"time"

	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	OrderID      *uint  `json:"order_id"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

// CreateReview adds a rating for a restaurant. Tied to an order it
// upserts: a second submission for the same (user, order) updates the
// existing review in place.
func (h *Handler) CreateReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review data"})
		return
	}

	if req.OrderID != nil {
		var order models.Order
		err := h.DB.Where("id = ? AND user_id = ? AND restaurant_id = ?",
			*req.OrderID, userID, req.RestaurantID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only review orders that belong to you"})
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
	} else {
		var delivered int64
		h.DB.Model(&models.Order{}).
			Where("user_id = ? AND restaurant_id = ? AND status = ?",
				userID, req.RestaurantID, models.StatusDelivered).
			Count(&delivered)
		if delivered == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "You must have ordered from this restaurant to review it"})
			return
		}
	}

	if req.OrderID != nil {
		var existing models.Review
		err := h.DB.Where("user_id = ? AND order_id = ?", userID, *req.OrderID).First(&existing).Error
		if err == nil {
			if err := h.DB.Model(&existing).Updates(map[string]interface{}{
				"rating":      req.Rating,
				"comment":     req.Comment,
				"review_date": time.Now(),
			}).Error; err != nil {
				fail(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"success":   true,
				"message":   "Review updated",
				"review_id": existing.ID,
			})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, err)
			return
		}
	}

	review := models.Review{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		OrderID:      req.OrderID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		ReviewDate:   time.Now(),
	}
	if err := h.DB.Create(&review).Error; err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Review added successfully",
		"review_id": review.ID,
	})
}
