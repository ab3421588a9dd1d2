package handlers

import (
	"net/http"
	"time"

	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

type restaurantWithRating struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	CuisineType string  `json:"cuisine_type"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}

// ListRestaurants returns all restaurants with their aggregate rating,
// best rated first, optionally filtered by cuisine
func (h *Handler) ListRestaurants(c *gin.Context) {
	query := h.DB.Table("restaurants r").
		Select(`r.id, r.name, r.address, r.cuisine_type,
			COALESCE(AVG(rev.rating), 0) AS avg_rating,
			COUNT(rev.id) AS review_count`).
		Joins("LEFT JOIN reviews rev ON r.id = rev.restaurant_id")

	if cuisine := c.Query("cuisine_type"); cuisine != "" {
		query = query.Where("r.cuisine_type = ?", cuisine)
	}

	var rows []restaurantWithRating
	if err := query.Group("r.id").
		Order("avg_rating DESC, review_count DESC").
		Scan(&rows).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "restaurants": rows})
}

// ListCuisineTypes returns the distinct cuisines on offer
func (h *Handler) ListCuisineTypes(c *gin.Context) {
	var cuisines []string
	h.DB.Model(&models.Restaurant{}).
		Distinct("cuisine_type").
		Where("cuisine_type <> ''").
		Pluck("cuisine_type", &cuisines)
	c.JSON(http.StatusOK, gin.H{"cuisine_types": cuisines})
}

// ListMenuItems returns menu items, optionally for one restaurant
func (h *Handler) ListMenuItems(c *gin.Context) {
	query := h.DB.Model(&models.MenuItem{})
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	var items []models.MenuItem
	query.Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu_items": items})
}

type reviewRow struct {
	ID         uint      `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `json:"review_date"`
	UserID     uint      `json:"user_id"`
	UserName   string    `json:"user_name"`
}

// GetRestaurantReviews returns the latest 50 reviews for a restaurant
// plus its aggregate rating
func (h *Handler) GetRestaurantReviews(c *gin.Context) {
	restaurantID := c.Param("id")

	var rows []reviewRow
	if err := h.DB.Table("reviews rev").
		Select("rev.id, rev.rating, rev.comment, rev.review_date, u.id AS user_id, u.name AS user_name").
		Joins("JOIN users u ON rev.user_id = u.id").
		Where("rev.restaurant_id = ?", restaurantID).
		Order("rev.review_date DESC").
		Limit(50).
		Scan(&rows).Error; err != nil {
		fail(c, err)
		return
	}

	var avgRating float64
	h.DB.Model(&models.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating)

	var total int64
	h.DB.Model(&models.Review{}).Where("restaurant_id = ?", restaurantID).Count(&total)

	c.JSON(http.StatusOK, gin.H{
		"reviews":       rows,
		"avg_rating":    avgRating,
		"total_reviews": total,
	})
}

type restaurantRating struct {
	RestaurantID uint    `json:"restaurant_id"`
	AvgRating    float64 `json:"avg_rating"`
	ReviewCount  int     `json:"review_count"`
}

// GetRestaurantRatings returns aggregate ratings for every restaurant
func (h *Handler) GetRestaurantRatings(c *gin.Context) {
	var rows []restaurantRating
	if err := h.DB.Table("restaurants r").
		Select("r.id AS restaurant_id, COALESCE(AVG(rev.rating), 0) AS avg_rating, COUNT(rev.id) AS review_count").
		Joins("LEFT JOIN reviews rev ON r.id = rev.restaurant_id").
		Group("r.id").
		Scan(&rows).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": rows})
}

type cuisinePreference struct {
	CuisineType string  `json:"cuisine_type"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}

// GetSuggestions recommends restaurants from the caller's well-rated
// cuisines, excluding places already ordered from. Users without
// review history get the overall top-rated restaurants instead.
func (h *Handler) GetSuggestions(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var prefs []cuisinePreference
	h.DB.Table("reviews rev").
		Select("r.cuisine_type, AVG(rev.rating) AS avg_rating, COUNT(rev.id) AS review_count").
		Joins("JOIN restaurants r ON rev.restaurant_id = r.id").
		Where("rev.user_id = ? AND rev.rating >= 4", userID).
		Group("r.cuisine_type").
		Order("avg_rating DESC, review_count DESC").
		Limit(3).
		Scan(&prefs)

	if len(prefs) == 0 {
		var top []restaurantWithRating
		h.DB.Table("restaurants r").
			Select(`r.id, r.name, r.address, r.cuisine_type,
				COALESCE(AVG(rev.rating), 0) AS avg_rating,
				COUNT(rev.id) AS review_count`).
			Joins("LEFT JOIN reviews rev ON r.id = rev.restaurant_id").
			Group("r.id").
			Having("avg_rating > 0").
			Order("avg_rating DESC, review_count DESC").
			Limit(5).
			Scan(&top)

		c.JSON(http.StatusOK, gin.H{
			"type":        "top_rated",
			"message":     "Top-rated restaurants",
			"restaurants": top,
		})
		return
	}

	cuisines := make([]string, 0, len(prefs))
	for _, p := range prefs {
		cuisines = append(cuisines, p.CuisineType)
	}

	var suggested []restaurantWithRating
	h.DB.Table("restaurants r").
		Select(`r.id, r.name, r.address, r.cuisine_type,
			COALESCE(AVG(rev.rating), 0) AS avg_rating,
			COUNT(rev.id) AS review_count`).
		Joins("LEFT JOIN reviews rev ON r.id = rev.restaurant_id").
		Where("r.cuisine_type IN ?", cuisines).
		Where("r.id NOT IN (?)", h.DB.Model(&models.Order{}).
			Distinct("restaurant_id").
			Where("user_id = ?", userID)).
		Group("r.id").
		Order("avg_rating DESC, review_count DESC").
		Limit(5).
		Scan(&suggested)

	c.JSON(http.StatusOK, gin.H{
		"type":        "personalized",
		"message":     "Suggestions based on your preferences",
		"restaurants": suggested,
		"preferences": prefs,
	})
}
