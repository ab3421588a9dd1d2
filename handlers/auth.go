package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if result := h.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This email is already in use"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Address:      req.Address,
		Phone:        req.Phone,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id": user.ID,
		"token":   token,
	})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"user_id": user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"address": user.Address,
			"phone":   user.Phone,
		},
	})
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UpdateProfile updates the authenticated user's details, optionally
// changing the password
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var taken models.User
	if result := h.DB.Where("email = ? AND id <> ?", req.Email, userID).First(&taken); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This email is already in use"})
		return
	}

	updates := map[string]interface{}{
		"name":    req.Name,
		"email":   req.Email,
		"address": req.Address,
		"phone":   req.Phone,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		updates["password_hash"] = string(hash)
	}

	if err := h.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetUserStats aggregates the caller's ordering history
func (h *Handler) GetUserStats(c *gin.Context) {
	userID := middleware.GetUserID(c)
	settled := []models.OrderStatus{models.StatusPaid, models.StatusDelivered}

	var totalOrders int64
	h.DB.Model(&models.Order{}).Where("user_id = ?", userID).Count(&totalOrders)

	var totalSpent float64
	h.DB.Model(&models.Order{}).
		Where("user_id = ? AND status IN ?", userID, settled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalSpent)

	var averageOrder float64
	h.DB.Model(&models.Order{}).
		Where("user_id = ? AND status IN ?", userID, settled).
		Select("COALESCE(AVG(total_amount), 0)").
		Scan(&averageOrder)

	var favoriteRestaurant *string
	var favRow struct {
		RestaurantName string
	}
	err := h.DB.Table("orders o").
		Select("r.name AS restaurant_name").
		Joins("JOIN restaurants r ON o.restaurant_id = r.id").
		Where("o.user_id = ?", userID).
		Group("o.restaurant_id, r.name").
		Order("COUNT(o.id) DESC, MAX(o.order_date) DESC").
		Limit(1).
		Take(&favRow).Error
	if err == nil && favRow.RestaurantName != "" {
		favoriteRestaurant = &favRow.RestaurantName
	}

	var favoriteCuisine *string
	var cuisineRow struct {
		CuisineType string
	}
	err = h.DB.Table("orders o").
		Select("r.cuisine_type").
		Joins("JOIN restaurants r ON o.restaurant_id = r.id").
		Where("o.user_id = ? AND r.cuisine_type <> ''", userID).
		Group("r.cuisine_type").
		Order("COUNT(o.id) DESC").
		Limit(1).
		Take(&cuisineRow).Error
	if err == nil && cuisineRow.CuisineType != "" {
		favoriteCuisine = &cuisineRow.CuisineType
	}

	c.JSON(http.StatusOK, gin.H{
		"totalOrders":        totalOrders,
		"totalSpent":         totalSpent,
		"favoriteRestaurant": favoriteRestaurant,
		"favoriteCuisine":    favoriteCuisine,
		"averageOrder":       averageOrder,
	})
}
