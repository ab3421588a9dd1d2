package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminStats returns dashboard counters and the most recent orders
func (h *Handler) AdminStats(c *gin.Context) {
	var totalOrders, totalRestaurants int64
	h.DB.Model(&models.Order{}).Count(&totalOrders)
	h.DB.Model(&models.Restaurant{}).Count(&totalRestaurants)

	var recent []models.Order
	h.DB.Select("id, order_date, total_amount, status, restaurant_id").
		Order("order_date DESC").
		Limit(5).
		Find(&recent)

	c.JSON(http.StatusOK, gin.H{
		"totalOrders":      totalOrders,
		"totalRestaurants": totalRestaurants,
		"recentOrders":     recent,
	})
}

// ── Restaurants ────────────────────────────────────────────────────

func (h *Handler) AdminListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	h.DB.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

type restaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	CuisineType string `json:"cuisine_type"`
}

func (h *Handler) AdminCreateRestaurant(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	restaurant := models.Restaurant{Name: req.Name, Address: req.Address, CuisineType: req.CuisineType}
	if err := h.DB.Create(&restaurant).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"restaurant_id": restaurant.ID})
}

func (h *Handler) AdminUpdateRestaurant(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result := h.DB.Model(&models.Restaurant{}).Where("id = ?", c.Param("id")).Updates(map[string]interface{}{
		"name":         req.Name,
		"address":      req.Address,
		"cuisine_type": req.CuisineType,
	})
	if result.Error != nil {
		fail(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) AdminDeleteRestaurant(c *gin.Context) {
	if err := h.DB.Delete(&models.Restaurant{}, c.Param("id")).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ── Menu items ─────────────────────────────────────────────────────

type menuItemRow struct {
	ID             uint    `json:"id"`
	RestaurantID   uint    `json:"restaurant_id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	RestaurantName string  `json:"restaurant_name"`
}

func (h *Handler) AdminListMenuItems(c *gin.Context) {
	query := h.DB.Table("menu_items mi").
		Select("mi.id, mi.restaurant_id, mi.name, mi.price, r.name AS restaurant_name").
		Joins("JOIN restaurants r ON mi.restaurant_id = r.id")
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("mi.restaurant_id = ?", restaurantID)
	}
	var rows []menuItemRow
	if err := query.Scan(&rows).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "menu_items": rows})
}

type menuItemRequest struct {
	RestaurantID uint    `json:"restaurant_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"required,gt=0"`
}

func (h *Handler) AdminCreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	item := models.MenuItem{RestaurantID: req.RestaurantID, Name: req.Name, Price: req.Price}
	if err := h.DB.Create(&item).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item_id": item.ID})
}

func (h *Handler) AdminUpdateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result := h.DB.Model(&models.MenuItem{}).Where("id = ?", c.Param("id")).Updates(map[string]interface{}{
		"restaurant_id": req.RestaurantID,
		"name":          req.Name,
		"price":         req.Price,
	})
	if result.Error != nil {
		fail(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) AdminDeleteMenuItem(c *gin.Context) {
	if err := h.DB.Delete(&models.MenuItem{}, c.Param("id")).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ── Users ──────────────────────────────────────────────────────────

func (h *Handler) AdminListUsers(c *gin.Context) {
	var users []models.User
	h.DB.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

type adminUserRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *Handler) AdminCreateUser(c *gin.Context) {
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var existing models.User
	if result := h.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This email is already in use"})
		return
	}
	user := models.User{Name: req.Name, Email: req.Email, Address: req.Address, Phone: req.Phone}
	if err := h.DB.Create(&user).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": user.ID})
}

func (h *Handler) AdminUpdateUser(c *gin.Context) {
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result := h.DB.Model(&models.User{}).Where("id = ?", c.Param("id")).Updates(map[string]interface{}{
		"name":    req.Name,
		"email":   req.Email,
		"address": req.Address,
		"phone":   req.Phone,
	})
	if result.Error != nil {
		fail(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) AdminDeleteUser(c *gin.Context) {
	if err := h.DB.Delete(&models.User{}, c.Param("id")).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ── Delivery agents ────────────────────────────────────────────────

func (h *Handler) AdminListAgents(c *gin.Context) {
	var agents []models.DeliveryAgent
	h.DB.Find(&agents)
	c.JSON(http.StatusOK, gin.H{"count": len(agents), "agents": agents})
}

type agentRequest struct {
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone"`
	CurrentLocation string `json:"current_location"`
	IsAvailable     *bool  `json:"is_available"`
}

func (h *Handler) AdminCreateAgent(c *gin.Context) {
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	agent := models.DeliveryAgent{
		Name:            req.Name,
		Phone:           req.Phone,
		CurrentLocation: req.CurrentLocation,
		IsAvailable:     true,
	}
	if req.IsAvailable != nil {
		agent.IsAvailable = *req.IsAvailable
	}
	if err := h.DB.Create(&agent).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"agent_id": agent.ID})
}

func (h *Handler) AdminUpdateAgent(c *gin.Context) {
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]interface{}{
		"name":             req.Name,
		"phone":            req.Phone,
		"current_location": req.CurrentLocation,
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	result := h.DB.Model(&models.DeliveryAgent{}).Where("id = ?", c.Param("id")).Updates(updates)
	if result.Error != nil {
		fail(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery agent not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) AdminDeleteAgent(c *gin.Context) {
	if err := h.DB.Delete(&models.DeliveryAgent{}, c.Param("id")).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ── Orders ─────────────────────────────────────────────────────────

func (h *Handler) AdminListOrders(c *gin.Context) {
	query := h.DB.Preload("User").Preload("Restaurant").Preload("Agent")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.Order
	query.Order("order_date DESC").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus moves an order through the state machine as
// the admin actor. Marking an order delivered frees its agent in the
// same transaction.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !statemachine.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status: " + string(req.Status)})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Order not found")
			}
			return err
		}

		if err := statemachine.CanTransition(order.Status, req.Status, "admin"); err != nil {
			return unprocessable(err.Error())
		}

		if req.Status == models.StatusDelivered && order.AgentID != nil {
			if err := tx.Model(&models.DeliveryAgent{}).
				Where("id = ?", *order.AgentID).
				Update("is_available", true).Error; err != nil {
				return err
			}
		}

		return tx.Model(&order).Update("status", req.Status).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type reassignAgentRequest struct {
	AgentID uint `json:"agent_id" binding:"required"`
}

// AdminReassignAgent swaps the agent on an order: the previous agent is
// released and the new one, which must be available, is taken.
func (h *Handler) AdminReassignAgent(c *gin.Context) {
	orderID := c.Param("id")

	var req reassignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var agent models.DeliveryAgent
		err := tx.Where("id = ? AND is_available = ?", req.AgentID, true).First(&agent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badRequest("Selected agent is not available")
		}
		if err != nil {
			return err
		}

		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Order not found")
			}
			return err
		}

		if order.AgentID != nil {
			if err := tx.Model(&models.DeliveryAgent{}).
				Where("id = ?", *order.AgentID).
				Update("is_available", true).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&order).Update("agent_id", agent.ID).Error; err != nil {
			return err
		}
		return tx.Model(&agent).Update("is_available", false).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type adminOrderDetailRow struct {
	ID       uint   `json:"id"`
	OrderID  uint   `json:"order_id"`
	ItemID   uint   `json:"item_id"`
	Quantity int    `json:"quantity"`
	ItemName string `json:"item_name"`
}

func (h *Handler) AdminListOrderDetails(c *gin.Context) {
	query := h.DB.Table("order_details od").
		Select("od.id, od.order_id, od.item_id, od.quantity, mi.name AS item_name").
		Joins("JOIN menu_items mi ON od.item_id = mi.id")
	if orderID := c.Query("order_id"); orderID != "" {
		query = query.Where("od.order_id = ?", orderID)
	}
	var rows []adminOrderDetailRow
	if err := query.Scan(&rows).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "order_details": rows})
}
