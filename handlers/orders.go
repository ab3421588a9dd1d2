package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"food-ordering-api/dispatch"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	RestaurantID    uint   `json:"restaurant_id" binding:"required"`
	AgentID         *uint  `json:"agent_id"`
	DeliveryAddress string `json:"delivery_address"`
	DeliveryNotes   string `json:"delivery_notes"`
	Items           []struct {
		ItemID   uint `json:"item_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates a new order: computes the total from current menu
// prices, assigns a delivery agent (explicit or by proximity), and
// persists the order with its line items. The whole sequence runs in
// one transaction so the agent availability flip cannot race with a
// concurrent order against the same agent.
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order data"})
		return
	}

	var order models.Order
	var agent *models.DeliveryAgent

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, req.RestaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Restaurant not found")
			}
			return err
		}

		var total float64
		details := make([]models.OrderDetail, 0, len(req.Items))
		for _, reqItem := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, reqItem.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound(fmt.Sprintf("Item %d not found", reqItem.ItemID))
				}
				return err
			}
			total += menuItem.Price * float64(reqItem.Quantity)
			details = append(details, models.OrderDetail{
				ItemID:   menuItem.ID,
				Quantity: reqItem.Quantity,
			})
		}

		selected, err := dispatch.SelectAgent(tx, restaurant.Address, req.AgentID)
		if err != nil {
			if errors.Is(err, dispatch.ErrAgentUnavailable) || errors.Is(err, dispatch.ErrNoAgentAvailable) {
				return badRequest(err.Error())
			}
			return err
		}
		agent = selected

		deliveryAddress := req.DeliveryAddress
		if deliveryAddress == "" {
			var user models.User
			if err := tx.First(&user, userID).Error; err == nil {
				deliveryAddress = user.Address
			}
		}
		if deliveryAddress == "" {
			deliveryAddress = "Address not specified"
		}

		order = models.Order{
			UserID:          userID,
			RestaurantID:    req.RestaurantID,
			AgentID:         &agent.ID,
			OrderDate:       time.Now(),
			TotalAmount:     total,
			Status:          models.StatusPending,
			DeliveryAddress: deliveryAddress,
			DeliveryNotes:   req.DeliveryNotes,
			Details:         details,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Model(&models.DeliveryAgent{}).
			Where("id = ?", agent.ID).
			Update("is_available", false).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id":     order.ID,
		"agent_id":     agent.ID,
		"total_amount": order.TotalAmount,
	})
}

// ListOrders returns the caller's orders, newest first
func (h *Handler) ListOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var orders []models.Order
	h.DB.Preload("Restaurant").Preload("Agent").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type orderDetailRow struct {
	ID       uint    `json:"id"`
	OrderID  uint    `json:"order_id"`
	ItemID   uint    `json:"item_id"`
	Quantity int     `json:"quantity"`
	ItemName string  `json:"item_name"`
	Price    float64 `json:"price"`
}

// ListOrderDetails returns line items for the caller's orders,
// optionally narrowed to a single order
func (h *Handler) ListOrderDetails(c *gin.Context) {
	userID := middleware.GetUserID(c)

	query := h.DB.Table("order_details od").
		Select("od.id, od.order_id, od.item_id, od.quantity, mi.name AS item_name, mi.price").
		Joins("JOIN menu_items mi ON od.item_id = mi.id").
		Joins("JOIN orders o ON od.order_id = o.id").
		Where("o.user_id = ?", userID)

	if orderID := c.Query("order_id"); orderID != "" {
		query = query.Where("od.order_id = ?", orderID)
	}

	var rows []orderDetailRow
	if err := query.Scan(&rows).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "order_details": rows})
}

// ListAvailableAgents returns every delivery agent currently free to
// take an order
func (h *Handler) ListAvailableAgents(c *gin.Context) {
	var agents []models.DeliveryAgent
	h.DB.Where("is_available = ?", true).Find(&agents)
	c.JSON(http.StatusOK, gin.H{"count": len(agents), "agents": agents})
}
