package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory database. cache=shared keeps the
// pool's connections on the same database; a single open connection
// avoids cross-connection write locks.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := config.OpenDB(dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func newTestServer(t *testing.T) (*handlers.Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := handlers.New(newTestDB(t))
	r := gin.New()
	routes.SetupRoutes(r, h)
	return h, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSONWithHeaders(t *testing.T, r *gin.Engine, method, path, token string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedUser(t *testing.T, h *handlers.Handler, email string) (models.User, string) {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Address:      "1 Home St, Suburbia",
		Phone:        "555-0000",
	}
	require.NoError(t, h.DB.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func seedRestaurant(t *testing.T, h *handlers.Handler, name, address, cuisine string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: name, Address: address, CuisineType: cuisine}
	require.NoError(t, h.DB.Create(&restaurant).Error)
	return restaurant
}

func seedMenuItem(t *testing.T, h *handlers.Handler, restaurantID uint, name string, price float64) models.MenuItem {
	t.Helper()
	item := models.MenuItem{RestaurantID: restaurantID, Name: name, Price: price}
	require.NoError(t, h.DB.Create(&item).Error)
	return item
}

func seedAgent(t *testing.T, h *handlers.Handler, name, location string, available bool) models.DeliveryAgent {
	t.Helper()
	agent := models.DeliveryAgent{
		Name:            name,
		Phone:           "555-1111",
		CurrentLocation: location,
		IsAvailable:     available,
	}
	require.NoError(t, h.DB.Create(&agent).Error)
	// GORM replaces a zero-valued IsAvailable with the column's
	// default:true on insert, so persist the intended value explicitly.
	require.NoError(t, h.DB.Model(&agent).Update("is_available", available).Error)
	agent.IsAvailable = available
	return agent
}

func seedOrder(t *testing.T, h *handlers.Handler, user models.User, restaurant models.Restaurant, status models.OrderStatus, agentID *uint, total float64) models.Order {
	t.Helper()
	order := models.Order{
		UserID:          user.ID,
		RestaurantID:    restaurant.ID,
		AgentID:         agentID,
		TotalAmount:     total,
		Status:          status,
		DeliveryAddress: user.Address,
	}
	require.NoError(t, h.DB.Create(&order).Error)
	return order
}

func seedPaymentMethod(t *testing.T, h *handlers.Handler, userID uint, isDefault bool) models.PaymentMethod {
	t.Helper()
	method := models.PaymentMethod{
		UserID:     userID,
		Provider:   "visa",
		CardNumber: "hash",
		CardLast4:  "4242",
		ExpiryDate: "12/30",
		CardHolder: "Test User",
		IsDefault:  isDefault,
	}
	require.NoError(t, h.DB.Create(&method).Error)
	return method
}
