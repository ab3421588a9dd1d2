package handlers_test

import (
	"net/http"
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":     "Alice",
		"email":    email,
		"password": "secret123",
		"address":  "1 Home St, Suburbia",
		"phone":    "555-0000",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", registerBody("alice@example.com"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	assert.NotZero(t, body["user_id"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decodeBody(t, w)["token"].(string)

	// The issued token grants access to the caller's own profile.
	w = doJSON(t, r, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", registerBody("alice@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", registerBody("alice@example.com"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This email is already in use", decodeBody(t, w)["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", registerBody("alice@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/orders", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfileChangesPassword(t *testing.T) {
	h, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", registerBody("alice@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)
	token := decodeBody(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodPut, "/api/user/profile", token, map[string]interface{}{
		"name":     "Alice Cooper",
		"email":    "alice@example.com",
		"address":  "2 New St, Downtown",
		"phone":    "555-2222",
		"password": "changed456",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "changed456",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, h.DB.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.Equal(t, "Alice Cooper", user.Name)
}

func TestUserStats(t *testing.T) {
	h, r := newTestServer(t)
	user, token := seedUser(t, h, "alice@example.com")
	italian := seedRestaurant(t, h, "Bella Pasta", "12 Main St, Downtown, City", "Italian")
	sushi := seedRestaurant(t, h, "Sushi Go", "3 River Rd, Uptown, City", "Japanese")

	seedOrder(t, h, user, italian, models.StatusDelivered, nil, 20.00)
	seedOrder(t, h, user, italian, models.StatusPaid, nil, 40.00)
	seedOrder(t, h, user, sushi, models.StatusPending, nil, 99.00) // unsettled, excluded from spend

	w := doJSON(t, r, http.MethodGet, "/api/user/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.Equal(t, float64(3), body["totalOrders"])
	assert.Equal(t, 60.00, body["totalSpent"])
	assert.Equal(t, 30.00, body["averageOrder"])
	assert.Equal(t, "Bella Pasta", body["favoriteRestaurant"])
	assert.Equal(t, "Italian", body["favoriteCuisine"])
}
