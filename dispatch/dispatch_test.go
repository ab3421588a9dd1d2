package dispatch

import (
	"testing"

	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedAgent(t *testing.T, db *gorm.DB, name, location string, available bool) models.DeliveryAgent {
	t.Helper()
	agent := models.DeliveryAgent{Name: name, CurrentLocation: location, IsAvailable: available}
	require.NoError(t, db.Create(&agent).Error)
	// GORM replaces a zero-valued IsAvailable with the column's
	// default:true on insert, so persist the intended value explicitly.
	require.NoError(t, db.Model(&agent).Update("is_available", available).Error)
	agent.IsAvailable = available
	return agent
}

func TestAreaFragment(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"12 Main St, Downtown, City", "Downtown"},
		{"12 Main St,Downtown", "Downtown"},
		{"12 Main St", ""},
		{"", ""},
		{"a, , b", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AreaFragment(tt.address), tt.address)
	}
}

func TestSelectAgentExplicit(t *testing.T) {
	db := newTestDB(t)
	available := seedAgent(t, db, "Dana", "Downtown", true)
	busy := seedAgent(t, db, "Remy", "Uptown", false)

	got, err := SelectAgent(db, "12 Main St, Downtown, City", &available.ID)
	require.NoError(t, err)
	assert.Equal(t, available.ID, got.ID)

	_, err = SelectAgent(db, "12 Main St, Downtown, City", &busy.ID)
	assert.ErrorIs(t, err, ErrAgentUnavailable)

	unknown := uint(999)
	_, err = SelectAgent(db, "12 Main St, Downtown, City", &unknown)
	assert.ErrorIs(t, err, ErrAgentUnavailable)
}

func TestSelectAgentPrefersArea(t *testing.T) {
	db := newTestDB(t)
	seedAgent(t, db, "Remy", "Uptown", true)
	near := seedAgent(t, db, "Dana", "Downtown", true)

	got, err := SelectAgent(db, "12 Main St, Downtown, City", nil)
	require.NoError(t, err)
	assert.Equal(t, near.ID, got.ID)
}

func TestSelectAgentFallsBack(t *testing.T) {
	db := newTestDB(t)
	far := seedAgent(t, db, "Remy", "Uptown", true)
	seedAgent(t, db, "Dana", "Downtown", false)

	got, err := SelectAgent(db, "12 Main St, Downtown, City", nil)
	require.NoError(t, err)
	assert.Equal(t, far.ID, got.ID)
}

func TestSelectAgentNoneAvailable(t *testing.T) {
	db := newTestDB(t)
	seedAgent(t, db, "Dana", "Downtown", false)

	_, err := SelectAgent(db, "12 Main St, Downtown, City", nil)
	assert.ErrorIs(t, err, ErrNoAgentAvailable)
}

func TestSelectAgentAddressWithoutArea(t *testing.T) {
	db := newTestDB(t)
	only := seedAgent(t, db, "Dana", "Downtown", true)

	got, err := SelectAgent(db, "12 Main St", nil)
	require.NoError(t, err)
	assert.Equal(t, only.ID, got.ID)
}
