package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Seed:           42,
		NumOrders:      200,
		NumCouriers:    20,
		NumRestaurants: 30,
		NumZones:       5,
		CancelProb:     0.10,
		PromoProb:      0.20,
		DuplicateProb:  0.05,
		LateProb:       0.08,
		SurgeFactor:    2.5,
		SpeedFactor:    60,
		City:           "madrid",
		Date:           "2026-03-02",
		OutputDir:      "./sample_data",
		OutputFormat:   "both",
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), cfg.BaseDate)
}

func TestValidateRejectsNonPositiveCounts(t *testing.T) {
	cfg := validConfig()
	cfg.NumOrders = 0
	assert.ErrorContains(t, cfg.Validate(), "num_orders")

	cfg = validConfig()
	cfg.NumCouriers = -1
	assert.ErrorContains(t, cfg.Validate(), "num_couriers")
}

func TestValidateRejectsOutOfRangeProbabilities(t *testing.T) {
	cfg := validConfig()
	cfg.CancelProb = 1.5
	assert.ErrorContains(t, cfg.Validate(), "cancel_prob")

	cfg = validConfig()
	cfg.LateProb = -0.1
	assert.ErrorContains(t, cfg.Validate(), "late_prob")
}

func TestValidateRejectsBadDate(t *testing.T) {
	cfg := validConfig()
	cfg.Date = "02/03/2026"
	assert.ErrorContains(t, cfg.Validate(), "date")
}

func TestValidateRejectsUnknownCity(t *testing.T) {
	cfg := validConfig()
	cfg.City = "paris"
	assert.ErrorContains(t, cfg.Validate(), "unknown city")
}

func TestValidateRejectsUnknownOutputFormat(t *testing.T) {
	cfg := validConfig()
	cfg.OutputFormat = "csv"
	assert.ErrorContains(t, cfg.Validate(), "output format")
}

func TestValidateDefaultsDateToToday(t *testing.T) {
	cfg := validConfig()
	cfg.Date = ""
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.BaseDate.IsZero())
	assert.Equal(t, 0, cfg.BaseDate.Hour())
}

func TestIsWeekend(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate()) // 2026-03-02 is a Monday
	assert.False(t, cfg.IsWeekend())

	cfg.Weekend = true
	assert.True(t, cfg.IsWeekend())

	cfg = validConfig()
	cfg.Date = "2026-03-07" // Saturday
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsWeekend())
}
