package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

func TestLoadEngineConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("sheet.tab", "February")

	config, err := LoadEngineConfig()
	require.NoError(t, err)

	assert.Equal(t, "February", config.TabName)
	assert.Equal(t, DefaultUpcomingSubject, config.UpcomingSubject)
	assert.Equal(t, DefaultCompletedSubject, config.CompletedSubject)
	assert.Equal(t, model.PolicyLastNonBlank, config.Policy)
}

func TestLoadEngineConfigRequiresTab(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := LoadEngineConfig()
	assert.Error(t, err)
}

func TestLoadEngineConfigPolicy(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("sheet.tab", "February")
	viper.Set("completed.policy", "sum-all")

	config, err := LoadEngineConfig()
	require.NoError(t, err)
	assert.Equal(t, model.PolicySumAll, config.Policy)

	viper.Set("completed.policy", "median")
	_, err = LoadEngineConfig()
	assert.Error(t, err)
}

func TestLoadLayoutDefault(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	layout, err := LoadLayout()
	require.NoError(t, err)

	assert.Equal(t, model.DefaultLayout(), layout)
	assert.Len(t, layout.Units, 5)
}

func TestLoadLayoutOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("layout.units", []map[string]any{
		{"name": "  Plano ", "date_col": 44, "completed_col": 46, "scheduled_col": 47},
	})

	layout, err := LoadLayout()
	require.NoError(t, err)

	require.Len(t, layout.Units, 1)
	assert.Equal(t, "plano", layout.Units[0].Name)
	assert.Equal(t, 44, layout.Units[0].DateCol)
	// Base columns keep their defaults when not configured.
	assert.Equal(t, 2, layout.DateCol)
}

func TestLoadMailConfigDefaultsAddress(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("mail.username", "ops@example.com")
	viper.Set("mail.password", "app-password")

	config, err := LoadMailConfig()
	require.NoError(t, err)
	assert.Equal(t, "imap.gmail.com:993", config.Address)
}
