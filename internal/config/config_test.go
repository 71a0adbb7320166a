package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet-id")

	cfg, err := Load("testdata/absent.env")
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "MASTER", cfg.Sheets.MasterSheet)
	assert.Equal(t, "RATES", cfg.Sheets.RatesSheet)
	assert.Equal(t, "ESTIMATE", cfg.Sheets.EstimateSheet)
	assert.Equal(t, 0.0, cfg.Estimate.Discount)
	assert.Equal(t, 4.0, cfg.Estimate.SurchargePercent)
	assert.Equal(t, 4, cfg.Estimate.MaxSlots)
	assert.Equal(t, "0 18 * * *", cfg.Digest.CronSchedule)
	assert.Equal(t, "Asia/Kolkata", cfg.Digest.Timezone)
	assert.Empty(t, cfg.Notify.WebhookURL)
	assert.Empty(t, cfg.MongoDB.URI)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet-id")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ESTIMATE_DISCOUNT", "25.5")
	t.Setenv("ESTIMATE_MAX_SLOTS", "2")

	cfg, err := Load("testdata/absent.env")
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 25.5, cfg.Estimate.Discount)
	assert.Equal(t, 2, cfg.Estimate.MaxSlots)
}

func TestLoadRequiresSpreadsheetSettings(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "")

	_, err := Load("testdata/absent.env")
	assert.Error(t, err)
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet-id")
	t.Setenv("ESTIMATE_SURCHARGE_PERCENT", "four")

	_, err := Load("testdata/absent.env")
	assert.Error(t, err)
}

func TestValidateRejectsNegativePolicy(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet-id")
	t.Setenv("ESTIMATE_DISCOUNT", "-1")

	_, err := Load("testdata/absent.env")
	assert.Error(t, err)
}
