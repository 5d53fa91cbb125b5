package presentation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatters(t *testing.T) {
	assert.Equal(t, "+23%", CAGR(23))
	assert.Equal(t, "$12.3B", MarketSize(12.3))
	assert.Equal(t, "$7B", MarketSize(7))
	assert.Equal(t, "18mo", Months(18))
	assert.Equal(t, "92%", Percent(92))
	assert.Equal(t, "MARKET VELOCITY (2024-2030)", ChartTitle())
}

func TestFooter(t *testing.T) {
	at := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "GENERATED BY GEMINI-2.5-FLASH // 3/7/2025", Footer("gemini-2.5-flash", at))
	assert.Equal(t, "GENERATED BY UNKNOWN MODEL // 3/7/2025", Footer("", at))
}
