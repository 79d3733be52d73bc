package summary_test

import (
	"shopfloor/domain/summary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePay(t *testing.T) {
	t.Run("should pay unitValue for every net unit above target", func(t *testing.T) {
		assert.Equal(t, 3600.0, summary.ComputePay(6000, 200, 4000, 2))
		assert.Equal(t, 1600.0, summary.ComputePay(5000, 200, 4000, 2))
	})

	t.Run("should pay nothing at or below target", func(t *testing.T) {
		assert.Equal(t, 0.0, summary.ComputePay(4000, 0, 4000, 2))
		assert.Equal(t, 0.0, summary.ComputePay(4100, 200, 4000, 2))
		assert.Equal(t, 0.0, summary.ComputePay(0, 0, 4000, 2))
	})

	t.Run("should never return a negative amount", func(t *testing.T) {
		assert.Equal(t, 0.0, summary.ComputePay(100, 500, 0, 2))
	})
}

func TestPreviewPay(t *testing.T) {
	t.Run("should match the authoritative formula", func(t *testing.T) {
		result := summary.PreviewPay(summary.PayPreviewRequest{
			Output: 6000, Scrap: 200, Target: 4000, UnitValue: 2, OperativeHours: 4.5,
		})
		assert.Equal(t, 5800, result.NetOutput)
		assert.Equal(t, 1800, result.ExtraOutput)
		assert.Equal(t, summary.ComputePay(6000, 200, 4000, 2), result.Amount)
		assert.InDelta(t, 6000.0/4.5, result.HourlyRate, 0.0001)
	})

	t.Run("should clamp extra output and skip the rate without operative hours", func(t *testing.T) {
		result := summary.PreviewPay(summary.PayPreviewRequest{
			Output: 1000, Scrap: 200, Target: 4000, UnitValue: 2,
		})
		assert.Equal(t, 800, result.NetOutput)
		assert.Equal(t, 0, result.ExtraOutput)
		assert.Equal(t, 0.0, result.Amount)
		assert.Equal(t, 0.0, result.HourlyRate)
	})
}
