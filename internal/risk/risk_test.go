package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_SeverityOrder(t *testing.T) {
	assert.True(t, StatusWarn.Meets(StatusSafe))
	assert.True(t, StatusUnsafe.Meets(StatusUnsafeCredentials))
	assert.False(t, StatusSafe.Meets(StatusWarn))

	// The two scoped unsafe statuses are siblings at the same severity.
	assert.True(t, StatusUnsafeCredentials.Meets(StatusUnsafeLocation))
	assert.True(t, StatusUnsafeLocation.Meets(StatusUnsafeCredentials))
	assert.False(t, StatusUnsafeLocation.Meets(StatusUnsafe))
}

func TestCatalog_Describe(t *testing.T) {
	c := NewCatalog()

	t.Run("canned message for known risk", func(t *testing.T) {
		msg := c.Describe(SpecificRisk{Name: RiskMalware, Category: CategoryApplication})
		assert.Contains(t, msg, "Malicious software")
	})

	t.Run("falls back to detail for unknown risk", func(t *testing.T) {
		msg := c.Describe(SpecificRisk{Name: "device.custom", Detail: "Vendor specific issue"})
		assert.Equal(t, "Vendor specific issue", msg)
	})

	t.Run("falls back to name when detail is empty", func(t *testing.T) {
		msg := c.Describe(SpecificRisk{Name: "device.custom"})
		assert.Equal(t, "device.custom", msg)
	})
}
