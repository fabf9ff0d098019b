package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricService(t *testing.T) {
	metricsService, err := NewPrometheusService()
	assert.NoError(t, err)
	assert.NotNil(t, metricsService)

	metricsService.SaveAPICall(NewAPICall("get_contacts", "success"))
	metricsService.SaveSendOutcome(NewSendOutcome("text", "error"))
}

func TestMetricServiceToleratesReRegistration(t *testing.T) {
	first, err := NewPrometheusService()
	assert.NoError(t, err)
	assert.NotNil(t, first)

	second, err := NewPrometheusService()
	assert.NoError(t, err)
	assert.NotNil(t, second)
}
