package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationStep_Next(t *testing.T) {
	order := []RegistrationStep{
		StepNotStarted,
		StepName,
		StepBirthDate,
		StepBirthTime,
		StepBirthPlace,
		StepCurrentLocation,
		StepForecastTime,
		StepCompleted,
	}

	for i := 0; i < len(order)-1; i++ {
		assert.Equal(t, order[i+1], order[i].Next(), "after %s", order[i])
	}

	// Завершённый этап терминален
	assert.Equal(t, StepCompleted, StepCompleted.Next())
}

func TestRegistrationStep_IsValid(t *testing.T) {
	assert.True(t, StepNotStarted.IsValid())
	assert.True(t, StepCompleted.IsValid())
	assert.False(t, RegistrationStep("").IsValid())
	assert.False(t, RegistrationStep("waiting_for_name").IsValid())
}
