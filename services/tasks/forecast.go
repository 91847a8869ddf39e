package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeForecastPrecompute = "forecast:precompute"

// ForecastPayload is the payload for a demand precompute task.
type ForecastPayload struct {
	HorizonDays int `json:"horizonDays"`
}

// NewForecastPrecomputeTask builds a task that precomputes the demand
// forecast for the next HorizonDays days.
func NewForecastPrecomputeTask(payload ForecastPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal forecast payload: %w", err)
	}
	return asynq.NewTask(TypeForecastPrecompute, b), nil
}
