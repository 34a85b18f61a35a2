// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of one recommendation request.
type Status string

const (
	StatusOK               Status = "ok"
	StatusNoRecommendation Status = "no_recommendation"
)

// Activity is one entry of the recommendation log.
type Activity struct {
	ID      string    `json:"id"`
	Age     float64   `json:"age"`
	BMI     float64   `json:"bmi"`
	Minutes float64   `json:"minutes"` // zero unless Status is ok
	Status  Status    `json:"status"`
	Profile string    `json:"profile"`
	TS      time.Time `json:"ts"`
	// Enqueued is set by the queue and used for latency metrics only.
	Enqueued time.Time `json:"-"`
}

// NewActivity stamps an entry with a fresh id and the current UTC time.
func NewActivity(age, bmi, minutes float64, status Status, profile string) Activity {
	if status != StatusOK {
		minutes = 0
	}
	return Activity{
		ID:      uuid.NewString(),
		Age:     age,
		BMI:     bmi,
		Minutes: minutes,
		Status:  status,
		Profile: profile,
		TS:      time.Now().UTC(),
	}
}
