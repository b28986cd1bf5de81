package domain

import (
	"fmt"
	"time"
)

// Dog represents a dog profile owned by a platform user
type Dog struct {
	ID      string
	OwnerID string
	Name    string
	Breed   string
}

// HealthLog represents a single per-dog health journal entry.
// Logs are private to the dog's owner.
type HealthLog struct {
	ID       string
	DogID    string
	Date     time.Time
	Notes    string
	Activity string
	Appetite string
	Mood     string
}

// ValidateHealthLog validates a HealthLog instance
func ValidateHealthLog(h *HealthLog) error {
	if h == nil {
		return fmt.Errorf("health log cannot be nil")
	}
	if h.ID == "" {
		return fmt.Errorf("health log ID is required")
	}
	if h.DogID == "" {
		return fmt.Errorf("health log DogID is required")
	}
	if h.Date.IsZero() {
		return fmt.Errorf("health log Date is required")
	}
	return nil
}
