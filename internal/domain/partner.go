package domain

import (
	"fmt"
	"time"
)

// PartnerStatus represents the directory listing status of a partner
type PartnerStatus string

const (
	PartnerStatusPending  PartnerStatus = "pending"
	PartnerStatusApproved PartnerStatus = "approved"
	PartnerStatusRejected PartnerStatus = "rejected"
)

// PartnerType represents the category of a partner business
type PartnerType string

const (
	PartnerTypeVet      PartnerType = "vet"
	PartnerTypeGroomer  PartnerType = "groomer"
	PartnerTypeTrainer  PartnerType = "trainer"
	PartnerTypeBoarding PartnerType = "boarding"
	PartnerTypeWalker   PartnerType = "walker"
)

// Partner represents a service provider in the partner directory
type Partner struct {
	ID              string
	Name            string
	BusinessName    string
	Bio             string
	Type            PartnerType
	Location        string
	RatingAverage   float64
	ReviewCount     int
	Specializations []string
	Verified        bool
	Emergency       bool
	Online          bool
	Status          PartnerStatus
	CreatedAt       time.Time
}

// ValidatePartner validates a Partner instance
func ValidatePartner(p *Partner) error {
	if p == nil {
		return fmt.Errorf("partner cannot be nil")
	}
	if p.ID == "" {
		return fmt.Errorf("partner ID is required")
	}
	if p.Name == "" && p.BusinessName == "" {
		return fmt.Errorf("partner Name or BusinessName is required")
	}
	if !isValidPartnerStatus(p.Status) {
		return fmt.Errorf("partner Status is invalid: %s", p.Status)
	}
	return nil
}

func isValidPartnerStatus(s PartnerStatus) bool {
	switch s {
	case PartnerStatusPending, PartnerStatusApproved, PartnerStatusRejected:
		return true
	}
	return false
}
