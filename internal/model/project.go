package model

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	_, ok := ProjectStatuses[string(s)]
	return ok
}

type Project struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Code         string        `json:"code"`
	Name         string        `json:"name"`
	CustomerName string        `json:"customer_name,omitempty"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Status       ProjectStatus `json:"status"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

type PartStatus string

const (
	PartStatusPending      PartStatus = "pending"
	PartStatusInProduction PartStatus = "in_production"
	PartStatusQualityCheck PartStatus = "quality_check"
	PartStatusCompleted    PartStatus = "completed"
	PartStatusRejected     PartStatus = "rejected"
)

func (s PartStatus) Valid() bool {
	_, ok := PartStatuses[string(s)]
	return ok
}

// PartDimensions are millimetres; which fields apply depends on the form type.
type PartDimensions struct {
	Width         *float64 `json:"width,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Length        *float64 `json:"length,omitempty"`
	Diameter      *float64 `json:"diameter,omitempty"`
	OuterDiameter *float64 `json:"outer_diameter,omitempty"`
	InnerDiameter *float64 `json:"inner_diameter,omitempty"`
}

type Part struct {
	ID                   uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID            uuid.UUID       `json:"project_id" gorm:"type:uuid"`
	Name                 string          `json:"name"`
	Code                 string          `json:"code"`
	Quantity             int             `json:"quantity"`
	Material             string          `json:"material,omitempty"`
	FormType             string          `json:"form_type,omitempty"`
	Dimensions           *PartDimensions `json:"dimensions,omitempty" gorm:"type:jsonb;serializer:json"`
	ManufacturingMethods []string        `json:"manufacturing_methods" gorm:"type:jsonb;serializer:json"`
	Status               PartStatus      `json:"status"`
	Notes                string          `json:"notes,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

func (Part) TableName() string {
	return "parts"
}
