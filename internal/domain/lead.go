package domain

import (
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusInProgress LeadStatus = "in_progress"
	LeadStatusRegistered LeadStatus = "registered"
	LeadStatusRejected   LeadStatus = "rejected"
)

const DefaultLeadSource = "website_form"

// Lead is a sales inquiry from a prospective student
type Lead struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Phone           string     `json:"phone" db:"phone"`
	Email           *string    `json:"email,omitempty" db:"email"`
	Course          string     `json:"course" db:"course"`
	Status          LeadStatus `json:"status" db:"status"`
	Source          string     `json:"source" db:"source"`
	Comment         string     `json:"comment" db:"comment"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	NextContactDate *time.Time `json:"next_contact_date,omitempty" db:"next_contact_date"`
}

type CreateLeadRequest struct {
	Name            string     `json:"name" validate:"required,max=255"`
	Phone           string     `json:"phone" validate:"required,max=20"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	Course          string     `json:"course" validate:"required,max=255"`
	Source          string     `json:"source" validate:"max=100"`
	Comment         string     `json:"comment"`
	NextContactDate *time.Time `json:"next_contact_date"`
}

type UpdateLeadStatusRequest struct {
	Status          LeadStatus `json:"status" validate:"required,oneof=new in_progress registered rejected"`
	Comment         *string    `json:"comment"`
	NextContactDate *time.Time `json:"next_contact_date"`
}

type LeadFilter struct {
	Status LeadStatus
	Source string
	Search string
	From   *time.Time
	To     *time.Time
}

type LeadStats struct {
	New        int `json:"new" db:"new"`
	InProgress int `json:"in_progress" db:"in_progress"`
	Registered int `json:"registered" db:"registered"`
	Rejected   int `json:"rejected" db:"rejected"`
	Total      int `json:"total" db:"total"`
}
