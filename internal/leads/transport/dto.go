package transport

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
type CreateLeadRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone" validate:"required,max=32,phone"`
	PhoneRegion string `json:"phoneRegion,omitempty" validate:"omitempty,region"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof='New Inquiry' 'Contacted' 'Tour Scheduled' 'Tour Completed' 'Application Submitted' 'Approved' 'Leased' 'Not Interested' 'Search Hold' 'Leased Elsewhere'"`
	MoveInDate  string `json:"moveInDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	UnitType    string `json:"unitType,omitempty" validate:"omitempty,oneof=Studio '1 Bedroom' '2 Bedroom' '3 Bedroom'"`
	Occupants   *int   `json:"occupants,omitempty" validate:"omitempty,min=1,max=20"`
	Pets        string `json:"pets,omitempty" validate:"max=500"`
	Notes       string `json:"notes,omitempty" validate:"max=5000"`
	Address     string `json:"address,omitempty" validate:"max=500"`
	Employer    string `json:"employer,omitempty" validate:"max=200"`
	MoveReason  string `json:"moveReason,omitempty" validate:"omitempty,oneof='Job Relocation' 'Upsizing' 'Downsizing' 'First Time Renter' 'Closer to Work' 'Other'"`
}

type UpdateLeadRequest struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email       *string      `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone       *string      `json:"phone,omitempty" validate:"omitempty,max=32,phone"`
	PhoneRegion string       `json:"phoneRegion,omitempty" validate:"omitempty,region"`
	Status      *string      `json:"status,omitempty" validate:"omitempty,oneof='New Inquiry' 'Contacted' 'Tour Scheduled' 'Tour Completed' 'Application Submitted' 'Approved' 'Leased' 'Not Interested' 'Search Hold' 'Leased Elsewhere'"`
	MoveInDate  OptionalDate `json:"moveInDate,omitempty" validate:"-"`
	UnitType    *string      `json:"unitType,omitempty" validate:"omitempty,oneof=Studio '1 Bedroom' '2 Bedroom' '3 Bedroom'"`
	Occupants   *int         `json:"occupants,omitempty" validate:"omitempty,min=1,max=20"`
	Pets        *string      `json:"pets,omitempty" validate:"omitempty,max=500"`
	Notes       *string      `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Address     *string      `json:"address,omitempty" validate:"omitempty,max=500"`
	Employer    *string      `json:"employer,omitempty" validate:"omitempty,max=200"`
	MoveReason  *string      `json:"moveReason,omitempty" validate:"omitempty,oneof='Job Relocation' 'Upsizing' 'Downsizing' 'First Time Renter' 'Closer to Work' 'Other'"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='New Inquiry' 'Contacted' 'Tour Scheduled' 'Tour Completed' 'Application Submitted' 'Approved' 'Leased' 'Not Interested' 'Search Hold' 'Leased Elsewhere'"`
}

type CallQRRequest struct {
	Size int `form:"size" validate:"omitempty,min=128,max=1024"`
}

type ListLeadsRequest struct {
	Search    string `form:"search" validate:"max=200"`
	Status    string `form:"status" validate:"max=50"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=name status createdAt moveInDate"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// Response DTOs
type LeadResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PhoneDisplay string    `json:"phoneDisplay"`
	Status       string    `json:"status"`
	MoveInDate   *string   `json:"moveInDate"`
	UnitType     string    `json:"unitType"`
	Occupants    int       `json:"occupants"`
	Pets         string    `json:"pets"`
	Notes        string    `json:"notes"`
	Address      string    `json:"address"`
	Employer     string    `json:"employer"`
	MoveReason   string    `json:"moveReason"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LeadListResponse carries one page of matches. Total counts matching leads and
// Overall counts every lead, for "Showing Total of Overall".
type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Overall    int            `json:"overall"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

type StatusesResponse struct {
	Statuses []string `json:"statuses"`
}
