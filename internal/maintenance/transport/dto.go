// Package transport defines the request and response shapes of the
// maintenance HTTP API.
package transport

import (
	"time"

	"propertyhub_backend/internal/maintenance/domain"

	"github.com/google/uuid"
)

// CreateMaintenanceRequest is the payload for filing a maintenance request.
type CreateMaintenanceRequest struct {
	PropertyID     string    `json:"propertyId" validate:"required,uuid"`
	CategoryID     string    `json:"categoryId" validate:"required,uuid"`
	SubcategoryIDs []string  `json:"subcategoryIds" validate:"required,min=1,dive,uuid"`
	Title          string    `json:"title" validate:"required,max=200"`
	Description    string    `json:"description" validate:"omitempty,max=2000"`
	ScheduleDate   time.Time `json:"scheduleDate" validate:"required"`
}

// RescheduleRequest moves the appointment to a new date, which must be
// strictly in the future.
type RescheduleRequest struct {
	ScheduleDate time.Time `json:"scheduleDate" validate:"required,gt"`
}

// PayRequest carries the landlord's payment for an assigned job. The currency
// is optional and defaults to the platform currency.
type PayRequest struct {
	AmountMinor int64  `json:"amountMinor" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// CancelRequest carries the tenant's cancellation reason.
type CancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// DecisionRequest carries the landlord's decision on a request routed to them.
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVED DECLINED"`
}

// MaintenanceResponse is the API view of a maintenance request.
type MaintenanceResponse struct {
	ID                        uuid.UUID              `json:"id"`
	PropertyID                uuid.UUID              `json:"propertyId"`
	CategoryID                uuid.UUID              `json:"categoryId"`
	SubcategoryIDs            []uuid.UUID            `json:"subcategoryIds"`
	TenantID                  *uuid.UUID             `json:"tenantId,omitempty"`
	LandlordID                *uuid.UUID             `json:"landlordId,omitempty"`
	VendorID                  *uuid.UUID             `json:"vendorId,omitempty"`
	Title                     string                 `json:"title"`
	Description               string                 `json:"description,omitempty"`
	Status                    domain.Status          `json:"status"`
	LandlordDecision          *domain.DecisionStatus `json:"landlordDecision,omitempty"`
	PaymentStatus             domain.PaymentStatus   `json:"paymentStatus"`
	HandleByLandlord          bool                   `json:"handleByLandlord"`
	ScheduleDate              time.Time              `json:"scheduleDate"`
	RescheduleMax             int                    `json:"rescheduleMax"`
	AmountMinor               *int64                 `json:"amountMinor,omitempty"`
	Currency                  string                 `json:"currency"`
	FlagCancellation          bool                   `json:"flagCancellation"`
	CancellationReason        *string                `json:"cancellationReason,omitempty"`
	VendorConsentCancellation bool                   `json:"vendorConsentCancellation"`
	ChatRoomID                *uuid.UUID             `json:"chatRoomId,omitempty"`
	CreatedAt                 time.Time              `json:"createdAt"`
	UpdatedAt                 time.Time              `json:"updatedAt"`
}
