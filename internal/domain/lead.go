package domain

import (
	"context"
	"time"
)

type LeadStatus string

const (
	LeadActive      LeadStatus = "ACTIVE"
	LeadExpired     LeadStatus = "EXPIRED"
	LeadTransferred LeadStatus = "TRANSFERRED"
)

type PhoneLead struct {
	ID          string
	Name        string
	PhoneNumber string
	SalesPageID string
	Source      string
	Country     string
	City        string
	DeviceType  string
	Notes       string
	IPAddress   string
	UserAgent   string

	DeadlineHours *int
	DeadlineAt    *time.Time
	IsExpired     bool
	ExpiredAt     *time.Time

	IsTransferred       bool
	OriginalSalesPageID string
	TransferredToUserID string
	TransferredBy       string
	TransferredAt       *time.Time
	TransferReason      string

	IsContacted bool
	ContactedAt *time.Time
	IsArchived  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status derives the lifecycle state. IsTransferred is authoritative,
// IsExpired alone does not tell a transfer from a natural expiry.
func (l *PhoneLead) Status() LeadStatus {
	switch {
	case l.IsTransferred:
		return LeadTransferred
	case l.IsExpired:
		return LeadExpired
	default:
		return LeadActive
	}
}

// Terminal is true once the lead has left the active pool.
func (l *PhoneLead) Terminal() bool {
	return l.IsExpired || l.IsTransferred
}

// ExpiryDue is the expiry predicate: a deadline exists, it has passed and
// the lead is not expired yet. It has no side effects.
func (l *PhoneLead) ExpiryDue(now time.Time) bool {
	return l.DeadlineAt != nil && !now.Before(*l.DeadlineAt) && !l.IsExpired
}

// LeadTransition is the set of columns written when a lead leaves ACTIVE.
type LeadTransition struct {
	ExpiredAt time.Time

	Transfer            bool
	OriginalSalesPageID string
	TransferredToUserID string
	TransferredBy       string
	TransferReason      string
}

type LeadFilter struct {
	SalesPageID     *string
	OnlyExpired     bool
	OnlyTransferred bool
	Contacted       *bool
	Archived        bool
	Page            int
	Limit           int
}

type PhoneLeadRepository interface {
	CreateLead(ctx context.Context, lead *PhoneLead) error
	GetLeadByID(ctx context.Context, leadID string) (*PhoneLead, error)
	FindActiveLead(ctx context.Context, phoneNumber, salesPageID string) (*PhoneLead, error)
	// Transition moves an active lead to a terminal state. It applies only while
	// is_expired is false and reports whether a row was changed.
	Transition(ctx context.Context, leadID string, t LeadTransition) (bool, error)
	FindDueLeads(ctx context.Context, now time.Time) ([]*PhoneLead, error)
	MarkContacted(ctx context.Context, leadID string, at time.Time) (bool, error)
	SetArchived(ctx context.Context, leadID string, archived bool) error
	ListLeads(ctx context.Context, filter LeadFilter) ([]*PhoneLead, int64, error)
}
