package response

import "time"

type LeadResponse struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	PhoneNumber         string     `json:"phoneNumber"`
	SalesPageID         string     `json:"salesPageId"`
	Source              string     `json:"source"`
	Country             string     `json:"country,omitempty"`
	City                string     `json:"city,omitempty"`
	DeviceType          string     `json:"deviceType,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	Status              string     `json:"status"`
	DeadlineHours       *int       `json:"deadlineHours"`
	DeadlineAt          *time.Time `json:"deadlineAt"`
	IsExpired           bool       `json:"isExpired"`
	ExpiredAt           *time.Time `json:"expiredAt"`
	IsTransferred       bool       `json:"isTransferred"`
	OriginalSalesPageID string     `json:"originalSalesPageId,omitempty"`
	TransferredToUserID string     `json:"transferredToUserId,omitempty"`
	TransferredBy       string     `json:"transferredBy,omitempty"`
	TransferredAt       *time.Time `json:"transferredAt"`
	IsContacted         bool       `json:"isContacted"`
	ContactedAt         *time.Time `json:"contactedAt"`
	IsArchived          bool       `json:"isArchived"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type SaveLeadResponse struct {
	Success   bool         `json:"success"`
	Duplicate bool         `json:"duplicate"`
	Lead      LeadResponse `json:"lead"`
}

type LeadDetailResponse struct {
	Success bool         `json:"success"`
	Lead    LeadResponse `json:"lead"`
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

type LeadsResponse struct {
	Success    bool           `json:"success"`
	Leads      []LeadResponse `json:"leads"`
	Pagination Pagination     `json:"pagination"`
}

type WithdrawResponse struct {
	Success     bool         `json:"success"`
	Transferred bool         `json:"transferred"`
	Code        string       `json:"code,omitempty"`
	Message     string       `json:"message"`
	Lead        LeadResponse `json:"lead"`
}

type SweepResponse struct {
	Success bool `json:"success"`
	Checked int  `json:"checked"`
	Expired int  `json:"expired"`
}

type OwnerResponse struct {
	Success     bool      `json:"success"`
	SalesPageID string    `json:"salesPageId"`
	UserID      string    `json:"userId"`
	AssignedBy  string    `json:"assignedBy"`
	AssignedAt  time.Time `json:"assignedAt"`
}
