package request

type SaveLeadRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	SalesPageID string `json:"salesPageId" binding:"required"`
	Source      string `json:"source"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Notes       string `json:"notes"`
}

type ManualLeadRequest struct {
	SaveLeadRequest
	AddTimer bool `json:"addTimer"`
}

type WithdrawRequest struct {
	ID string `json:"id" binding:"required"`
}

type UpdateLeadRequest struct {
	IsContacted *bool `json:"isContacted"`
	IsArchived  *bool `json:"isArchived"`
}

type AssignOwnerRequest struct {
	UserID string `json:"userId" binding:"required"`
}
