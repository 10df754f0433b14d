package lead

import (
	"encoding/json"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
)

const (
	eventLeadCreated   = "lead.created"
	eventLeadExpired   = "lead.expired"
	eventLeadWithdrawn = "lead.withdrawn"
)

type LeadEvent struct {
	EventType           string            `json:"event_type"`
	LeadID              string            `json:"lead_id"`
	SalesPageID         string            `json:"sales_page_id"`
	PhoneNumber         string            `json:"phone_number"`
	Source              string            `json:"source"`
	Status              domain.LeadStatus `json:"status"`
	DeadlineAt          *time.Time        `json:"deadline_at,omitempty"`
	ExpiredAt           *time.Time        `json:"expired_at,omitempty"`
	OriginalSalesPageID string            `json:"original_sales_page_id,omitempty"`
	TransferredToUserID string            `json:"transferred_to_user_id,omitempty"`
	TransferredBy       string            `json:"transferred_by,omitempty"`
	OccurredAt          time.Time         `json:"occurred_at"`
}

func newLeadEvent(lead *domain.PhoneLead, eventType string, at time.Time) LeadEvent {
	return LeadEvent{
		EventType:           eventType,
		LeadID:              lead.ID,
		SalesPageID:         lead.SalesPageID,
		PhoneNumber:         lead.PhoneNumber,
		Source:              lead.Source,
		Status:              lead.Status(),
		DeadlineAt:          lead.DeadlineAt,
		ExpiredAt:           lead.ExpiredAt,
		OriginalSalesPageID: lead.OriginalSalesPageID,
		TransferredToUserID: lead.TransferredToUserID,
		TransferredBy:       lead.TransferredBy,
		OccurredAt:          at,
	}
}

// publish never fails the caller, errors are only logged.
func (uc *DefaultLeadUsecase) publish(lead *domain.PhoneLead, eventType string) {
	if uc.publisher == nil || uc.opts.Topic == "" {
		return
	}
	value, err := json.Marshal(newLeadEvent(lead, eventType, uc.now()))
	if err != nil {
		uc.logger.Error("failed to marshal lead event", "lead_id", lead.ID, "event_type", eventType, "error", err)
		return
	}
	msg := domain.Message{Key: []byte(lead.SalesPageID), Value: value}
	if err := uc.publisher.Publish(uc.opts.Topic, msg); err != nil {
		uc.logger.Warn("failed to publish lead event", "lead_id", lead.ID, "event_type", eventType, "error", err)
	}
}
