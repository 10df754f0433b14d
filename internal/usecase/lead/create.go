package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	leaddto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/lead"
)

const (
	sourcePopup       = "popup"
	sourceManual      = "manual"
	defaultManualName = "popup customer"
)

// CreateLead stores a new active lead. When the phone number is already
// active on the sales page the stored lead is returned with ErrDuplicateLead.
func (uc *DefaultLeadUsecase) CreateLead(ctx context.Context, input *leaddto.CreateLeadInput) (*domain.PhoneLead, error) {
	fields := normalizeFields(input.LeadFields)
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	if input.DeadlineHours != nil && *input.DeadlineHours <= 0 {
		return nil, fmt.Errorf("%w: deadline hours must be positive, got %d", domain.ErrInvalidLead, *input.DeadlineHours)
	}

	existing, err := uc.activeLead(ctx, fields.PhoneNumber, fields.SalesPageID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.metrics.RecordDuplicateLead(fields.SalesPageID)
		return existing, domain.ErrDuplicateLead
	}

	now := uc.now()
	lead := &domain.PhoneLead{
		Name:        fields.Name,
		PhoneNumber: fields.PhoneNumber,
		SalesPageID: fields.SalesPageID,
		Source:      fields.Source,
		Country:     fields.Country,
		City:        fields.City,
		DeviceType:  fields.DeviceType,
		Notes:       fields.Notes,
		IPAddress:   fields.IPAddress,
		UserAgent:   fields.UserAgent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.DeadlineHours != nil {
		hours := *input.DeadlineHours
		deadline := now.Add(time.Duration(hours) * time.Hour)
		lead.DeadlineHours = &hours
		lead.DeadlineAt = &deadline
	}

	if err := uc.leadRepo.CreateLead(ctx, lead); err != nil {
		if errors.Is(err, domain.ErrDuplicateLead) {
			// Lost a concurrent capture of the same contact.
			existing, findErr := uc.leadRepo.FindActiveLead(ctx, fields.PhoneNumber, fields.SalesPageID)
			if findErr == nil {
				uc.metrics.RecordDuplicateLead(fields.SalesPageID)
				return existing, domain.ErrDuplicateLead
			}
		}
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	uc.metrics.RecordLeadCreated(lead.SalesPageID, lead.Source)
	uc.logger.Info("lead created", "lead_id", lead.ID, "sales_page_id", lead.SalesPageID, "source", lead.Source)
	uc.publish(lead, eventLeadCreated)
	return lead, nil
}

// CaptureLead is the public form capture, it always runs on the capture deadline.
func (uc *DefaultLeadUsecase) CaptureLead(ctx context.Context, fields *leaddto.LeadFields) (*domain.PhoneLead, error) {
	f := *fields
	if strings.TrimSpace(f.Source) == "" {
		f.Source = sourcePopup
	}
	if strings.TrimSpace(f.DeviceType) == "" {
		f.DeviceType = DeviceType(f.UserAgent)
	}
	hours := uc.opts.CaptureDeadlineHours
	return uc.CreateLead(ctx, &leaddto.CreateLeadInput{LeadFields: f, DeadlineHours: &hours})
}

func (uc *DefaultLeadUsecase) AddManualLead(ctx context.Context, input *leaddto.ManualLeadInput, operator domain.Operator) (*domain.PhoneLead, error) {
	if !operator.IsAdmin() {
		return nil, fmt.Errorf("%w: adding leads manually requires the ADMIN role", domain.ErrForbidden)
	}
	f := input.LeadFields
	if strings.TrimSpace(f.Name) == "" {
		f.Name = defaultManualName
	}
	if strings.TrimSpace(f.Source) == "" {
		f.Source = sourceManual
	}

	create := &leaddto.CreateLeadInput{LeadFields: f}
	if input.AddTimer {
		hours := uc.opts.ManualDeadlineHours
		create.DeadlineHours = &hours
	}
	return uc.CreateLead(ctx, create)
}

// activeLead finds the active lead for the contact, expiring it first when
// its deadline has already passed.
func (uc *DefaultLeadUsecase) activeLead(ctx context.Context, phoneNumber, salesPageID string) (*domain.PhoneLead, error) {
	existing, err := uc.leadRepo.FindActiveLead(ctx, phoneNumber, salesPageID)
	if errors.Is(err, domain.ErrLeadNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up active lead: %w", err)
	}
	if uc.CheckExpiry(existing) {
		if _, err := uc.ExpireLead(ctx, existing); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return existing, nil
}

func normalizeFields(f leaddto.LeadFields) leaddto.LeadFields {
	f.Name = strings.TrimSpace(f.Name)
	f.PhoneNumber = strings.Join(strings.Fields(f.PhoneNumber), "")
	f.SalesPageID = strings.TrimSpace(f.SalesPageID)
	f.Source = strings.TrimSpace(f.Source)
	return f
}

func validateFields(f leaddto.LeadFields) error {
	switch {
	case f.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidLead)
	case f.PhoneNumber == "":
		return fmt.Errorf("%w: phone number is required", domain.ErrInvalidLead)
	case f.SalesPageID == "":
		return fmt.Errorf("%w: sales page id is required", domain.ErrInvalidLead)
	}
	return nil
}

// DeviceType derives a coarse device class from the user agent.
func DeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case ua == "":
		return ""
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return "tablet"
	case strings.Contains(ua, "mobi") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone"):
		return "mobile"
	default:
		return "desktop"
	}
}
