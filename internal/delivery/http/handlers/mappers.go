package handlers

import (
	"math"

	distributionResponse "github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/dto/distribution/response"
	leadResponse "github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/dto/lead/response"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/distribution"
)

func toRuleResponse(rule *domain.DistributionRule) distributionResponse.RuleResponse {
	return distributionResponse.RuleResponse{
		ID:             rule.ID,
		SalesPageID:    rule.SalesPageID,
		GoogleWeight:   rule.GoogleWeight,
		OtherWeight:    rule.OtherWeight,
		IsActive:       rule.IsActive,
		DailyLimit:     rule.DailyLimit,
		TotalLimit:     rule.TotalLimit,
		Priority:       rule.Priority,
		AutoDistribute: rule.AutoDistribute,
		CreatedAt:      rule.CreatedAt,
		UpdatedAt:      rule.UpdatedAt,
	}
}

func toRuleResponses(rules []*domain.DistributionRule) []distributionResponse.RuleResponse {
	out := make([]distributionResponse.RuleResponse, len(rules))
	for i, rule := range rules {
		out[i] = toRuleResponse(rule)
	}
	return out
}

func toTotalsResponse(t domain.RuleTotals) distributionResponse.TotalsResponse {
	return distributionResponse.TotalsResponse{
		Google:      round2(t.Google),
		Other:       round2(t.Other),
		GoogleValid: t.GoogleExact,
		OtherValid:  t.OtherExact,
	}
}

func toAllocationEntries(results []distribution.AllocationResult) []distributionResponse.AllocationEntry {
	out := make([]distributionResponse.AllocationEntry, len(results))
	for i, r := range results {
		out[i] = distributionResponse.AllocationEntry{
			SalesPageID: r.ID,
			Weight:      r.Weight,
			ExactShare:  r.ExactShare,
			FloorCount:  r.FloorCount,
			Remainder:   r.Remainder,
			Count:       r.Count,
			Percentage:  r.Percentage,
		}
	}
	return out
}

func toLeadResponse(lead *domain.PhoneLead) leadResponse.LeadResponse {
	return leadResponse.LeadResponse{
		ID:                  lead.ID,
		Name:                lead.Name,
		PhoneNumber:         lead.PhoneNumber,
		SalesPageID:         lead.SalesPageID,
		Source:              lead.Source,
		Country:             lead.Country,
		City:                lead.City,
		DeviceType:          lead.DeviceType,
		Notes:               lead.Notes,
		Status:              string(lead.Status()),
		DeadlineHours:       lead.DeadlineHours,
		DeadlineAt:          lead.DeadlineAt,
		IsExpired:           lead.IsExpired,
		ExpiredAt:           lead.ExpiredAt,
		IsTransferred:       lead.IsTransferred,
		OriginalSalesPageID: lead.OriginalSalesPageID,
		TransferredToUserID: lead.TransferredToUserID,
		TransferredBy:       lead.TransferredBy,
		TransferredAt:       lead.TransferredAt,
		IsContacted:         lead.IsContacted,
		ContactedAt:         lead.ContactedAt,
		IsArchived:          lead.IsArchived,
		CreatedAt:           lead.CreatedAt,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
