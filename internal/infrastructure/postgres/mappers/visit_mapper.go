package mappers

import (
	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/models"
)

func ToGORMVisit(visit *domain.Visit) *models.VisitModel {
	return &models.VisitModel{
		ID:          visit.ID,
		SalesPageID: visit.SalesPageID,
		Channel:     string(visit.Channel),
		Sticky:      visit.Sticky,
		Referrer:    visit.Referrer,
		UTMSource:   visit.UTMSource,
		UTMMedium:   visit.UTMMedium,
		UTMCampaign: visit.UTMCampaign,
		GCLID:       visit.GCLID,
		UserAgent:   visit.UserAgent,
		IPAddress:   visit.IPAddress,
		CreatedAt:   visit.CreatedAt,
	}
}
