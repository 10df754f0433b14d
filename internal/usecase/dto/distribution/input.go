package distributiondto

import "github.com/LavaJover/shvark-sales-distribution-service/internal/domain"

type RouteVisitorInput struct {
	// Bucket is the raw cookie value, empty for a fresh visitor
	Bucket      string
	Channel     domain.Channel
	Referrer    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	GCLID       string
	UserAgent   string
	IPAddress   string
}

type PreviewAllocationInput struct {
	Channel domain.Channel
	Total   int
}
