package handlers

import (
	"net/url"
	"strings"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
)

var googleReferrerMarkers = []string{
	"google.com",
	"googleadservices.com",
	"g.doubleclick.net",
	"googlesyndication.com",
	"gclid=",
}

// ClassifyChannel tells google ads traffic from everything else. An explicit
// channel query parameter wins over detection.
func ClassifyChannel(query url.Values, referrer string) domain.Channel {
	if channel, ok := domain.ParseChannel(query.Get("channel")); ok {
		return channel
	}
	if query.Get("gclid") != "" || query.Get("gbraid") != "" || query.Get("wbraid") != "" {
		return domain.ChannelGoogle
	}
	ref := strings.ToLower(referrer)
	for _, marker := range googleReferrerMarkers {
		if strings.Contains(ref, marker) {
			return domain.ChannelGoogle
		}
	}
	return domain.ChannelOther
}
