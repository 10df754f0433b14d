package domain

import (
	"fmt"
	"strings"
)

// BucketToken binds a visitor to a sales page. It travels as a cookie value
// "<pageID>.<id>" so routing never needs a server-side lookup.
type BucketToken struct {
	PageID string
	ID     string
}

func (b BucketToken) String() string {
	return b.PageID + "." + b.ID
}

func ParseBucketToken(raw string) (*BucketToken, error) {
	raw = strings.TrimSpace(raw)
	i := strings.LastIndex(raw, ".")
	if i <= 0 || i == len(raw)-1 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedBucket, raw)
	}
	return &BucketToken{PageID: raw[:i], ID: raw[i+1:]}, nil
}

type RouteDecision struct {
	PageID string
	Bucket BucketToken
	Sticky bool
}
