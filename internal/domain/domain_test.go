package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseBucketToken(t *testing.T) {
	b, err := ParseBucketToken("sales3.V1StGXR8_Z5jdHi")
	require.NoError(t, err)
	require.Equal(t, "sales3", b.PageID)
	require.Equal(t, "V1StGXR8_Z5jdHi", b.ID)
	require.Equal(t, "sales3.V1StGXR8_Z5jdHi", b.String())

	for _, raw := range []string{"", "sales3", ".abc", "sales3."} {
		_, err := ParseBucketToken(raw)
		require.ErrorIs(t, err, ErrMalformedBucket, raw)
	}
}

func TestParseChannel(t *testing.T) {
	c, ok := ParseChannel(" Google ")
	require.True(t, ok)
	require.Equal(t, ChannelGoogle, c)

	_, ok = ParseChannel("facebook")
	require.False(t, ok)
}

func TestDistributionRule_LimitReached(t *testing.T) {
	daily, total := 10, 100
	r := &DistributionRule{DailyLimit: &daily, TotalLimit: &total}

	require.False(t, r.LimitReached(PageCounts{Today: 9, Total: 99}))
	require.True(t, r.LimitReached(PageCounts{Today: 10, Total: 10}))
	require.True(t, r.LimitReached(PageCounts{Today: 0, Total: 100}))
	require.False(t, (&DistributionRule{}).LimitReached(PageCounts{Today: 1e6, Total: 1e6}))
}

func TestPhoneLead_ExpiryDue(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	require.False(t, (&PhoneLead{}).ExpiryDue(now))
	require.False(t, (&PhoneLead{DeadlineAt: &future}).ExpiryDue(now))
	require.True(t, (&PhoneLead{DeadlineAt: &past}).ExpiryDue(now))
	require.True(t, (&PhoneLead{DeadlineAt: &now}).ExpiryDue(now))
	require.False(t, (&PhoneLead{DeadlineAt: &past, IsExpired: true}).ExpiryDue(now))
}

func TestPhoneLead_Status(t *testing.T) {
	require.Equal(t, LeadActive, (&PhoneLead{}).Status())
	require.Equal(t, LeadExpired, (&PhoneLead{IsExpired: true}).Status())
	require.Equal(t, LeadTransferred, (&PhoneLead{IsExpired: true, IsTransferred: true}).Status())
}
