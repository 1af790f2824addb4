package domain

import (
	"time"
)

// Platform is one game account on one distribution platform. Rows are
// provisioned externally (there is no signup flow here); only InstanceID is
// ever written back, when the game server reports it stale.
type Platform struct {
	ID         string
	Key        string
	Hash       string
	UserID     string
	InstanceID string // empty until first refreshed by the API client
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Promotion is a redeemable code. Code is the natural key.
type Promotion struct {
	ID        string
	Code      string
	ExpiresAt *time.Time // modeled but not yet populated by any scrape
	CreatedAt time.Time
}

// Redemption records that a platform attempted a promotion. At most one row
// exists per (promotion, platform) pair; that uniqueness is the whole
// dedup mechanism.
type Redemption struct {
	ID          string
	PromotionID string
	PlatformID  string
	Message     string
	CreatedAt   time.Time
}
