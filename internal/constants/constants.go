package constants

import "time"

const (
	CodesCacheTTL = 5 * time.Minute

	// pause between redeem attempts so we don't hammer the game server
	RedeemPacing = 500 * time.Millisecond
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RunTimeout         = 10 * time.Minute
)

const (
	// MaxRedirectHops bounds how many switch_play_server redirects a single
	// call will follow before giving up.
	MaxRedirectHops = 3

	// MaxTransportRetries is the number of retries (after the first attempt)
	// for transport-level failures against the game server or the codes page.
	MaxTransportRetries = 2

	TransportRetryBase = 500 * time.Millisecond
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)
