package constants

import "time"

// Database pool settings.
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Request and operation timeouts.
const (
	DefaultTimeout        = 15 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// Token scopes.
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Token lifetimes.
const (
	AccessTokenDuration  = 15 * time.Minute
	RefreshTokenDuration = 7 * 24 * time.Hour
)

// Login throttling.
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// OAuth state TTL.
const OAuthStateDuration = 10 * time.Minute

// Echo context keys.
const (
	ContextTokenData = "token_data"
)

// Asynq task types and queues.
const (
	TaskTypeCalendarSync = "calendar:sync"
	QueueDefault         = "default"
)
