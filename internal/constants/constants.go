package constants

import "time"

// Environment variable keys
const (
	EnvConfigPath          = "GIERA_CONFIG"
	EnvDBPath              = "GIERA_DB"
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvHealthcheckURL      = "HEALTHCHECK_URL"

	DefaultConfigPath = "./giera_config.json"
	DefaultDBPath     = "./data/giera.db"
)

// Session / Cookie names
const (
	CookieSessionName = "g_session"
	CookieGuestName   = "g_guest"

	SessionIssuer     = "giera"
	SessionTTLDefault = 24 * time.Hour
	GuestCookieTTL    = 365 * 24 * time.Hour

	// Runs untouched for RunIdleTimeout are dropped by the sweeper.
	RunIdleTimeout   = 2 * time.Hour
	RunSweepInterval = time.Minute

	// Context keys set by the identity middleware.
	CtxUserEmail = "userEmail"
	CtxUserName  = "userName"
	CtxOwnerKey  = "ownerKey"
)

// Google OAuth constants
const (
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Key-value preference keys.
const (
	PrefKeyGold = "gold"
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteVersion            = "/version"
	RouteCharacters         = "/characters"
	RouteLeaderboard        = "/leaderboard"
	RouteHistory            = "/history"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthLogout         = "/auth/logout"
	RouteRun                = "/run"
	RouteRunMove            = "/run/move"
	RouteEncounter          = "/run/encounter"
	RouteEncounterAction    = "/run/encounter/action"
	RouteEncounterFlee      = "/run/encounter/flee"
	RouteShop               = "/run/shop"
	RouteShopUpgrade        = "/run/shop/upgrade"
	RouteSaveExit           = "/run/save-exit"
	RouteDefeatAck          = "/run/defeat/ack"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchHistory     = "Failed to fetch history"

	ErrNoRun              = "No run in progress"
	ErrUnknownCharacter   = "Unknown character"
	ErrRunDefeated        = "Run was defeated; acknowledge the defeat first"
	ErrRunNotDefeated     = "Run is not defeated"
	ErrNoEncounter        = "No encounter in progress"
	ErrEncounterActive    = "Not allowed during an encounter"
	ErrInvalidDirection   = "Invalid direction"
	ErrInvalidAction      = "Invalid action"
	ErrInvalidStat        = "Invalid stat"
	ErrInsufficientGold   = "Not enough gold"
	ErrFailedLoadCurrency = "Failed to load gold"
	ErrInternal           = "Internal error"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired = "Authentication required"
)

// Logging field names
const (
	LogFieldOwner    = "owner"
	LogFieldEmail    = "email"
	LogFieldTask     = "task"
	LogFieldGold     = "gold"
	LogFieldOutcome  = "outcome"
	LogFieldStat     = "stat"
	LogFieldAddr     = "addr"
	LogFieldDBPath   = "db_path"
	LogFieldWorkers  = "workers"
	LogFieldQueueLen = "queue_size"
	LogFieldSwept    = "swept"
)
