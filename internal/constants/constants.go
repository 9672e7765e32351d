package constants

// HTTP headers and content types
const (
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteHealth         = "/health"
	RouteVersion        = "/version"
	RouteContent        = "/content"
	RouteState          = "/state"
	RouteHistory        = "/history"
	RouteProgression    = "/progression"
	RouteNewGame        = "/game/new"
	RouteContinue       = "/game/continue"
	RouteSelectClass    = "/game/class"
	RoutePreview        = "/game/preview"
	RouteCommitPath     = "/game/path"
	RouteAbility        = "/game/abilities/:abilityID"
	RouteOfferPurchase  = "/game/offers/:offerID"
	RouteOfferSkip      = "/game/skip-offers"
	RouteStream         = "/stream"
	RouteParamAbilityID = "abilityID"
	RouteParamOfferID   = "offerID"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrNotReady            = "Game is not accepting input"
	ErrInvalidPath         = "Path is not valid on the current board"
	ErrNoSavedRun          = "No saved run to continue"
	ErrUnknownClass        = "Unknown class"
	ErrUnknownDifficulty   = "Unknown difficulty"
	ErrOfferNotFound       = "Offer not found"
	ErrInsufficientGold    = "Not enough gold"
	ErrAbilityUnavailable  = "Ability is not ready"
	ErrFailedResolveTurn   = "Failed to resolve turn"
	ErrFailedUpgradeStream = "Failed to open stream"
)

// Persisted slot names, namespaced by keys.SlotKey.
const (
	SlotActiveRun   = "active_run"
	SlotProgression = "progression"
	SlotRunHistory  = "run_history"
)

// Logging field names
const (
	LogFieldSlot       = "slot"
	LogFieldKey        = "key"
	LogFieldAddr       = "addr"
	LogFieldStore      = "store"
	LogFieldDir        = "dir"
	LogFieldClass      = "class"
	LogFieldDifficulty = "difficulty"
	LogFieldDepth      = "depth"
	LogFieldScore      = "score"
	LogFieldAbility    = "ability"
	LogFieldOffer      = "offer"
	LogFieldPathLength = "path_length"
	LogFieldClients    = "clients"
)
