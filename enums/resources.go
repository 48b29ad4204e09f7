package enums

// Backend resource paths.
const (
	AuthResource           = "/auth"
	ParentResource         = "/parent"
	PlayerResource         = "/players"
	NotificationResource   = "/notifications"
	FormResource           = "/forms"
	PaymentResource        = "/payments"
	RegistrationResource   = "/auth/register"
	LoginResource          = "/auth/login"
	PlayerSearchResource   = "/players/search"
	PaymentProcessResource = "/payments/process"
)

// RecentKind names a recently-viewed list kept in persisted client state.
type RecentKind string

const (
	RecentPlayers RecentKind = "Players"
	RecentParents RecentKind = "Parents"
	RecentCoaches RecentKind = "Coaches"
)
