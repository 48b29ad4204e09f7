package middleware

const (
	SessionHeader     = "Session"
	RequestSessionKey = "requestSession"
	TokenKey          = "requestToken"
	ClaimsKey         = "requestClaims"
	Authorization     = "Authorization"
)
