package common

// Header and scheme used to carry session tokens on HTTP requests.
const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)
