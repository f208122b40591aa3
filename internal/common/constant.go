package common

// SessionCookieName is the cookie carrying the authenticated user's id.
const SessionCookieName = "usuario_id"

// AuthorizationHeaderName carries bearer tokens issued to the game client.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "
