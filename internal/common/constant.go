package common

// AuthorizationHeaderName carries the bearer token on mutating requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// MaxRequestBodyBytes caps JSON request bodies (16 KiB).
const MaxRequestBodyBytes int64 = 16 * 1024
