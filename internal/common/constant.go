package common

// AuthCookieName is the name of the HTTP-only cookie that carries the
// signed access token.
const AuthCookieName = "jwt"
