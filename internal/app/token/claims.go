package token

import "github.com/golang-jwt/jwt"

// Claims defines the JSON Web Token claims issued by the token service.
// The bound user id travels in the standard Subject claim and every token
// carries a unique Id (jti), so two logins in the same second still produce
// distinct session tokens.
type Claims struct {
	jwt.StandardClaims
}
