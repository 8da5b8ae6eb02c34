package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"vocab-center/models"
	"vocab-center/services"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/golang-jwt/jwt/v4"
)

// mySigningKey should be a strong, randomly generated secret key,
// and it should be stored securely (e.g., in environment variables,
// a key management service, etc.), NOT hardcoded in your source code.
var mySigningKey = []byte("mySigningKey")

var tokenTTL = 24 * time.Hour

// SetSigningKey allows setting the key from outside the package.
func SetSigningKey(key []byte) {
	if len(key) > 0 {
		mySigningKey = key
	}
}

// SetTokenTTL allows setting the token lifetime from outside the package.
func SetTokenTTL(ttl time.Duration) {
	if ttl > 0 {
		tokenTTL = ttl
	}
}

// SessionCookie is the cookie carrying the session token for browser clients.
// API clients may send the same token as a bearer Authorization header.
const SessionCookie = "session"

// CustomClaims carries only the numeric user id. The full User record is
// re-fetched on every request, so nothing cached in the token can go stale.
type CustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new session token for the given user.
func GenerateToken(user *models.User) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)
	claims := &CustomClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "vocab-center",
			Subject:   "user-auth",
			Audience:  []string{"vocab-center-users"},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(mySigningKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseAndValidateToken checks the signature and time bounds of a session
// token and returns its claims.
func ParseAndValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return mySigningKey, nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			if ve.Errors&jwt.ValidationErrorMalformed != 0 {
				return nil, errors.New("malformed token")
			} else if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
				return nil, errors.New("token is either expired or not active yet")
			} else if ve.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
				return nil, errors.New("invalid token signature")
			}
		}
		return nil, fmt.Errorf("couldn't handle this token: %w", err)
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// tokenFromRequest extracts the session token from the Authorization header
// (Bearer <token>) or, failing that, from the session cookie.
func tokenFromRequest(req *restful.Request) (string, bool) {
	authHeader := req.HeaderParameter("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1], true
		}
		return "", false
	}

	cookie, err := req.Request.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// AuthFilter gates every protected route. It resolves the session token to a
// full User via the user service and stores it as the "user" request
// attribute. Any failure (no token, bad token, user row gone) redirects to
// the anonymous entry point instead of writing an error body; the session is
// not destroyed, just non-authenticating for this request.
func AuthFilter(users services.UserService) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		tokenString, ok := tokenFromRequest(req)
		if !ok {
			http.Redirect(resp, req.Request, "/", http.StatusFound)
			return
		}

		claims, err := ParseAndValidateToken(tokenString)
		if err != nil {
			http.Redirect(resp, req.Request, "/", http.StatusFound)
			return
		}

		user, err := users.ResolveSession(claims.UserID)
		if err != nil {
			if errors.Is(err, services.ErrSessionInvalid) {
				http.Redirect(resp, req.Request, "/", http.StatusFound)
				return
			}
			// Store failure, not an auth decision
			_ = resp.WriteHeaderAndJson(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"}, restful.MIME_JSON)
			return
		}

		req.SetAttribute("user", user)
		req.SetAttribute("user_id", user.ID)

		chain.ProcessFilter(req, resp)
	}
}

// AuthenticatedUser extracts the User resolved by AuthFilter.
func AuthenticatedUser(req *restful.Request) (*models.User, bool) {
	userAttr := req.Attribute("user")
	if userAttr == nil {
		return nil, false
	}
	user, ok := userAttr.(*models.User)
	return user, ok
}
