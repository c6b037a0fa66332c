package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// NewContextFromToken parses a signed bearer token and returns an
// authenticated access context holding the scopes granted by the
// token's "scope" claim (space separated, as issued by OAuth style
// authorization servers).
func NewContextFromToken(tokenString string, secret []byte) (AccessContext, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Anonymous(), fmt.Errorf("failed to parse token: (%w)", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Anonymous(), fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	scopes := []string{}
	if claim, found := claims["scope"]; found {
		scope, ok := claim.(string)
		if !ok {
			return Anonymous(), fmt.Errorf("scope claim is not a string")
		}
		scopes = strings.Fields(scope)
	}

	return Authenticated(scopes...), nil
}

// Middleware extracts a bearer token from incoming requests and stores
// the resulting access context for the handlers. Requests without a
// token proceed anonymously. Requests with a token that does not
// verify are rejected.
func Middleware(logger zerolog.Logger, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasPrefix(header, "Bearer ") {
				logger.Info().Msg("authorization header without bearer token")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			ac, err := NewContextFromToken(tokenString, secret)
			if err != nil {
				logger.Info().Err(err).Msg("rejected invalid bearer token")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), ac)))
		})
	}
}
