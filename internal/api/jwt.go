package api

import (
	crand "crypto/rand"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/ericogr/giera/internal/constants"
	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

var (
	devSecretOnce sync.Once
	devSecret     []byte
	devSecretErr  error
)

func getSessionSecret() ([]byte, error) {
	secret := os.Getenv(constants.EnvSessionSecret)
	if secret != "" {
		return []byte(secret), nil
	}
	// in-memory secret for development; sessions do not survive a restart
	devSecretOnce.Do(func() {
		devSecret = make([]byte, 32)
		if _, err := crand.Read(devSecret); err != nil {
			devSecretErr = errors.New("failed to generate dev session secret")
		}
	})
	return devSecret, devSecretErr
}

func createSessionToken(email, name string, ttl time.Duration) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := sessionClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    constants.SessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseAndValidateSession(token string) (*sessionClaims, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return nil, err
	}
	var claims sessionClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(constants.SessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !t.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}
