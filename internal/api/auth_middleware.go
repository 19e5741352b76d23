package api

import (
	crand "crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/logging"
	"github.com/ericogr/giera/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	ownerUserPrefix  = "user:"
	ownerGuestPrefix = "guest:"
)

var guestIDRegex = regexp.MustCompile("^[a-f0-9]{32}$")

func secureCookies() bool {
	return os.Getenv(constants.EnvSessionSecureCookie) == "1"
}

// setSessionCookie sets the session cookie with appropriate flags for dev/prod.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secureCookies(), true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

func newGuestID() (string, error) {
	b := make([]byte, 16)
	if _, err := crand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Identity resolves who is playing. A valid session cookie identifies a
// signed-in player; anyone else plays as a guest keyed by a long-lived
// guest cookie, minted on first contact.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(constants.CookieSessionName); err == nil && token != "" {
			if claims, err := parseAndValidateSession(token); err == nil {
				c.Set(constants.CtxUserEmail, claims.Subject)
				c.Set(constants.CtxUserName, claims.Name)
				c.Set(constants.CtxOwnerKey, ownerUserPrefix+claims.Subject)
				c.Next()
				return
			}
			clearSessionCookie(c)
		}
		guest, err := c.Cookie(constants.CookieGuestName)
		if err != nil || !guestIDRegex.MatchString(guest) {
			guest, err = newGuestID()
			if err != nil {
				logging.Error("failed to mint guest id", err, nil)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
				return
			}
			c.SetCookie(constants.CookieGuestName, guest, int(constants.GuestCookieTTL.Seconds()), "/", "", secureCookies(), true)
		}
		c.Set(constants.CtxOwnerKey, ownerGuestPrefix+guest)
		c.Next()
	}
}

// AuthRequired rejects requests without a signed-in player. It must run
// after Identity.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(constants.CtxUserEmail) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) service.Identity {
	return service.Identity{
		Owner: c.GetString(constants.CtxOwnerKey),
		Email: c.GetString(constants.CtxUserEmail),
	}
}
