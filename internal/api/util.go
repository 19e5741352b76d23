package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/engine"
	"github.com/ericogr/giera/internal/logging"
	"github.com/ericogr/giera/internal/service"
	"github.com/gin-gonic/gin"
)

// writeServiceError maps service sentinels to HTTP responses. Anything
// unknown is logged and reported as an internal error.
func writeServiceError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, constants.ErrInternal
	switch {
	case errors.Is(err, service.ErrNoRun):
		status, msg = http.StatusNotFound, constants.ErrNoRun
	case errors.Is(err, service.ErrNoEncounter):
		status, msg = http.StatusNotFound, constants.ErrNoEncounter
	case errors.Is(err, service.ErrUnknownCharacter):
		status, msg = http.StatusBadRequest, constants.ErrUnknownCharacter
	case errors.Is(err, service.ErrInvalidAction), errors.Is(err, engine.ErrUnknownAction):
		status, msg = http.StatusBadRequest, constants.ErrInvalidAction
	case errors.Is(err, service.ErrInvalidStat):
		status, msg = http.StatusBadRequest, constants.ErrInvalidStat
	case errors.Is(err, service.ErrRunDefeated):
		status, msg = http.StatusConflict, constants.ErrRunDefeated
	case errors.Is(err, service.ErrRunNotDefeated):
		status, msg = http.StatusConflict, constants.ErrRunNotDefeated
	case errors.Is(err, service.ErrEncounterActive):
		status, msg = http.StatusConflict, constants.ErrEncounterActive
	case errors.Is(err, engine.ErrEncounterOver):
		status, msg = http.StatusConflict, constants.ErrNoEncounter
	case errors.Is(err, service.ErrInsufficientGold):
		status, msg = http.StatusPaymentRequired, constants.ErrInsufficientGold
	default:
		logging.Error("request failed", err, logging.Fields{"path": c.FullPath(), constants.LogFieldOwner: c.GetString(constants.CtxOwnerKey)})
	}
	c.JSON(status, gin.H{constants.JSONKeyError: msg})
}

// queryLimit reads ?limit=N; absent or malformed values yield 0 so the
// service applies its default.
func queryLimit(c *gin.Context) int {
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (ID, CreatedAt, UpdatedAt, DeletedAt) to snake_case keys so clients
// consistently receive snake_case.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		for from, to := range map[string]string{"ID": "id", "CreatedAt": "created_at", "UpdatedAt": "updated_at", "DeletedAt": "deleted_at"} {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes GORM keys to snake_case.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}

// MarshalForContext behaves like MarshalIntoSnakeTimestamps but also
// removes email fields that do not belong to the signed-in player, so
// other players' emails are never exposed.
func MarshalForContext(c *gin.Context, v interface{}) (interface{}, error) {
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		return nil, err
	}
	currentEmail := ""
	if c != nil {
		currentEmail = c.GetString(constants.CtxUserEmail)
	}
	redactEmails(out, currentEmail)
	return out, nil
}

func redactEmails(v interface{}, currentEmail string) {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			if strings.Contains(strings.ToLower(k), "email") {
				if s, ok := val.(string); ok && currentEmail != "" && s == currentEmail {
					continue
				}
				delete(vv, k)
				continue
			}
			redactEmails(val, currentEmail)
		}
	case []interface{}:
		for i := range vv {
			redactEmails(vv[i], currentEmail)
		}
	}
}
