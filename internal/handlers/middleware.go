package handlers

import (
	"net/http"

	"account_ledger/internal/models"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by loadSession.
const (
	ctxUser   = "currentUser"
	ctxUserID = "userId"
	// set when a valid session could not be resolved to a user because the
	// store failed
	ctxSessionFailed = "sessionFailed"
)

// loadSession resolves the session cookie to a user and stores it in the
// Gin context. It never aborts: requests without a valid session continue
// as anonymous and requireUser decides whether that is acceptable.
func (h *Handler) loadSession(c *gin.Context) {
	token, err := c.Cookie(h.opts.CookieName)
	if err != nil || token == "" {
		c.Next()
		return
	}

	ctx := c.Request.Context()
	userID, ok := h.services.ResolveSession(ctx, token)
	if !ok {
		c.Next()
		return
	}

	// the session only holds the id; the user record is always re-read
	user, err := h.services.UserByID(ctx, userID)
	if err != nil {
		h.log.Errorw("session_user_load_failed", "user_id", userID, "err", err)
		c.Set(ctxSessionFailed, true)
		c.Next()
		return
	}
	if user == nil {
		c.Next()
		return
	}

	c.Set(ctxUser, user)
	c.Set(ctxUserID, user.ID)
	c.Next()
}

// requireUser rejects requests that carry no resolved identity. A session
// whose user could not be loaded is a server error, not an anonymous caller.
func (h *Handler) requireUser(c *gin.Context) {
	if c.GetBool(ctxSessionFailed) {
		writeError(c, http.StatusInternalServerError, codeServerError, msgServerError)
		return
	}
	if _, ok := userFrom(c); !ok {
		writeError(c, http.StatusUnauthorized, codeUnauthenticated, msgUnauthenticated)
		return
	}
	c.Next()
}

func userFrom(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// ownerID returns the id of the authenticated caller. Only valid behind
// requireUser.
func ownerID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}
