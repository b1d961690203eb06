package handlers

import (
	"errors"
	"net/http"
	"time"

	"account_ledger/internal/models"
	"account_ledger/internal/service"

	"github.com/gin-gonic/gin"
)

type authCredentials struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cr3t"`
}

// loginCredentials leaves both fields optional: a missing field is just
// another pair of credentials that does not match.
type loginCredentials struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"s3cr3t"`
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// startSession issues a session for u and sets the cookie. A session the
// client already presented is destroyed once the new one exists. It writes
// the error response itself and reports whether the caller may continue.
func (h *Handler) startSession(c *gin.Context, u *models.User, logKey string) bool {
	ctx := c.Request.Context()
	token, exp, err := h.services.CreateSession(ctx, u.ID)
	if err != nil {
		h.log.Errorw(logKey, "user_id", u.ID, "err", err)
		writeError(c, http.StatusInternalServerError, codeServerError, "Error logging in")
		return false
	}
	if old, _ := c.Cookie(h.opts.CookieName); old != "" && old != token {
		if err := h.services.DestroySession(ctx, old); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
			h.log.Warnw("auth_previous_session_destroy_failed", "user_id", u.ID, "err", err)
		}
	}
	h.setSessionCookie(c, token, exp)
	return true
}

// @Summary      Register a new user
// @Description  Creates the user and logs them in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      201   {object}  models.User
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.Is(err, service.ErrDuplicateUsername):
			h.log.Infow("auth_register_duplicate", "username", input.Username)
			writeError(c, http.StatusBadRequest, codeDuplicateUsername, msgUserExists)
		case errors.As(err, &ve):
			writeError(c, http.StatusBadRequest, codeValidation, ve.Error())
		default:
			h.log.Errorw("auth_register_failed", "username", input.Username, "err", err)
			writeError(c, http.StatusInternalServerError, codeServerError, msgServerError)
		}
		return
	}
	h.log.Infow("auth_registered", "user_id", user.ID, "username", user.Username)

	if !h.startSession(c, user, "auth_register_session_failed") {
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginCredentials  true  "Credentials"
// @Success      200   {object}  models.User
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.VerifyCredentials(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Infow("auth_sign_in_failed", "username", input.Username)
			writeError(c, http.StatusUnauthorized, codeInvalidCredentials, "Invalid username or password")
			return
		}
		h.log.Errorw("auth_sign_in_error", "username", input.Username, "err", err)
		writeError(c, http.StatusInternalServerError, codeServerError, msgServerError)
		return
	}

	if !h.startSession(c, user, "auth_sign_in_session_failed") {
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/logout [post]
// @Security     SessionCookie
func (h *Handler) logout(c *gin.Context) {
	token, _ := c.Cookie(h.opts.CookieName)
	err := h.services.DestroySession(c.Request.Context(), token)
	h.clearSessionCookie(c)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(c, http.StatusInternalServerError, codeSessionNotFound, "Error during logout")
			return
		}
		h.log.Errorw("auth_logout_failed", "user_id", ownerID(c), "err", err)
		writeError(c, http.StatusInternalServerError, codeServerError, "Error during logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// @Summary      Current user
// @Description  Returns the logged-in user, or an empty object when anonymous.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      500  {object}  ErrorResponse
// @Router       /api/current_user [get]
func (h *Handler) currentUser(c *gin.Context) {
	if c.GetBool(ctxSessionFailed) {
		writeError(c, http.StatusInternalServerError, codeServerError, msgServerError)
		return
	}
	if u, ok := userFrom(c); ok {
		c.JSON(http.StatusOK, u)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
