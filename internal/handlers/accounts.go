package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"account_ledger/internal/models"
	"account_ledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountRequest is the payload for creating or replacing an account.
// Ownership is taken from the session, never from the body.
type AccountRequest struct {
	AccountID           string `json:"account_id" example:"1010"`
	Name                string `json:"name" example:"Checking"`
	MainAccountType     string `json:"main_account_type" example:"Asset" enums:"Asset,Liabilities,Equity,Revenue"`
	MainAccountCategory string `json:"main_account_category" example:"Current assets"`
	Notes               string `json:"notes" example:"Main bank account"`
	// Number or numeric string; anything else counts as 0.
	Balance json.RawMessage `json:"balance" swaggertype:"number" example:"1250.75"`
}

func (r AccountRequest) input() service.AccountInput {
	return service.AccountInput{
		AccountID:           r.AccountID,
		Name:                r.Name,
		MainAccountType:     models.AccountType(r.MainAccountType),
		MainAccountCategory: r.MainAccountCategory,
		Notes:               r.Notes,
		Balance:             parseBalance(r.Balance),
	}
}

// parseBalance accepts a JSON number or a numeric string. Absent, null and
// non-numeric values yield 0.
func parseBalance(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		s = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// @Summary      Create account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      AccountRequest  true  "Account"
// @Success      201   {object}  models.Account
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse  "validation_error, duplicate_account_id or server_error"
// @Router       /api/accounts [post]
// @Security     SessionCookie
func (h *Handler) createAccount(c *gin.Context) {
	var req AccountRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	acc, err := h.services.CreateAccount(c.Request.Context(), ownerID(c), req.input())
	if err != nil {
		h.fail(c, err, "account_create_failed", "user_id", ownerID(c))
		return
	}
	c.JSON(http.StatusCreated, acc)
}

// @Summary      List accounts
// @Description  Returns every account owned by the caller.
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   models.Account
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/accounts [get]
// @Security     SessionCookie
func (h *Handler) listAccounts(c *gin.Context) {
	list, err := h.services.ListAccounts(c.Request.Context(), ownerID(c))
	if err != nil {
		h.fail(c, err, "account_list_failed", "user_id", ownerID(c))
		return
	}
	if list == nil {
		list = []models.Account{}
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Update account
// @Description  Replaces every field except owner and id. Never creates.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Account id"
// @Param        body  body      AccountRequest  true  "Account"
// @Success      200   {object}  models.Account
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/accounts/{id} [put]
// @Security     SessionCookie
func (h *Handler) updateAccount(c *gin.Context) {
	var req AccountRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	acc, err := h.services.UpdateAccount(c.Request.Context(), ownerID(c), c.Param("id"), req.input())
	if err != nil {
		h.fail(c, err, "account_update_failed", "user_id", ownerID(c), "account", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, acc)
}

// @Summary      Delete account
// @Tags         accounts
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/accounts/{id} [delete]
// @Security     SessionCookie
func (h *Handler) deleteAccount(c *gin.Context) {
	if err := h.services.DeleteAccount(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		h.fail(c, err, "account_delete_failed", "user_id", ownerID(c), "account", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
