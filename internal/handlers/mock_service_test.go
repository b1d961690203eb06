package handlers

import (
	"context"
	"net/http"
	"time"

	"account_ledger/internal/models"
	"account_ledger/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser *models.User
	registerErr  error
	verifyUser   *models.User
	verifyErr    error
	users        map[int64]*models.User
	userErr      error

	lastRegisterUsername string
	lastRegisterPassword string
	lastVerifyUsername   string
	lastVerifyPassword   string
}

func (m *mockAuth) Register(_ context.Context, username, password string) (*models.User, error) {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerUser, m.registerErr
}

func (m *mockAuth) VerifyCredentials(_ context.Context, username, password string) (*models.User, error) {
	m.lastVerifyUsername = username
	m.lastVerifyPassword = password
	return m.verifyUser, m.verifyErr
}

func (m *mockAuth) UserByID(_ context.Context, id int64) (*models.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	return m.users[id], nil
}

type mockSessions struct {
	token      string
	createErr  error
	resolve    map[string]int64
	destroyErr error

	createdFor     []int64
	destroyedToken string
}

func (m *mockSessions) CreateSession(_ context.Context, userID int64) (string, time.Time, error) {
	m.createdFor = append(m.createdFor, userID)
	if m.createErr != nil {
		return "", time.Time{}, m.createErr
	}
	return m.token, time.Now().Add(24 * time.Hour), nil
}

func (m *mockSessions) ResolveSession(_ context.Context, token string) (int64, bool) {
	id, ok := m.resolve[token]
	return id, ok
}

func (m *mockSessions) DestroySession(_ context.Context, token string) error {
	m.destroyedToken = token
	return m.destroyErr
}

type mockLedger struct {
	account    models.Account
	accounts   []models.Account
	summary    models.Summary
	err        error
	summaryErr error

	lastOwner int64
	lastRef   string
	lastInput service.AccountInput
}

func (m *mockLedger) CreateAccount(_ context.Context, ownerID int64, in service.AccountInput) (models.Account, error) {
	m.lastOwner, m.lastInput = ownerID, in
	return m.account, m.err
}

func (m *mockLedger) ListAccounts(_ context.Context, ownerID int64) ([]models.Account, error) {
	m.lastOwner = ownerID
	return m.accounts, m.err
}

func (m *mockLedger) UpdateAccount(_ context.Context, ownerID int64, ref string, in service.AccountInput) (models.Account, error) {
	m.lastOwner, m.lastRef, m.lastInput = ownerID, ref, in
	return m.account, m.err
}

func (m *mockLedger) DeleteAccount(_ context.Context, ownerID int64, ref string) error {
	m.lastOwner, m.lastRef = ownerID, ref
	return m.err
}

func (m *mockLedger) Summary(_ context.Context, ownerID int64) (models.Summary, error) {
	m.lastOwner = ownerID
	return m.summary, m.summaryErr
}

// ---- Shared Test Helpers ----

const testCookie = "ledger_session"

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Options{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// loggedIn returns services where token "good" resolves to user 7 (alice).
func loggedIn(ledger *mockLedger) (*service.Service, *mockAuth, *mockSessions) {
	auth := &mockAuth{users: map[int64]*models.User{7: {ID: 7, Username: "alice"}}}
	sessions := &mockSessions{token: "good", resolve: map[string]int64{"good": 7}}
	return &service.Service{Authorization: auth, Sessions: sessions, Ledger: ledger}, auth, sessions
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: testCookie, Value: token}
}
