package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"profilevault/internal/models"
	"profilevault/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginToken  string
	loginUserID int
	loginErr    error
	authSession models.Session
	authErr     error
	logoutErr   error

	lastLoginEmail string
	lastAuthToken  string
	logoutCalls    int
}

func (m *mockAuth) Login(email string) (string, int, error) {
	m.lastLoginEmail = email
	return m.loginToken, m.loginUserID, m.loginErr
}

func (m *mockAuth) Authenticate(token string) (models.Session, error) {
	m.lastAuthToken = token
	return m.authSession, m.authErr
}

func (m *mockAuth) Logout(token string) error {
	m.logoutCalls++
	return m.logoutErr
}

type mockProfile struct {
	view      service.ProfileView
	viewErr   error
	updateErr error

	viewCalls    int
	updateCalls  int
	lastUpdateID int
	lastInput    service.ProfileInput
}

func (m *mockProfile) View(userID int) (service.ProfileView, error) {
	m.viewCalls++
	return m.view, m.viewErr
}

func (m *mockProfile) Update(userID int, input service.ProfileInput) error {
	m.updateCalls++
	m.lastUpdateID = userID
	m.lastInput = input
	return m.updateErr
}

type mockAudit struct {
	events  []models.AuditEvent
	listErr error

	recorded []string
}

func (m *mockAudit) Record(ctx context.Context, typ string, userID int, detail string) {
	m.recorded = append(m.recorded, typ)
}

func (m *mockAudit) Recent(ctx context.Context, userID int) ([]models.AuditEvent, error) {
	return m.events, m.listErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
