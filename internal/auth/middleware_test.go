package auth

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/quality-service/internal/domain"
	"github.com/spec-kit/quality-service/internal/events"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (s *stubUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id string) error         { return nil }
func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (s *stubUserRepo) List(ctx context.Context) ([]domain.User, error) { return nil, nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (r *recordingDispatcher) count(eventType events.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func newTestApp(users *stubUserRepo, dispatcher events.Dispatcher, tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
		},
	})
	app.Use(NewMiddleware(tm, users).Handle)

	ok := func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"data": "ok"}) }
	app.Get("/", ok)
	app.Get("/home", ok)
	app.Get("/auth/login", ok)
	app.Get("/api/v1/projets", RequireRole(dispatcher, domain.RoleAdmin, domain.RoleChefProjet), ok)
	app.Get("/api/v1/kpi", RequireRole(dispatcher, domain.RoleAdmin, domain.RoleChefProjet, domain.RolePiloteQualite), ok)
	return app
}

func issueFor(t *testing.T, tm *TokenManager, user *domain.User) string {
	t.Helper()
	token, _, err := tm.Issue(user)
	require.NoError(t, err)
	return token
}

func TestMiddlewarePublicPathsSkipAuth(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := newTestApp(&stubUserRepo{}, &recordingDispatcher{}, tm)

	for _, path := range []string{"/", "/home", "/auth/login"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := newTestApp(&stubUserRepo{}, &recordingDispatcher{}, tm)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/kpi", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/v1/kpi", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsSuspendedUser(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	user := &domain.User{ID: "u-1", Role: domain.RoleAdmin, Status: domain.UserStatusSuspended}
	app := newTestApp(&stubUserRepo{users: map[string]*domain.User{"u-1": user}}, &recordingDispatcher{}, tm)

	req := httptest.NewRequest("GET", "/api/v1/kpi", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tm, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleAllowsMember(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	user := &domain.User{ID: "u-2", Role: domain.RoleChefProjet, Status: domain.UserStatusActive}
	dispatcher := &recordingDispatcher{}
	app := newTestApp(&stubUserRepo{users: map[string]*domain.User{"u-2": user}}, dispatcher, tm)

	req := httptest.NewRequest("GET", "/api/v1/projets", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tm, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, dispatcher.count(events.EventAccessDenied))
}

func TestRequireRoleDeniesWithSingleEvent(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	user := &domain.User{ID: "u-3", Role: domain.RolePiloteQualite, Status: domain.UserStatusActive}
	dispatcher := &recordingDispatcher{}
	app := newTestApp(&stubUserRepo{users: map[string]*domain.User{"u-3": user}}, dispatcher, tm)

	req := httptest.NewRequest("GET", "/api/v1/projets", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tm, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 1, dispatcher.count(events.EventAccessDenied))

	payload, ok := dispatcher.events[0].Payload.(events.AccessDeniedPayload)
	require.True(t, ok)
	assert.Equal(t, "/api/v1/projets", payload.Path)
	assert.Equal(t, domain.RolePiloteQualite, payload.Role)
}

func TestRequireRoleWithLegacyPrefixedToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	user := &domain.User{ID: "u-4", Role: "ROLE_ADMIN", Status: domain.UserStatusActive}
	app := newTestApp(&stubUserRepo{users: map[string]*domain.User{"u-4": user}}, &recordingDispatcher{}, tm)

	req := httptest.NewRequest("GET", "/api/v1/projets", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tm, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
