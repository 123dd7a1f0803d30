package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/userforge/user-api/internal/api/middleware"
	"github.com/userforge/user-api/internal/core/domain"
	"github.com/userforge/user-api/internal/core/ports"
)

type stubUserService struct {
	listFn           func(ctx context.Context, q ports.ListQuery) ([]domain.User, error)
	getByIDFn        func(ctx context.Context, id uint) (*domain.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	createFn         func(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	updateFn         func(ctx context.Context, user *domain.User, updates map[string]any, allowed []string) (*domain.User, error)
	changePasswordFn func(ctx context.Context, user *domain.User, oldPassword, newPassword string) error
	deleteFn         func(ctx context.Context, user *domain.User) error
	deleteAllFn      func(ctx context.Context) (int64, error)
}

func (s *stubUserService) List(ctx context.Context, q ports.ListQuery) ([]domain.User, error) {
	return s.listFn(ctx, q)
}

func (s *stubUserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserService) Create(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	return s.createFn(ctx, email, password, role)
}

func (s *stubUserService) Update(ctx context.Context, user *domain.User, updates map[string]any, allowed []string) (*domain.User, error) {
	return s.updateFn(ctx, user, updates, allowed)
}

func (s *stubUserService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, user, oldPassword, newPassword)
}

func (s *stubUserService) Delete(ctx context.Context, user *domain.User) error {
	return s.deleteFn(ctx, user)
}

func (s *stubUserService) DeleteAllNonAdmin(ctx context.Context) (int64, error) {
	return s.deleteAllFn(ctx)
}

func TestProfileHandler_Get(t *testing.T) {
	e := newTestEcho()
	handler := NewProfileHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/profile/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CurrentUserKey, &domain.User{
		ID:       3,
		Email:    "alice@example.com",
		Password: "$2a$10$somethinghashedsomethinghashed",
		Role:     domain.RoleUser,
	})

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" || resp["role"] != "USER" {
		t.Fatalf("unexpected payload: %v", resp)
	}
	// Exactly id, email, role — never the password hash.
	if len(resp) != 3 {
		t.Fatalf("expected exactly 3 fields, got %v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatalf("password must never appear in a response")
	}
}

func TestProfileHandler_Get_NoAuthContext(t *testing.T) {
	e := newTestEcho()
	handler := NewProfileHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/profile/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestProfileHandler_Update_UsesProfileAllowList(t *testing.T) {
	e := newTestEcho()
	acting := &domain.User{ID: 3, Email: "alice@example.com", Role: domain.RoleUser}

	stub := &stubUserService{
		updateFn: func(ctx context.Context, user *domain.User, updates map[string]any, allowed []string) (*domain.User, error) {
			if user.ID != 3 {
				t.Fatalf("expected acting user, got %+v", user)
			}
			if len(allowed) != 1 || allowed[0] != "email" {
				t.Fatalf("expected profile allow-list, got %v", allowed)
			}
			if updates["email"] != "new@example.com" {
				t.Fatalf("expected email update, got %v", updates)
			}
			updated := *user
			updated.Email = "new@example.com"
			return &updated, nil
		},
	}
	handler := NewProfileHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/profile/update", strings.NewReader(`{"email":"new@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CurrentUserKey, acting)

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "new@example.com" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestProfileHandler_Update_ForbiddenFieldPropagates(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, user *domain.User, updates map[string]any, allowed []string) (*domain.User, error) {
			return nil, domain.ErrFieldNotUpdatable
		},
	}
	handler := NewProfileHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/profile/update", strings.NewReader(`{"password":"sneaky-pass"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CurrentUserKey, &domain.User{ID: 3, Role: domain.RoleUser})

	if err := handler.Update(c); !errors.Is(err, domain.ErrFieldNotUpdatable) {
		t.Fatalf("expected ErrFieldNotUpdatable, got %v", err)
	}
}

func TestProfileHandler_ChangePassword(t *testing.T) {
	e := newTestEcho()
	acting := &domain.User{ID: 3, Email: "alice@example.com", Role: domain.RoleUser}

	stub := &stubUserService{
		changePasswordFn: func(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
			if oldPassword != "oldpassword1" || newPassword != "newpassword1" {
				t.Fatalf("unexpected args: %s %s", oldPassword, newPassword)
			}
			return nil
		},
	}
	handler := NewProfileHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/profile/change-password", strings.NewReader(`{"oldPassword":"oldpassword1","newPassword":"newpassword1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CurrentUserKey, acting)

	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestProfileHandler_ChangePassword_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		changePasswordFn: func(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewProfileHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/profile/change-password", strings.NewReader(`{"oldPassword":"oldpassword1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CurrentUserKey, &domain.User{ID: 3, Role: domain.RoleUser})

	err := handler.ChangePassword(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestProfileHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		changePasswordFn: func(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
			return domain.ErrInvalidCredentials
		},
	}
	handler := NewProfileHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/profile/change-password", strings.NewReader(`{"oldPassword":"wrongpass11","newPassword":"newpassword1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CurrentUserKey, &domain.User{ID: 3, Role: domain.RoleUser})

	if err := handler.ChangePassword(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestProfileHandler_Delete(t *testing.T) {
	e := newTestEcho()
	acting := &domain.User{ID: 3, Email: "alice@example.com", Role: domain.RoleUser}

	deleted := false
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, user *domain.User) error {
			if user.ID != 3 {
				t.Fatalf("expected acting user, got %+v", user)
			}
			deleted = true
			return nil
		},
	}
	handler := NewProfileHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/profile/delete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CurrentUserKey, acting)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !deleted {
		t.Fatalf("delete not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
