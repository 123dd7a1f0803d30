package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/userforge/user-api/internal/core/domain"
	"github.com/userforge/user-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[uint]*domain.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) List(context.Context, ports.ListQuery) ([]domain.User, error) {
	return nil, nil
}
func (r *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (r *stubUserRepo) Save(context.Context, *domain.User) error   { return nil }
func (r *stubUserRepo) Delete(context.Context, *domain.User) error { return nil }
func (r *stubUserRepo) DeleteByRoleNot(context.Context, domain.Role) (int64, error) {
	return 0, nil
}

func TestRetrieveUser_Found(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	repo := &stubUserRepo{users: map[uint]*domain.User{
		42: {ID: 42, Email: "target@example.com", Role: domain.RoleUser},
	}}

	called := false
	mw := RetrieveUser(repo)
	handler := mw(func(c echo.Context) error {
		called = true
		target, ok := c.Get(TargetUserKey).(*domain.User)
		if !ok || target.ID != 42 {
			t.Fatalf("target user not attached: %v", c.Get(TargetUserKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRetrieveUser_NotFound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	mw := RetrieveUser(&stubUserRepo{users: map[uint]*domain.User{}})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRetrieveUser_NonNumericID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	mw := RetrieveUser(&stubUserRepo{users: map[uint]*domain.User{}})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
