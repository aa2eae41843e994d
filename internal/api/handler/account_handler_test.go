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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmsv1/hospital-system/internal/core/domain"
	"github.com/hmsv1/hospital-system/internal/core/ports"
)

type stubAccountService struct {
	accounts map[int64]*domain.Account
	created  *ports.AccountInput
	updated  *ports.AccountInput
	err      error
}

func newStubAccountService() *stubAccountService {
	return &stubAccountService{accounts: map[int64]*domain.Account{
		1: {ID: 1, Username: "admin", Email: "admin@hospital.com", PasswordHash: "$2a$10$hash", Role: domain.RoleAdministrator, Name: "System Administrator", Phone: "+1-555-0001"},
	}}
}

func (s *stubAccountService) List(context.Context) ([]*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (s *stubAccountService) Get(_ context.Context, id int64) (*domain.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (s *stubAccountService) Create(_ context.Context, in ports.AccountInput) (*domain.Account, error) {
	s.created = &in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Account{ID: 7, Username: in.Username, Email: in.Email, PasswordHash: "$2a$10$new", Role: in.Role, Name: in.Name, Phone: in.Phone}, nil
}

func (s *stubAccountService) Update(_ context.Context, id int64, in ports.AccountInput) (*domain.Account, error) {
	s.updated = &in
	if _, ok := s.accounts[id]; !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.Account{ID: id, Username: in.Username, Email: in.Email, Role: in.Role, Name: in.Name}, nil
}

func (s *stubAccountService) Delete(_ context.Context, id int64) error {
	if _, ok := s.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(s.accounts, id)
	return nil
}

func newAccountContext(method, target, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

const pharmacistBody = `{"username":"pharmacist","password":"pharmacist123","email":"pharmacist@hospital.com","role":"pharmacist","name":"Mike Brown"}`

func TestAccountHandler_Create(t *testing.T) {
	svc := newStubAccountService()
	c, rec := newAccountContext(http.MethodPost, "/api/users", pharmacistBody, "")

	require.NoError(t, NewAccountHandler(svc).Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "pharmacist123", svc.created.Password)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pharmacist", resp["username"])
	assert.EqualValues(t, 7, resp["id"])
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestAccountHandler_Create_ValidationFailure(t *testing.T) {
	svc := newStubAccountService()
	body := `{"username":"x","password":"123","email":"not-an-email","role":"SURGEON","name":"X"}`
	c, _ := newAccountContext(http.MethodPost, "/api/users", body, "")

	err := NewAccountHandler(svc).Create(c)

	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	msg, _ := he.Message.(string)
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "role must be one of")
	assert.Contains(t, msg, "password must be at least 6 characters")
	assert.Nil(t, svc.created, "service must not be called")
}

func TestAccountHandler_Create_Conflict(t *testing.T) {
	svc := newStubAccountService()
	svc.err = domain.ErrAccountExists
	c, _ := newAccountContext(http.MethodPost, "/api/users", pharmacistBody, "")

	assert.ErrorIs(t, NewAccountHandler(svc).Create(c), domain.ErrAccountExists)
}

func TestAccountHandler_Get(t *testing.T) {
	c, rec := newAccountContext(http.MethodGet, "/api/users/1", "", "1")

	require.NoError(t, NewAccountHandler(newStubAccountService()).Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phone":"+1-555-0001"`)
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestAccountHandler_Get_BadID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		c, _ := newAccountContext(http.MethodGet, "/api/users/"+id, "", id)
		err := NewAccountHandler(newStubAccountService()).Get(c)

		var he *echo.HTTPError
		require.True(t, errors.As(err, &he), "id %q", id)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	c, _ := newAccountContext(http.MethodGet, "/api/users/99", "", "99")
	assert.ErrorIs(t, NewAccountHandler(newStubAccountService()).Get(c), domain.ErrAccountNotFound)
}

func TestAccountHandler_Update_PasswordOptional(t *testing.T) {
	svc := newStubAccountService()
	body := `{"username":"admin","email":"admin@hospital.com","role":"ADMINISTRATOR","name":"Chief Administrator"}`
	c, rec := newAccountContext(http.MethodPut, "/api/users/1", body, "1")

	require.NoError(t, NewAccountHandler(svc).Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updated)
	assert.Empty(t, svc.updated.Password)
	assert.Equal(t, "Chief Administrator", svc.updated.Name)
}

func TestAccountHandler_List(t *testing.T) {
	c, rec := newAccountContext(http.MethodGet, "/api/users", "", "")

	require.NoError(t, NewAccountHandler(newStubAccountService()).List(c))

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "admin", resp[0]["username"])
}

func TestAccountHandler_Delete(t *testing.T) {
	svc := newStubAccountService()
	c, rec := newAccountContext(http.MethodDelete, "/api/users/1", "", "1")

	require.NoError(t, NewAccountHandler(svc).Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, svc.accounts)

	c, _ = newAccountContext(http.MethodDelete, "/api/users/1", "", "1")
	assert.ErrorIs(t, NewAccountHandler(svc).Delete(c), domain.ErrAccountNotFound)
}
