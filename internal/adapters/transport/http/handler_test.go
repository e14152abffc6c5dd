package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Miraines/ChirpChat/auth-service/internal/adapters/transport/http/middleware"
	appsvc "github.com/Miraines/ChirpChat/auth-service/internal/app/auth/service"
	"github.com/Miraines/ChirpChat/auth-service/internal/app/auth/token"
	authErrors "github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/errors"
	"github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type userRepoStub struct{ users map[string]model.User }

func (u *userRepoStub) CreateUser(_ context.Context, m model.User) (primitive.ObjectID, error) {
	for _, v := range u.users {
		if v.Email == m.Email {
			return primitive.NilObjectID, authErrors.ErrAlreadyExists
		}
	}
	m.ID = primitive.NewObjectID()
	u.users[m.ID.Hex()] = m
	return m.ID, nil
}

func (u *userRepoStub) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, v := range u.users {
		if v.Email == email {
			return v, nil
		}
	}
	return model.User{}, authErrors.ErrNotFound
}

func (u *userRepoStub) GetUserByID(_ context.Context, id primitive.ObjectID) (model.User, error) {
	v, ok := u.users[id.Hex()]
	if !ok {
		return model.User{}, authErrors.ErrNotFound
	}
	v.Password = ""
	return v, nil
}

func (u *userRepoStub) UpdateProfilePic(_ context.Context, id primitive.ObjectID, url string) (model.User, error) {
	v, ok := u.users[id.Hex()]
	if !ok {
		return model.User{}, authErrors.ErrNotFound
	}
	v.ProfilePic = url
	u.users[id.Hex()] = v
	v.Password = ""
	return v, nil
}

type uploaderStub struct{ url string }

func (s uploaderStub) Upload(_ context.Context, _ string) (string, error) { return s.url, nil }

const stubPicURL = "https://res.cloudinary.com/demo/profile.png"

func newTestRouter(t *testing.T) (*gin.Engine, *userRepoStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &userRepoStub{users: make(map[string]model.User)}
	tokens, err := token.NewUtil("test-secret", 7*24*time.Hour)
	require.NoError(t, err)

	svc := appsvc.New(users, uploaderStub{url: stubPicURL}, validator.New())
	h := NewHandler(svc, tokens, zap.NewNop(), "", false)

	r := gin.New()
	h.Register(r.Group("/api/auth"), middleware.AuthGuard(tokens, users, zap.NewNop()))
	return r, users
}

func do(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSignup(t *testing.T) {
	r, users := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/auth/signup", `{"email":"a@x.com","fullName":"A","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	require.NotEmpty(t, body["_id"])
	require.Equal(t, "a@x.com", body["email"])
	require.Equal(t, "A", body["fullName"])
	require.Equal(t, "", body["profilePic"])
	require.NotContains(t, body, "password")

	ck := sessionCookie(t, w)
	require.NotEmpty(t, ck.Value)
	require.True(t, ck.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	require.Equal(t, 7*24*3600, ck.MaxAge)

	// Same signup again: 400, no second record.
	w = do(r, http.MethodPost, "/api/auth/signup", `{"email":"a@x.com","fullName":"A","password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Email already exists", decode(t, w)["message"])
	require.Len(t, users.users, 1)
}

func TestSignup_BadInput(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/auth/signup", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "All fields are required", decode(t, w)["message"])

	w = do(r, http.MethodPost, "/api/auth/signup", `{"email":"a@x.com","fullName":"A","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Password must be at least 6 characters long", decode(t, w)["message"])
}

func TestLogin_SameErrorForBothFailureModes(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPost, "/api/auth/signup", `{"email":"a@x.com","fullName":"A","password":"secret1"}`)

	wrongPw := do(r, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"nope123"}`)
	noUser := do(r, http.MethodPost, "/api/auth/login", `{"email":"b@x.com","password":"secret1"}`)

	require.Equal(t, http.StatusBadRequest, wrongPw.Code)
	require.Equal(t, wrongPw.Code, noUser.Code)
	require.Equal(t, wrongPw.Body.String(), noUser.Body.String())
	require.Equal(t, "Invalid credentials", decode(t, wrongPw)["message"])
}

func TestCheck_RoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/auth/signup", `{"email":"a@x.com","fullName":"A","password":"secret1"}`)
	id := decode(t, w)["_id"]
	ck := sessionCookie(t, w)

	w = do(r, http.MethodGet, "/api/auth/check", "", ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, id, decode(t, w)["_id"])
	require.NotContains(t, decode(t, w), "password")
}

func TestLogin_SetsFreshCookie(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPost, "/api/auth/signup", `{"email":"a@x.com","fullName":"A","password":"secret1"}`)

	w := do(r, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	ck := sessionCookie(t, w)

	w = do(r, http.MethodGet, "/api/auth/check", "", ck)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLogout(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	ck := sessionCookie(t, w)
	require.Empty(t, ck.Value)
	require.Less(t, ck.MaxAge, 0)

	// Replaying the cleared cookie must not authenticate.
	w = do(r, http.MethodGet, "/api/auth/check", "", ck)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r, users := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/auth/signup", `{"email":"a@x.com","fullName":"A","password":"secret1"}`)
	ck := sessionCookie(t, w)
	id := decode(t, w)["_id"].(string)

	w = do(r, http.MethodPut, "/api/auth/update-profile", `{"profilePic":"data:image/png;base64,xxxx"}`, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, stubPicURL, decode(t, w)["profilePic"])
	require.Equal(t, stubPicURL, users.users[id].ProfilePic)

	w = do(r, http.MethodPut, "/api/auth/update-profile", `{}`, ck)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Profile pic is required", decode(t, w)["message"])

	w = do(r, http.MethodPut, "/api/auth/update-profile", `{"profilePic":"data:image/png;base64,xxxx"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
