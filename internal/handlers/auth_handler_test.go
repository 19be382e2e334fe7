package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "budgetflow/internal/errors"
	"budgetflow/internal/middleware"
	"budgetflow/internal/models"
	"budgetflow/internal/services"
	"budgetflow/internal/validator"
)

// --- mock user service ---

type mockUserService struct {
	createUserFn            func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn        func(email string) (*models.User, error)
	getUserByIDFn           func(id uint) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	storeRefreshTokenHashFn func(userID uint, tokenHash string) error
	getRefreshTokenHashFn   func(userID uint) (string, error)
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{Base: models.Base{ID: 1}, Email: email}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{Base: models.Base{ID: 1}, Email: email}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}, Email: "user@test.com"}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) StoreRefreshTokenHash(userID uint, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID uint) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

var _ services.UserServicer = (*mockUserService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorEnvelope(t *testing.T, result map[string]interface{}, statusCode int) {
	t.Helper()
	if result["success"] != false {
		t.Fatalf("expected success=false, got: %v", result)
	}
	if got := result["statusCode"].(float64); int(got) != statusCode {
		t.Errorf("expected statusCode %d, got %v", statusCode, got)
	}
	if msg, _ := result["message"].(string); msg == "" {
		t.Error("expected a non-empty error message")
	}
}

func dataField(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	if result["success"] != true {
		t.Fatalf("expected success=true, got: %v", result)
	}
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object in response, got: %v", result)
	}
	return data
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/signup", handler.Signup)
	r.POST("/auth/signin", handler.Signin)
	r.POST("/auth/refresh", handler.Refresh)
	r.GET("/user/profile", injectUserID(1), handler.GetProfile)
	return r
}

// --- tests ---

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("returns 201 with token pair", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, firstName, lastName string) (*models.User, error) {
				return &models.User{
					Base:      models.Base{ID: 7},
					Email:     email,
					FirstName: firstName,
					LastName:  lastName,
				}, nil
			},
			getUserByIDFn: func(id uint) (*models.User, error) {
				return &models.User{Base: models.Base{ID: id}, Email: "new@test.com", FirstName: "New"}, nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup",
			`{"email":"new@test.com","password":"password123","firstName":"New","lastName":"User"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		data := dataField(t, parseJSON(t, rec))
		if data["accessToken"] == "" || data["refreshToken"] == "" {
			t.Error("expected both tokens in response")
		}
		user := data["user"].(map[string]interface{})
		if user["email"] != "new@test.com" {
			t.Errorf("expected email new@test.com, got %v", user["email"])
		}
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup", `{"email":"new@test.com","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorEnvelope(t, parseJSON(t, rec), http.StatusBadRequest)
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup",
			`{"email":"dup@test.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorEnvelope(t, parseJSON(t, rec), http.StatusConflict)
	})
}

func TestAuthHandler_Signin(t *testing.T) {
	t.Run("returns 200 with token pair", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signin",
			`{"email":"user@test.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := dataField(t, parseJSON(t, rec))
		if data["accessToken"] == "" {
			t.Error("expected access token in response")
		}
	})

	t.Run("returns 401 on unknown email", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByEmailFn: func(string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signin",
			`{"email":"nobody@test.com","password":"password123"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 401 on wrong password", func(t *testing.T) {
		userSvc := &mockUserService{
			verifyPasswordFn: func(*models.User, string) bool { return false },
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signin",
			`{"email":"user@test.com","password":"wrong-password"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorEnvelope(t, parseJSON(t, rec), http.StatusUnauthorized)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	makeRefreshToken := func(t *testing.T, userID uint) string {
		t.Helper()
		token, err := middleware.GenerateRefreshToken(&models.User{
			Base:  models.Base{ID: userID},
			Email: "user@test.com",
		})
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}
		return token
	}

	t.Run("returns 200 with new pair for matching hash", func(t *testing.T) {
		token := makeRefreshToken(t, 1)
		userSvc := &mockUserService{
			getRefreshTokenHashFn: func(uint) (string, error) {
				return middleware.HashToken(token), nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh",
			fmt.Sprintf(`{"refreshToken":%q}`, token))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := dataField(t, parseJSON(t, rec))
		if data["refreshToken"] == token {
			t.Error("expected refresh token to be rotated")
		}
	})

	t.Run("returns 401 on garbage token", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", `{"refreshToken":"not-a-jwt"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 401 on stale token", func(t *testing.T) {
		token := makeRefreshToken(t, 1)
		userSvc := &mockUserService{
			getRefreshTokenHashFn: func(uint) (string, error) {
				return "hash-of-a-newer-token", nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh",
			fmt.Sprintf(`{"refreshToken":%q}`, token))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 401 when access token is used", func(t *testing.T) {
		accessToken, err := middleware.GenerateAccessToken(&models.User{
			Base:  models.Base{ID: 1},
			Email: "user@test.com",
		})
		if err != nil {
			t.Fatalf("failed to generate access token: %v", err)
		}
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh",
			fmt.Sprintf(`{"refreshToken":%q}`, accessToken))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns 200 with profile", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id uint) (*models.User, error) {
				return &models.User{
					Base:      models.Base{ID: id},
					Email:     "me@test.com",
					FirstName: "Me",
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/user/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := dataField(t, parseJSON(t, rec))
		if data["email"] != "me@test.com" {
			t.Errorf("expected email me@test.com, got %v", data["email"])
		}
	})

	t.Run("returns 401 without user in context", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := gin.New()
		r.GET("/user/profile", handler.GetProfile)

		rec := doRequest(r, "GET", "/user/profile", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
