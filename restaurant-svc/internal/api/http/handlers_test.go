package httpapi_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "restaurant-backend/restaurant-svc/internal/api/http"
	"restaurant-backend/restaurant-svc/internal/auth"
	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/mocks"
	"restaurant-backend/restaurant-svc/internal/service"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var tokens = auth.NewService("handler-secret", time.Hour)

func tokenFor(t *testing.T, role domain.Role) string {
	t.Helper()
	token, err := tokens.Issue(&domain.User{ID: "u-" + string(role), Role: role})
	require.NoError(t, err)
	return token
}

func setupTestRouter(handler *httpapi.Handler) http.Handler {
	handler.Auth = tokens
	return httpapi.NewRouter(handler)
}

func serve(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTableHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMocks func(*mocks.TableServiceInterface)
		expectedCode int
		expectedBody string
	}{
		{
			name: "valid request",
			body: `{"tableNumber":3,"seats":4,"location":"terrace","specialFeatures":["window-view"]}`,
			prepareMocks: func(m *mocks.TableServiceInterface) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(table *domain.Table) bool {
					return table.TableNumber == 3 && table.IsAvailable && table.Location == domain.Location("terrace")
				})).Return(nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: "Table created successfully!",
		},
		{
			name:         "invalid JSON",
			body:         `{invalid}`,
			prepareMocks: func(m *mocks.TableServiceInterface) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid request body",
		},
		{
			name:         "unknown location",
			body:         `{"tableNumber":3,"seats":4,"location":"roof"}`,
			prepareMocks: func(m *mocks.TableServiceInterface) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: "location must be one of",
		},
		{
			name:         "too many seats",
			body:         `{"tableNumber":3,"seats":11,"location":"bar"}`,
			prepareMocks: func(m *mocks.TableServiceInterface) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: "seats must be at most 10",
		},
		{
			name: "duplicate number",
			body: `{"tableNumber":3,"seats":4,"location":"bar"}`,
			prepareMocks: func(m *mocks.TableServiceInterface) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*domain.Table")).
					Return(domain.Validation("Table number must be unique")).Once()
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Table number must be unique",
		},
		{
			name: "database error",
			body: `{"tableNumber":3,"seats":4,"location":"bar"}`,
			prepareMocks: func(m *mocks.TableServiceInterface) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*domain.Table")).Return(errors.New("db error")).Once()
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Server error",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			tables := mocks.NewTableServiceInterface(t)
			testCase.prepareMocks(tables)
			router := setupTestRouter(&httpapi.Handler{Tables: tables})

			w := serve(router, "POST", "/tables", tokenFor(t, domain.RoleAdmin), testCase.body)

			assert.Equal(t, testCase.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), testCase.expectedBody)
		})
	}
}

func TestUpdateTableHandler_PartialFields(t *testing.T) {
	tables := mocks.NewTableServiceInterface(t)
	tables.On("Update", mock.Anything, "t1", mock.MatchedBy(func(u service.TableUpdate) bool {
		return u.Seats != nil && *u.Seats == 6 && u.TableNumber == nil && u.Location == nil
	})).Return(&domain.Table{ID: "t1", Seats: 6}, nil).Once()
	router := setupTestRouter(&httpapi.Handler{Tables: tables})

	w := serve(router, "PUT", "/tables/t1", tokenFor(t, domain.RoleAdmin), `{"seats":6}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Table updated successfully!")
}

func TestUpdateTableHandler_SeatsOutOfRange(t *testing.T) {
	tables := mocks.NewTableServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Tables: tables})

	w := serve(router, "PUT", "/tables/t1", tokenFor(t, domain.RoleAdmin), `{"seats":11}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "seats must be at most 10")
}

func TestCreateMenuItemHandler_Validation(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedBody string
	}{
		{
			name:         "missing image",
			body:         `{"name":"Burger","price":10,"category":"c1"}`,
			expectedBody: "image is required",
		},
		{
			name:         "missing price",
			body:         `{"name":"Burger","image":"burger.png","category":"c1"}`,
			expectedBody: "price is required",
		},
		{
			name:         "negative price",
			body:         `{"name":"Burger","image":"burger.png","price":-1,"category":"c1"}`,
			expectedBody: "price must be at least 0",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router := setupTestRouter(&httpapi.Handler{})

			w := serve(router, "POST", "/menu-item", tokenFor(t, domain.RoleAdmin), testCase.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), testCase.expectedBody)
		})
	}
}

func TestFindAvailableTablesHandler(t *testing.T) {
	at := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		query        string
		prepareMocks func(*mocks.TableServiceInterface)
		expectedCode int
	}{
		{
			name:  "seats and time",
			query: "?seats=4&time=2026-05-01T19:00:00Z",
			prepareMocks: func(m *mocks.TableServiceInterface) {
				m.On("FindAvailable", mock.Anything, 4, at).Return([]domain.Table{{ID: "t1"}}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:  "seats default to one",
			query: "?time=2026-05-01T19:00:00Z",
			prepareMocks: func(m *mocks.TableServiceInterface) {
				m.On("FindAvailable", mock.Anything, 1, at).Return([]domain.Table{}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "zero seats",
			query:        "?seats=0&time=2026-05-01T19:00:00Z",
			prepareMocks: func(m *mocks.TableServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad time",
			query:        "?seats=2&time=tonight",
			prepareMocks: func(m *mocks.TableServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			tables := mocks.NewTableServiceInterface(t)
			testCase.prepareMocks(tables)
			router := setupTestRouter(&httpapi.Handler{Tables: tables})

			w := serve(router, "GET", "/tables/available"+testCase.query, tokenFor(t, domain.RoleCustomer), "")

			assert.Equal(t, testCase.expectedCode, w.Code)
		})
	}
}

func TestGetTableHandler_NotFound(t *testing.T) {
	tables := mocks.NewTableServiceInterface(t)
	tables.On("Get", mock.Anything, "missing").Return(nil, domain.NotFound(domain.MsgTableNotFound)).Once()
	router := setupTestRouter(&httpapi.Handler{Tables: tables})

	w := serve(router, "GET", "/tables/missing", tokenFor(t, domain.RoleStaff), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Table not found"}`, w.Body.String())
}

func TestTakeawayStatusHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMocks func(*mocks.TakeawayServiceInterface)
		expectedCode int
	}{
		{
			name: "valid status",
			body: `{"status":"Preparing"}`,
			prepareMocks: func(m *mocks.TakeawayServiceInterface) {
				m.On("UpdateStatus", mock.Anything, "tk1", domain.TakeawayStatus("Preparing")).
					Return(&domain.Takeaway{ID: "tk1", Status: "Preparing"}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing status",
			body:         `{}`,
			prepareMocks: func(m *mocks.TakeawayServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "rejected transition",
			body: `{"status":"Pending"}`,
			prepareMocks: func(m *mocks.TakeawayServiceInterface) {
				m.On("UpdateStatus", mock.Anything, "tk1", domain.TakeawayStatus("Pending")).
					Return(nil, domain.InvalidTransition("Takeaway cannot move from Completed to Pending")).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			takeaways := mocks.NewTakeawayServiceInterface(t)
			testCase.prepareMocks(takeaways)
			router := setupTestRouter(&httpapi.Handler{Takeaways: takeaways})

			w := serve(router, "PUT", "/takeaway/tk1/status", tokenFor(t, domain.RoleStaff), testCase.body)

			assert.Equal(t, testCase.expectedCode, w.Code)
		})
	}
}

func TestCreateTakeawayHandler_UsesCaller(t *testing.T) {
	takeaways := mocks.NewTakeawayServiceInterface(t)
	takeaways.On("Create", mock.Anything, mock.MatchedBy(func(tk *domain.Takeaway) bool {
		return tk.UserID == "u-customer" && len(tk.Items) == 1 && tk.Items[0].Quantity == 2
	})).Return(nil).Once()
	router := setupTestRouter(&httpapi.Handler{Takeaways: takeaways})

	body := `{"items":[{"menuItem":"m1","quantity":2,"price":4.5}],
		"deliveryAddress":{"street":"1 Main St","city":"Springfield"},
		"contactInfo":{"phone":"555-0100"},"paymentMethod":"Cash"}`
	w := serve(router, "POST", "/takeaway", tokenFor(t, domain.RoleCustomer), body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Takeaway created successfully!")
}

func TestCreateTakeawayHandler_Validation(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedBody string
	}{
		{
			name:         "no items",
			body:         `{"items":[],"deliveryAddress":{"street":"s","city":"c"},"contactInfo":{"phone":"1"},"paymentMethod":"Cash"}`,
			expectedBody: "items must be at least 1",
		},
		{
			name:         "unknown payment method",
			body:         `{"items":[{"menuItem":"m1","quantity":1,"price":1}],"deliveryAddress":{"street":"s","city":"c"},"contactInfo":{"phone":"1"},"paymentMethod":"Barter"}`,
			expectedBody: "paymentMethod must be one of",
		},
		{
			name:         "missing phone",
			body:         `{"items":[{"menuItem":"m1","quantity":1,"price":1}],"deliveryAddress":{"street":"s","city":"c"},"paymentMethod":"Cash"}`,
			expectedBody: "phone",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			takeaways := mocks.NewTakeawayServiceInterface(t)
			router := setupTestRouter(&httpapi.Handler{Takeaways: takeaways})

			w := serve(router, "POST", "/takeaway", tokenFor(t, domain.RoleCustomer), testCase.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), testCase.expectedBody)
		})
	}
}

func TestTakeawayQRCodeHandler(t *testing.T) {
	takeaways := mocks.NewTakeawayServiceInterface(t)
	takeaways.On("QRCode", mock.Anything, "tk1").Return([]byte("\x89PNG"), nil).Once()
	router := setupTestRouter(&httpapi.Handler{Takeaways: takeaways})

	w := serve(router, "GET", "/takeaway/tk1/qrcode", tokenFor(t, domain.RoleCustomer), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", w.Body.String())
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestTakeawayQRCodeHandler_WriteFailureIsLogged(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	takeaways := mocks.NewTakeawayServiceInterface(t)
	takeaways.On("QRCode", mock.Anything, "tk1").Return([]byte("\x89PNG"), nil).Once()
	router := setupTestRouter(&httpapi.Handler{Takeaways: takeaways})

	req := httptest.NewRequest("GET", "/takeaway/tk1/qrcode", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, domain.RoleCustomer))
	w := failingWriter{httptest.NewRecorder()}
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "failed to write qr code")
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMocks func(*mocks.UserServiceInterface)
		expectedCode int
		expectedBody string
	}{
		{
			name: "valid credentials",
			body: `{"email":"Cara@Example.com","password":"secret1"}`,
			prepareMocks: func(m *mocks.UserServiceInterface) {
				m.On("Login", mock.Anything, "cara@example.com", "secret1").
					Return(&domain.User{ID: "u1", Email: "cara@example.com"}, "token-value", nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: "token-value",
		},
		{
			name:         "missing password",
			body:         `{"email":"cara@example.com"}`,
			prepareMocks: func(m *mocks.UserServiceInterface) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Email and password are required",
		},
		{
			name: "bad credentials",
			body: `{"email":"cara@example.com","password":"nope"}`,
			prepareMocks: func(m *mocks.UserServiceInterface) {
				m.On("Login", mock.Anything, "cara@example.com", "nope").
					Return(nil, "", domain.Validation("Invalid email or password")).Once()
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid email or password",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			users := mocks.NewUserServiceInterface(t)
			testCase.prepareMocks(users)
			router := setupTestRouter(&httpapi.Handler{Users: users})

			w := serve(router, "POST", "/login", "", testCase.body)

			assert.Equal(t, testCase.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), testCase.expectedBody)
		})
	}
}

func TestSignupHandler_Roles(t *testing.T) {
	staffBody := `{"name":"Sam","surname":"T","username":"sam","email":"sam@example.com","password":"secret1","role":"staff"}`

	tests := []struct {
		name         string
		token        string
		prepareMocks func(*mocks.UserServiceInterface)
		expectedCode int
	}{
		{
			name:         "anonymous",
			prepareMocks: func(m *mocks.UserServiceInterface) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "customer",
			token:        tokenFor(t, domain.RoleCustomer),
			prepareMocks: func(m *mocks.UserServiceInterface) {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:  "admin",
			token: tokenFor(t, domain.RoleAdmin),
			prepareMocks: func(m *mocks.UserServiceInterface) {
				m.On("Signup", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.Role == domain.RoleStaff && u.Email == "sam@example.com"
				}), "secret1").Return(nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			users := mocks.NewUserServiceInterface(t)
			testCase.prepareMocks(users)
			router := setupTestRouter(&httpapi.Handler{Users: users})

			w := serve(router, "POST", "/signup", testCase.token, staffBody)

			assert.Equal(t, testCase.expectedCode, w.Code)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	router := setupTestRouter(&httpapi.Handler{})

	w := serve(router, "GET", "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := setupTestRouter(&httpapi.Handler{})

	req := httptest.NewRequest("OPTIONS", "/tables", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
