package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "restaurant-backend/restaurant-svc/internal/api/http"
	"restaurant-backend/restaurant-svc/internal/auth"
	"restaurant-backend/restaurant-svc/internal/service"
	"restaurant-backend/restaurant-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dinnerTime = "2026-05-01T19:00:00Z"

type testApp struct {
	t      *testing.T
	router http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := storage.NewMemoryStore()
	tokens := auth.NewService("test-secret", time.Hour)
	users := service.NewUserService(store, tokens, tokens)
	require.NoError(t, users.EnsureAdmin(context.Background(), "admin@example.com", "adminpw"))

	handler := httpapi.NewHandler(
		service.NewTableService(store, store),
		service.NewReservationService(store, store, nil, nil),
		service.NewMenuService(store),
		service.NewTakeawayService(store, store, nil, service.DefaultQRGenerator{BaseURL: "http://test"}, nil),
		users,
		tokens,
	)
	return &testApp{t: t, router: httpapi.NewRouter(handler)}
}

func (a *testApp) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()

	recorder := a.raw(method, path, token, body)
	var decoded map[string]any
	if recorder.Header().Get("Content-Type") == "application/json" {
		_ = json.Unmarshal(recorder.Body.Bytes(), &decoded)
	}
	return recorder.Code, decoded
}

func (a *testApp) list(path, token string) []map[string]any {
	a.t.Helper()

	recorder := a.raw("GET", path, token, nil)
	require.Equal(a.t, http.StatusOK, recorder.Code, recorder.Body.String())
	var decoded []map[string]any
	require.NoError(a.t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return decoded
}

func (a *testApp) raw(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, req)
	return recorder
}

func (a *testApp) login(email, password string) string {
	a.t.Helper()

	code, body := a.do("POST", "/login", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, code, body)
	return body["token"].(string)
}

// signup registers an account and logs it in. Non-customer roles need adminToken.
func (a *testApp) signup(username, role, adminToken string) (string, string) {
	a.t.Helper()

	email := username + "@example.com"
	code, body := a.do("POST", "/signup", adminToken, map[string]string{
		"name":     username,
		"surname":  "Tester",
		"username": username,
		"email":    email,
		"password": "password1",
		"role":     role,
	})
	require.Equal(a.t, http.StatusCreated, code, body)
	user := body["user"].(map[string]any)
	return user["id"].(string), a.login(email, "password1")
}

type roles struct {
	admin, staff, customer, customerID string
}

func (a *testApp) accounts() roles {
	var r roles
	r.admin = a.login("admin@example.com", "adminpw")
	_, r.staff = a.signup("sam", "staff", r.admin)
	r.customerID, r.customer = a.signup("cara", "", "")
	return r
}

func (a *testApp) createTable(adminToken string, number, seats int) string {
	a.t.Helper()

	code, body := a.do("POST", "/tables", adminToken, map[string]any{
		"tableNumber": number,
		"seats":       seats,
		"location":    "indoor",
	})
	require.Equal(a.t, http.StatusCreated, code, body)
	assert.Equal(a.t, "Table created successfully!", body["message"])
	return body["table"].(map[string]any)["id"].(string)
}

func reservationBody(tableID string, guests int) map[string]any {
	return map[string]any{
		"table":       tableID,
		"name":        "Cara",
		"surname":     "Tester",
		"email":       "cara@example.com",
		"time":        dinnerTime,
		"guestNumber": guests,
	}
}

func TestScenario_ReservationLifecycle(t *testing.T) {
	app := newTestApp(t)
	r := app.accounts()
	tableID := app.createTable(r.admin, 5, 4)

	code, body := app.do("POST", "/reservations", r.customer, reservationBody(tableID, 2))
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "Reservation created successfully!", body["message"])
	reservation := body["reservation"].(map[string]any)
	reservationID := reservation["id"].(string)
	assert.Equal(t, "pending", reservation["status"])
	assert.Equal(t, float64(5), reservation["tableNumber"])
	assert.Equal(t, r.customerID, reservation["userId"])

	code, table := app.do("GET", "/tables/"+tableID, r.customer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, table["isAvailable"])
	assert.Equal(t, reservationID, table["currentReservation"])

	code, body = app.do("POST", "/reservations", r.staff, reservationBody(tableID, 2))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Table is already reserved for the requested time.", body["message"])

	code, body = app.do("POST", "/reservations", r.customer, reservationBody(tableID, 6))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Table only has 4 seats, but 6 were requested.", body["message"])

	code, body = app.do("GET", "/reservations/"+reservationID, r.customer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cara", body["user"].(map[string]any)["name"])
	assert.Equal(t, float64(4), body["table"].(map[string]any)["seats"])

	assert.Len(t, app.list("/reservations", r.staff), 1)

	code, body = app.do("DELETE", "/reservations/"+reservationID, r.staff, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Reservation deleted and table is now available", body["message"])

	_, table = app.do("GET", "/tables/"+tableID, r.customer, nil)
	assert.Equal(t, true, table["isAvailable"])
	assert.Nil(t, table["currentReservation"])
}

func TestScenario_MoveReservation(t *testing.T) {
	app := newTestApp(t)
	r := app.accounts()
	first := app.createTable(r.admin, 1, 2)
	second := app.createTable(r.admin, 2, 6)

	code, body := app.do("POST", "/reservations", r.customer, reservationBody(first, 2))
	require.Equal(t, http.StatusCreated, code, body)
	reservationID := body["reservation"].(map[string]any)["id"].(string)

	update := reservationBody(first, 5)
	delete(update, "table")
	update["tableNumber"] = 2

	code, body = app.do("PUT", "/reservations/"+reservationID, r.staff, update)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Reservation updated successfully!", body["message"])
	assert.Equal(t, second, body["reservation"].(map[string]any)["tableId"])

	_, old := app.do("GET", "/tables/"+first, r.staff, nil)
	_, moved := app.do("GET", "/tables/"+second, r.staff, nil)
	assert.Equal(t, true, old["isAvailable"])
	assert.Equal(t, false, moved["isAvailable"])
	assert.Equal(t, reservationID, moved["currentReservation"])

	update["status"] = "cancelled"
	code, _ = app.do("PUT", "/reservations/"+reservationID, r.staff, update)
	require.Equal(t, http.StatusOK, code)
	_, moved = app.do("GET", "/tables/"+second, r.staff, nil)
	assert.Equal(t, true, moved["isAvailable"])
}

func TestScenario_SharedTableKeepsLaterClaim(t *testing.T) {
	app := newTestApp(t)
	r := app.accounts()
	tableID := app.createTable(r.admin, 1, 4)

	code, body := app.do("POST", "/reservations", r.customer, reservationBody(tableID, 2))
	require.Equal(t, http.StatusCreated, code, body)
	early := body["reservation"].(map[string]any)["id"].(string)

	late := reservationBody(tableID, 2)
	late["time"] = "2026-05-01T21:00:00Z"
	code, body = app.do("POST", "/reservations", r.customer, late)
	require.Equal(t, http.StatusCreated, code, body)
	lateID := body["reservation"].(map[string]any)["id"].(string)

	_, table := app.do("GET", "/tables/"+tableID, r.staff, nil)
	require.Equal(t, lateID, table["currentReservation"])

	cancel := reservationBody(tableID, 2)
	delete(cancel, "table")
	cancel["tableNumber"] = 1
	cancel["status"] = "cancelled"
	code, body = app.do("PUT", "/reservations/"+early, r.staff, cancel)
	require.Equal(t, http.StatusOK, code, body)

	_, table = app.do("GET", "/tables/"+tableID, r.staff, nil)
	assert.Equal(t, false, table["isAvailable"], "cancelling the early booking keeps the later claim")
	assert.Equal(t, lateID, table["currentReservation"])

	code, _ = app.do("DELETE", "/reservations/"+early, r.staff, nil)
	require.Equal(t, http.StatusOK, code)

	_, table = app.do("GET", "/tables/"+tableID, r.staff, nil)
	assert.Equal(t, false, table["isAvailable"], "deleting the early booking keeps the later claim")
	assert.Equal(t, lateID, table["currentReservation"])

	code, _ = app.do("DELETE", "/reservations/"+lateID, r.staff, nil)
	require.Equal(t, http.StatusOK, code)

	_, table = app.do("GET", "/tables/"+tableID, r.staff, nil)
	assert.Equal(t, true, table["isAvailable"])
	assert.Nil(t, table["currentReservation"])
}

func TestScenario_TableSeatsRange(t *testing.T) {
	app := newTestApp(t)
	r := app.accounts()

	code, body := app.do("POST", "/tables", r.admin, map[string]any{"tableNumber": 1, "seats": 15, "location": "bar"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "seats must be at most 10", body["message"])

	tableID := app.createTable(r.admin, 1, 10)
	code, _ = app.do("PUT", "/tables/"+tableID, r.admin, map[string]any{"seats": 11})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestScenario_AvailableTables(t *testing.T) {
	app := newTestApp(t)
	r := app.accounts()
	booked := app.createTable(r.admin, 1, 4)
	free := app.createTable(r.admin, 2, 4)
	app.createTable(r.admin, 3, 2)

	code, _ := app.do("POST", "/reservations", r.customer, reservationBody(booked, 2))
	require.Equal(t, http.StatusCreated, code)

	tables := app.list("/tables/available?seats=3&time="+dinnerTime, r.customer)
	require.Len(t, tables, 1)
	assert.Equal(t, free, tables[0]["id"])

	code, _ = app.do("GET", "/tables/available?seats=3", r.customer, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = app.do("DELETE", "/tables/"+booked, r.admin, nil)
	assert.Equal(t, http.StatusBadRequest, code, "tables with live reservations stay")
}

func TestScenario_Login(t *testing.T) {
	app := newTestApp(t)
	app.signup("cara", "", "")

	_, unknown := app.do("POST", "/login", "", map[string]string{"email": "nobody@example.com", "password": "password1"})
	code, wrong := app.do("POST", "/login", "", map[string]string{"email": "cara@example.com", "password": "nope"})

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid email or password", wrong["message"])
	assert.Equal(t, wrong["message"], unknown["message"])

	code, body := app.do("POST", "/login", "", map[string]string{"email": "cara@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email and password are required", body["message"])
}

func TestScenario_Signup(t *testing.T) {
	app := newTestApp(t)
	customerID, customer := app.signup("cara", "", "")

	staff := map[string]string{
		"name": "Sam", "surname": "Tester", "username": "sam", "email": "sam@example.com",
		"password": "password1", "role": "staff",
	}
	code, _ := app.do("POST", "/signup", "", staff)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = app.do("POST", "/signup", customer, staff)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := app.do("POST", "/signup", "", map[string]string{
		"name": "Cara", "surname": "Again", "username": "cara2", "email": "cara@example.com", "password": "password1",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already exists", body["message"])

	code, body = app.do("POST", "/signup", "", map[string]string{"name": "X", "email": "bad", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["message"], "email must be a valid email address")
	assert.Contains(t, body["message"], "password must be at least 6")

	code, body = app.do("GET", "/users/"+customerID, customer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cara", body["username"])
	assert.NotContains(t, body, "passwordHash")
}

func TestScenario_RoleGates(t *testing.T) {
	app := newTestApp(t)
	r := app.accounts()

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		wantCode int
		wantMsg  string
	}{
		{name: "no token", method: "GET", path: "/tables", wantCode: http.StatusUnauthorized, wantMsg: auth.MsgNoToken},
		{name: "bad token", method: "GET", path: "/tables", token: "garbage", wantCode: http.StatusUnauthorized, wantMsg: auth.MsgTokenInvalid},
		{name: "customer creating a table", method: "POST", path: "/tables", token: r.customer, wantCode: http.StatusForbidden, wantMsg: auth.MsgForbidden},
		{name: "customer listing reservations", method: "GET", path: "/reservations", token: r.customer, wantCode: http.StatusForbidden, wantMsg: auth.MsgForbidden},
		{name: "admin editing a reservation", method: "PUT", path: "/reservations/x", token: r.admin, wantCode: http.StatusForbidden, wantMsg: auth.MsgForbidden},
		{name: "staff ordering takeaway", method: "POST", path: "/takeaway", token: r.staff, wantCode: http.StatusForbidden, wantMsg: auth.MsgForbidden},
		{name: "customer reading tables", method: "GET", path: "/tables", token: r.customer, wantCode: http.StatusOK},
		{name: "health is public", method: "GET", path: "/health", wantCode: http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := app.raw(testCase.method, testCase.path, testCase.token, nil)
			assert.Equal(t, testCase.wantCode, recorder.Code)
			if testCase.wantMsg != "" {
				assert.Contains(t, recorder.Body.String(), testCase.wantMsg)
			}
		})
	}
}

func TestScenario_Takeaway(t *testing.T) {
	app := newTestApp(t)
	r := app.accounts()

	code, body := app.do("POST", "/category", r.admin, map[string]string{"name": "  Mains  "})
	require.Equal(t, http.StatusCreated, code, body)
	category := body["category"].(map[string]any)
	assert.Equal(t, "Mains", category["name"])
	categoryID := category["id"].(string)

	menuItem := func(name string, price float64) string {
		code, body := app.do("POST", "/menu-item", r.admin, map[string]any{
			"name": name, "image": name + ".png", "price": price, "category": categoryID,
		})
		require.Equal(t, http.StatusCreated, code, body)
		item := body["menuItem"].(map[string]any)
		assert.Equal(t, true, item["isAvailable"])
		return item["id"].(string)
	}
	burger := menuItem("Burger", 10)
	fries := menuItem("Fries", 5)

	order := map[string]any{
		"items": []map[string]any{
			{"menuItem": burger, "quantity": 2, "price": 10},
			{"menuItem": fries, "quantity": 1, "price": 5},
		},
		"deliveryAddress": map[string]string{"street": "1 Main St", "city": "Springfield"},
		"contactInfo":     map[string]string{"phone": "555-0100"},
		"paymentMethod":   "Card",
	}
	code, body = app.do("POST", "/takeaway", r.customer, order)
	require.Equal(t, http.StatusCreated, code, body)
	takeaway := body["takeaway"].(map[string]any)
	takeawayID := takeaway["id"].(string)
	assert.Equal(t, float64(25), takeaway["totalPrice"])
	assert.Equal(t, "Pending", takeaway["status"])
	assert.Equal(t, "Unpaid", takeaway["paymentStatus"])
	assert.Equal(t, "United States", takeaway["deliveryAddress"].(map[string]any)["country"])
	assert.Equal(t, r.customerID, takeaway["userId"])

	code, body = app.do("GET", "/takeaway/"+takeawayID, r.customer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["takeaway"].(map[string]any)["populatedItems"], 2)

	code, body = app.do("PUT", "/takeaway/"+takeawayID+"/status", r.staff, map[string]string{"status": "Completed"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Takeaway status updated successfully!", body["message"])

	code, body = app.do("DELETE", "/takeaway/"+takeawayID+"/cancel", r.customer, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Takeaway cannot be cancelled", body["message"])

	recorder := app.raw("GET", "/takeaway/"+takeawayID+"/qrcode", r.customer, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))

	order["items"] = []map[string]any{{"menuItem": "ghost", "quantity": 1, "price": 1}}
	code, body = app.do("POST", "/takeaway", r.customer, order)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Menu item not found", body["message"])

	code, body = app.do("DELETE", "/category/"+categoryID, r.admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Category still has menu items", body["message"])

	code, body = app.do("GET", "/takeaway", r.staff, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["takeaways"], 1)
}
