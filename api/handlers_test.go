package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/finassist/backend/db"
	"github.com/finassist/backend/models"
)

const testJWTSecret = "test_secret"

func setupTestHandler(t *testing.T) (*gin.Engine, *db.Storage) {
	t.Helper()

	_ = godotenv.Load("../.env")
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}

	storage, err := db.NewStorage(connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(storage.Close)

	_, err = storage.DB.Exec("TRUNCATE TABLE transactions, savings_goals, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	handler := NewHandler(storage, testJWTSecret, time.Hour)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	root := r.Group("/api")
	root.POST("/auth/register", handler.Register)
	root.POST("/auth/login", handler.Login)

	protected := root.Group("/", handler.AuthMiddleware())
	protected.GET("/auth/me", handler.Me)
	protected.PATCH("/users/update", handler.UpdateProfile)
	protected.PATCH("/users/update-password", handler.UpdatePassword)
	protected.POST("/transactions", handler.CreateTransaction)
	protected.GET("/transactions", handler.GetTransactions)
	protected.GET("/transactions/:id", handler.GetTransaction)
	protected.PATCH("/transactions/:id", handler.UpdateTransaction)
	protected.DELETE("/transactions/:id", handler.DeleteTransaction)
	protected.POST("/savings-goals", handler.CreateSavingsGoal)
	protected.GET("/savings-goals", handler.GetSavingsGoals)
	protected.GET("/savings-goals/:id", handler.GetSavingsGoal)
	protected.PATCH("/savings-goals/:id", handler.UpdateSavingsGoal)
	protected.DELETE("/savings-goals/:id", handler.DeleteSavingsGoal)
	protected.PATCH("/savings-goals/:id/contribute", handler.ContributeToSavingsGoal)
	protected.GET("/dashboard/summary", handler.GetSummary)

	return r, storage
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser registers a user through the API and returns its token.
func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doRequest(r, "POST", "/api/auth/register", "", models.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
		Currency: "USD",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var resp models.AuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp.Token
}

func TestRegister(t *testing.T) {
	r, _ := setupTestHandler(t)

	w := doRequest(r, "POST", "/api/auth/register", "", models.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		Currency: "EUR",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var resp models.AuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected token, got empty")
	}
	if resp.User.Email != "alice@example.com" || resp.User.Currency != "EUR" {
		t.Errorf("Unexpected user in response: %+v", resp.User)
	}
	if resp.User.PasswordHash != "" {
		t.Error("Password hash leaked in response")
	}

	// duplicate email
	w = doRequest(r, "POST", "/api/auth/register", "", models.RegisterRequest{
		Name:     "Alice Again",
		Email:    "alice@example.com",
		Password: "otherpassword",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	var errResp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if errResp.Message != "Email already in use" {
		t.Errorf("Expected 'Email already in use', got %q", errResp.Message)
	}

	// short password
	w = doRequest(r, "POST", "/api/auth/register", "", models.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	// unsupported currency
	w = doRequest(r, "POST", "/api/auth/register", "", models.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "password123",
		Currency: "CHF",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestLogin(t *testing.T) {
	r, _ := setupTestHandler(t)
	registerUser(t, r, "alice@example.com")

	w := doRequest(r, "POST", "/api/auth/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp models.AuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected token, got empty")
	}

	// wrong password and unknown email must be indistinguishable
	for _, req := range []models.LoginRequest{
		{Email: "alice@example.com", Password: "wrongpassword"},
		{Email: "nobody@example.com", Password: "password123"},
	} {
		w = doRequest(r, "POST", "/api/auth/login", "", req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
		var errResp models.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if errResp.Message != "Invalid credentials" {
			t.Errorf("Expected 'Invalid credentials', got %q", errResp.Message)
		}
	}
}

func TestMe(t *testing.T) {
	r, _ := setupTestHandler(t)
	token := registerUser(t, r, "alice@example.com")

	w := doRequest(r, "GET", "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp models.UserResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("Expected alice@example.com, got %q", resp.User.Email)
	}
}

func TestAuthBoundary(t *testing.T) {
	r, storage := setupTestHandler(t)
	registerUser(t, r, "alice@example.com")

	protectedCalls := []struct {
		method, path string
		body         interface{}
	}{
		{"GET", "/api/auth/me", nil},
		{"POST", "/api/transactions", models.TransactionRequest{Description: "x", Amount: 1, Category: "Other"}},
		{"GET", "/api/transactions", nil},
		{"POST", "/api/savings-goals", models.SavingsGoalRequest{Name: "x", Target: 1, Deadline: time.Now()}},
		{"PATCH", "/api/users/update", models.UpdateProfileRequest{Name: "x"}},
		{"GET", "/api/dashboard/summary", nil},
	}
	for _, call := range protectedCalls {
		w := doRequest(r, call.method, call.path, "", call.body)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: expected %d, got %d", call.method, call.path, http.StatusUnauthorized, w.Code)
		}
	}

	// malformed header formats
	for _, header := range []string{"Bearer", "Token abc", "abc"} {
		req, _ := http.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Header %q: expected %d, got %d", header, http.StatusUnauthorized, w.Code)
		}
	}

	// the rejected POSTs must not have written anything
	var count int
	if err := storage.DB.QueryRow("SELECT count(*) FROM transactions").Scan(&count); err != nil {
		t.Fatalf("Failed to count transactions: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 transactions after rejected requests, got %d", count)
	}
}

func TestTransactionCRUD(t *testing.T) {
	r, _ := setupTestHandler(t)
	token := registerUser(t, r, "alice@example.com")

	// create
	w := doRequest(r, "POST", "/api/transactions", token, models.TransactionRequest{
		Date:        time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Description: "Groceries",
		Amount:      -42.50,
		Category:    "Food",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var created models.TransactionResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.Transaction.ID == 0 {
		t.Error("Expected generated id")
	}

	// round trip through list
	w = doRequest(r, "GET", "/api/transactions", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var list models.TransactionsResponse
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if list.Count != 1 || len(list.Transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got count=%d len=%d", list.Count, len(list.Transactions))
	}
	if list.Transactions[0].Amount != -42.50 || list.Transactions[0].Category != "Food" {
		t.Errorf("Round trip mismatch: %+v", list.Transactions[0])
	}

	// repeated get returns identical content
	path := fmt.Sprintf("/api/transactions/%d", created.Transaction.ID)
	first := doRequest(r, "GET", path, token, nil)
	second := doRequest(r, "GET", path, token, nil)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("Expected status %d twice, got %d and %d", http.StatusOK, first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("Repeated GET returned different content")
	}

	// update
	w = doRequest(r, "PATCH", path, token, models.TransactionRequest{
		Date:        time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
		Description: "Restaurant",
		Amount:      -60,
		Category:    "Entertainment",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var updated models.TransactionResponse
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if updated.Transaction.Description != "Restaurant" || updated.Transaction.Amount != -60 {
		t.Errorf("Update not applied: %+v", updated.Transaction)
	}

	// validation on update
	w = doRequest(r, "PATCH", path, token, models.TransactionRequest{
		Description: "x",
		Amount:      10,
		Category:    "NotACategory",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	// delete, then everything 404s
	w = doRequest(r, "DELETE", path, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	for _, method := range []string{"GET", "DELETE"} {
		w = doRequest(r, method, path, token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s after delete: expected %d, got %d", method, http.StatusNotFound, w.Code)
		}
	}
}

func TestTransactionValidation(t *testing.T) {
	r, _ := setupTestHandler(t)
	token := registerUser(t, r, "alice@example.com")

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		name string
		req  models.TransactionRequest
	}{
		{"missing description", models.TransactionRequest{Amount: 10, Category: "Food"}},
		{"long description", models.TransactionRequest{Description: string(long), Amount: 10, Category: "Food"}},
		{"bad category", models.TransactionRequest{Description: "x", Amount: 10, Category: "Gambling"}},
		{"empty category", models.TransactionRequest{Description: "x", Amount: 10}},
	}
	for _, tc := range cases {
		w := doRequest(r, "POST", "/api/transactions", token, tc.req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected %d, got %d", tc.name, http.StatusBadRequest, w.Code)
		}
	}
}

func TestTransactionFilters(t *testing.T) {
	r, _ := setupTestHandler(t)
	token := registerUser(t, r, "alice@example.com")

	seed := []models.TransactionRequest{
		{Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Description: "Salary", Amount: 3000, Category: "Income"},
		{Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Description: "Rent", Amount: -1200, Category: "Housing"},
		{Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Description: "Groceries", Amount: -80, Category: "Food"},
		{Date: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), Description: "Dinner", Amount: -45, Category: "Food"},
	}
	for _, req := range seed {
		w := doRequest(r, "POST", "/api/transactions", token, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Seed failed: %d %s", w.Code, w.Body.String())
		}
	}

	var list models.TransactionsResponse

	// newest first
	w := doRequest(r, "GET", "/api/transactions", token, nil)
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if list.Count != 4 {
		t.Fatalf("Expected 4 transactions, got %d", list.Count)
	}
	for i := 1; i < len(list.Transactions); i++ {
		if list.Transactions[i].Date.After(list.Transactions[i-1].Date) {
			t.Error("Expected transactions ordered newest first")
		}
	}

	// category filter
	w = doRequest(r, "GET", "/api/transactions?category=Food", token, nil)
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if list.Count != 2 {
		t.Errorf("Expected 2 Food transactions, got %d", list.Count)
	}

	// inclusive date range
	w = doRequest(r, "GET", "/api/transactions?startDate=2025-01-15&endDate=2025-02-01", token, nil)
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if list.Count != 2 {
		t.Errorf("Expected 2 transactions in range, got %d", list.Count)
	}

	// combined
	w = doRequest(r, "GET", "/api/transactions?startDate=2025-01-01&endDate=2025-01-31&category=Housing", token, nil)
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if list.Count != 1 || list.Transactions[0].Description != "Rent" {
		t.Errorf("Combined filter mismatch: %+v", list.Transactions)
	}

	// invalid inputs
	for _, q := range []string{"startDate=notadate", "endDate=13-37", "category=Gambling"} {
		w = doRequest(r, "GET", "/api/transactions?"+q, token, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Query %q: expected %d, got %d", q, http.StatusBadRequest, w.Code)
		}
	}
}

func TestOwnershipIsolation(t *testing.T) {
	r, _ := setupTestHandler(t)
	aliceToken := registerUser(t, r, "alice@example.com")
	bobToken := registerUser(t, r, "bob@example.com")

	w := doRequest(r, "POST", "/api/transactions", aliceToken, models.TransactionRequest{
		Description: "Groceries", Amount: -10, Category: "Food",
	})
	var tx models.TransactionResponse
	if err := json.NewDecoder(w.Body).Decode(&tx); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	w = doRequest(r, "POST", "/api/savings-goals", aliceToken, models.SavingsGoalRequest{
		Name: "Vacation", Target: 1000, Deadline: time.Now().AddDate(1, 0, 0),
	})
	var goal models.SavingsGoalResponse
	if err := json.NewDecoder(w.Body).Decode(&goal); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	txPath := fmt.Sprintf("/api/transactions/%d", tx.Transaction.ID)
	goalPath := fmt.Sprintf("/api/savings-goals/%d", goal.SavingsGoal.ID)

	calls := []struct {
		method, path string
		body         interface{}
	}{
		{"GET", txPath, nil},
		{"PATCH", txPath, models.TransactionRequest{Description: "hijack", Amount: 1, Category: "Other"}},
		{"DELETE", txPath, nil},
		{"GET", goalPath, nil},
		{"PATCH", goalPath, models.SavingsGoalRequest{Name: "hijack", Target: 1, Deadline: time.Now()}},
		{"DELETE", goalPath, nil},
		{"PATCH", goalPath + "/contribute", models.ContributeRequest{Amount: 10}},
	}
	for _, call := range calls {
		w := doRequest(r, call.method, call.path, bobToken, call.body)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s as other user: expected %d, got %d", call.method, call.path, http.StatusNotFound, w.Code)
		}
	}

	// bob's list must not include alice's data
	w = doRequest(r, "GET", "/api/transactions", bobToken, nil)
	var list models.TransactionsResponse
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if list.Count != 0 {
		t.Errorf("Expected empty list for bob, got %d", list.Count)
	}

	// alice's transaction must have survived bob's delete attempt
	w = doRequest(r, "GET", txPath, aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected alice's transaction intact, got %d", w.Code)
	}
}

func TestSavingsGoals(t *testing.T) {
	r, _ := setupTestHandler(t)
	token := registerUser(t, r, "alice@example.com")

	deadline := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w := doRequest(r, "POST", "/api/savings-goals", token, models.SavingsGoalRequest{
		Name: "Emergency fund", Target: 100, Current: 90, Deadline: deadline,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var created models.SavingsGoalResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.SavingsGoal.Current != 90 {
		t.Errorf("Expected current 90, got %v", created.SavingsGoal.Current)
	}

	path := fmt.Sprintf("/api/savings-goals/%d", created.SavingsGoal.ID)

	// contribution clamps at the target
	w = doRequest(r, "PATCH", path+"/contribute", token, models.ContributeRequest{Amount: 50})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var contributed models.SavingsGoalResponse
	if err := json.NewDecoder(w.Body).Decode(&contributed); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if contributed.SavingsGoal.Current != 100 {
		t.Errorf("Expected clamped current 100, got %v", contributed.SavingsGoal.Current)
	}

	// non-positive contributions are rejected
	for _, amount := range []float64{0, -25} {
		w = doRequest(r, "PATCH", path+"/contribute", token, models.ContributeRequest{Amount: amount})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Contribution %v: expected %d, got %d", amount, http.StatusBadRequest, w.Code)
		}
	}

	// update replaces name, target and deadline but not current
	w = doRequest(r, "PATCH", path, token, models.SavingsGoalRequest{
		Name: "Bigger fund", Target: 500, Deadline: deadline.AddDate(1, 0, 0),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var updated models.SavingsGoalResponse
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if updated.SavingsGoal.Name != "Bigger fund" || updated.SavingsGoal.Target != 500 {
		t.Errorf("Update not applied: %+v", updated.SavingsGoal)
	}
	if updated.SavingsGoal.Current != 100 {
		t.Errorf("Update must not touch current, got %v", updated.SavingsGoal.Current)
	}

	// validation
	bad := []models.SavingsGoalRequest{
		{Name: "", Target: 10, Deadline: deadline},
		{Name: "x", Target: -1, Deadline: deadline},
		{Name: "x", Target: 10, Current: 20, Deadline: deadline},
		{Name: "x", Target: 10},
	}
	for i, req := range bad {
		w = doRequest(r, "POST", "/api/savings-goals", token, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Bad goal %d: expected %d, got %d", i, http.StatusBadRequest, w.Code)
		}
	}

	// list and delete
	w = doRequest(r, "GET", "/api/savings-goals", token, nil)
	var list models.SavingsGoalsResponse
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if list.Count != 1 {
		t.Errorf("Expected 1 goal, got %d", list.Count)
	}

	w = doRequest(r, "DELETE", path, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	w = doRequest(r, "GET", path, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected %d after delete, got %d", http.StatusNotFound, w.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	r, _ := setupTestHandler(t)
	token := registerUser(t, r, "alice@example.com")
	registerUser(t, r, "bob@example.com")

	// partial update: only currency
	w := doRequest(r, "PATCH", "/api/users/update", token, models.UpdateProfileRequest{Currency: "GBP"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp models.UserResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.User.Currency != "GBP" {
		t.Errorf("Expected currency GBP, got %q", resp.User.Currency)
	}
	if resp.User.Name != "Test User" || resp.User.Email != "alice@example.com" {
		t.Errorf("Unprovided fields must stay untouched: %+v", resp.User)
	}

	// taking another user's email fails
	w = doRequest(r, "PATCH", "/api/users/update", token, models.UpdateProfileRequest{Email: "bob@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected %d on duplicate email, got %d", http.StatusBadRequest, w.Code)
	}

	// invalid currency
	w = doRequest(r, "PATCH", "/api/users/update", token, models.UpdateProfileRequest{Currency: "CHF"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected %d on bad currency, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUpdatePassword(t *testing.T) {
	r, _ := setupTestHandler(t)
	token := registerUser(t, r, "alice@example.com")

	// wrong current password
	w := doRequest(r, "PATCH", "/api/users/update-password", token, models.UpdatePasswordRequest{
		CurrentPassword: "wrongpassword",
		NewPassword:     "newpassword1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	w = doRequest(r, "PATCH", "/api/users/update-password", token, models.UpdatePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	// old password no longer works, new one does
	w = doRequest(r, "POST", "/api/auth/login", "", models.LoginRequest{
		Email: "alice@example.com", Password: "password123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected old password rejected, got %d", w.Code)
	}
	w = doRequest(r, "POST", "/api/auth/login", "", models.LoginRequest{
		Email: "alice@example.com", Password: "newpassword1",
	})
	if w.Code != http.StatusOK {
		t.Errorf("Expected new password accepted, got %d", w.Code)
	}
}

func TestGetSummary(t *testing.T) {
	r, _ := setupTestHandler(t)
	token := registerUser(t, r, "alice@example.com")

	seed := []models.TransactionRequest{
		{Description: "Salary", Amount: 5000, Category: "Income"},
		{Description: "Rent", Amount: -1500, Category: "Housing"},
		{Description: "Groceries", Amount: -300, Category: "Food"},
		{Description: "Dinner", Amount: -200, Category: "Food"},
	}
	for _, req := range seed {
		req.Date = time.Now()
		w := doRequest(r, "POST", "/api/transactions", token, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Seed failed: %d %s", w.Code, w.Body.String())
		}
	}

	w := doRequest(r, "GET", "/api/dashboard/summary", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var summary models.SummaryResponse
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if summary.Income != 5000 || summary.Expenses != 2000 || summary.Balance != 3000 {
		t.Errorf("Unexpected aggregates: %+v", summary)
	}
	if summary.SavingsRate != 60 {
		t.Errorf("Expected savings rate 60, got %v", summary.SavingsRate)
	}
	var food *models.CategorySummary
	for i := range summary.Categories {
		if summary.Categories[i].Category == "Food" {
			food = &summary.Categories[i]
		}
	}
	if food == nil || food.Total != 500 || food.Count != 2 || food.Percentage != 25 {
		t.Errorf("Unexpected Food summary: %+v", food)
	}
	if summary.Formatted.Balance != "$3,000.00" {
		t.Errorf("Expected formatted balance $3,000.00, got %q", summary.Formatted.Balance)
	}
	if summary.Formatted.Expenses != "$2,000.00" {
		t.Errorf("Expected formatted expenses $2,000.00, got %q", summary.Formatted.Expenses)
	}
}
