package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fintrack/internal/config"
	"fintrack/internal/logger"
	"fintrack/internal/services"
	"fintrack/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

type testServer struct {
	t  *testing.T
	r  *gin.Engine
	db *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return &testServer{t: t, r: New(db, &config.Config{CORSAllowedOrigin: "*"}), db: db}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.r.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) decode(rec *httptest.ResponseRecorder, out interface{}) {
	s.t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		s.t.Fatalf("failed to decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

func (s *testServer) expect(rec *httptest.ResponseRecorder, status int) {
	s.t.Helper()
	if rec.Code != status {
		s.t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

// register creates a user and returns its access token.
func (s *testServer) register(email string) string {
	s.t.Helper()
	rec := s.do("POST", "/api/v1/auth/register", "",
		fmt.Sprintf(`{"email":%q,"password":"password123","name":"Test"}`, email))
	s.expect(rec, http.StatusCreated)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	s.decode(rec, &body)
	return body.AccessToken
}

func (s *testServer) createCategory(token, title, kind string) string {
	s.t.Helper()
	rec := s.do("POST", "/api/v1/categories", token,
		fmt.Sprintf(`{"title":%q,"type":%q,"color":"#123456"}`, title, kind))
	s.expect(rec, http.StatusCreated)
	var body struct {
		Category struct {
			ID string `json:"id"`
		} `json:"category"`
	}
	s.decode(rec, &body)
	return body.Category.ID
}

func (s *testServer) createRecord(token, collection, title, amount, categoryID, date string) string {
	s.t.Helper()
	rec := s.do("POST", "/api/v1/"+collection, token,
		fmt.Sprintf(`{"title":%q,"amount":%q,"category_id":%q,"date":%q}`, title, amount, categoryID, date))
	s.expect(rec, http.StatusCreated)
	var body map[string]map[string]interface{}
	s.decode(rec, &body)
	for _, v := range body {
		return v["id"].(string)
	}
	s.t.Fatal("empty create response")
	return ""
}

type transactionJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Kind     string `json:"kind"`
	Note     string `json:"note"`
	Category *struct {
		Title string `json:"title"`
		Color string `json:"color"`
	} `json:"category"`
}

func (s *testServer) transactions(token, query string) []transactionJSON {
	s.t.Helper()
	rec := s.do("GET", "/api/v1/transactions"+query, token, "")
	s.expect(rec, http.StatusOK)
	var txs []transactionJSON
	s.decode(rec, &txs)
	return txs
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do("GET", "/api/health", "", "")
	s.expect(rec, http.StatusOK)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/v1/transactions", "/api/v1/categories", "/api/v1/expenses", "/api/v1/incomes", "/api/v1/profile"} {
		rec := s.do("GET", path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
	}

	rec := s.do("GET", "/api/v1/transactions", "garbage", "")
	s.expect(rec, http.StatusUnauthorized)
	var body map[string]string
	s.decode(rec, &body)
	if body["code"] != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED, got %v", body)
	}
}

func TestTransactionsFeed(t *testing.T) {
	s := newTestServer(t)
	token := s.register("owner@example.com")

	salaryCat := s.createCategory(token, "Salary", "income")
	housingCat := s.createCategory(token, "Housing", "expense")

	s.createRecord(token, "incomes", "Salary", "1000", salaryCat, "2024-01-10")
	s.createRecord(token, "expenses", "Rent", "500", housingCat, "2024-01-15")

	t.Run("merged newest first", func(t *testing.T) {
		txs := s.transactions(token, "")
		if len(txs) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(txs))
		}
		if txs[0].Title != "Rent" || txs[0].Kind != "expense" {
			t.Errorf("expected Rent expense first, got %+v", txs[0])
		}
		if txs[1].Title != "Salary" || txs[1].Kind != "income" || txs[1].Amount != "1000" {
			t.Errorf("expected Salary income second, got %+v", txs[1])
		}
		if txs[0].Category == nil || txs[0].Category.Title != "Housing" || txs[0].Category.Color != "#123456" {
			t.Errorf("expected resolved category, got %+v", txs[0].Category)
		}
	})

	t.Run("income only", func(t *testing.T) {
		txs := s.transactions(token, "?type=income")
		if len(txs) != 1 || txs[0].Title != "Salary" {
			t.Fatalf("expected only Salary, got %+v", txs)
		}
	})

	t.Run("expense only", func(t *testing.T) {
		txs := s.transactions(token, "?type=expense")
		if len(txs) != 1 || txs[0].Title != "Rent" {
			t.Fatalf("expected only Rent, got %+v", txs)
		}
	})

	t.Run("unknown type is empty", func(t *testing.T) {
		rec := s.do("GET", "/api/v1/transactions?type=transfer", token, "")
		s.expect(rec, http.StatusOK)
		if rec.Body.String() != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})

	t.Run("other owner sees nothing", func(t *testing.T) {
		other := s.register("other@example.com")
		rec := s.do("GET", "/api/v1/transactions", other, "")
		s.expect(rec, http.StatusOK)
		if rec.Body.String() != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})

	t.Run("deleted record disappears", func(t *testing.T) {
		id := s.createRecord(token, "expenses", "Coffee", "3.50", housingCat, "2024-01-20")
		if txs := s.transactions(token, ""); len(txs) != 3 || txs[0].ID != id || txs[0].Amount != "3.5" {
			t.Fatalf("expected Coffee first of 3, got %+v", txs)
		}
		s.expect(s.do("DELETE", "/api/v1/expenses/"+id, token, ""), http.StatusOK)
		if txs := s.transactions(token, ""); len(txs) != 2 {
			t.Fatalf("expected 2 transactions after delete, got %d", len(txs))
		}
	})
}

func TestCategoryRules(t *testing.T) {
	s := newTestServer(t)
	if _, err := services.NewCategoryService(s.db).SeedDefaults(); err != nil {
		t.Fatalf("failed to seed defaults: %v", err)
	}
	token := s.register("rules@example.com")
	other := s.register("someone@example.com")

	rec := s.do("GET", "/api/v1/categories?type=income&page_size=100", token, "")
	s.expect(rec, http.StatusOK)
	var list struct {
		Data []struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			IsDefault bool   `json:"is_default"`
		} `json:"data"`
	}
	s.decode(rec, &list)
	var defaultIncome string
	for _, c := range list.Data {
		if c.Title == "Salary" && c.IsDefault {
			defaultIncome = c.ID
		}
	}
	if defaultIncome == "" {
		t.Fatalf("expected default Salary category in %+v", list.Data)
	}

	t.Run("default usable for records", func(t *testing.T) {
		s.createRecord(token, "incomes", "Paycheck", "2500.00", defaultIncome, "2024-02-01")
	})

	t.Run("default immutable", func(t *testing.T) {
		rec := s.do("DELETE", "/api/v1/categories/"+defaultIncome, token, "")
		s.expect(rec, http.StatusForbidden)
		rec = s.do("PUT", "/api/v1/categories/"+defaultIncome, token, `{"title":"Wages"}`)
		s.expect(rec, http.StatusForbidden)
	})

	t.Run("duplicate title", func(t *testing.T) {
		s.createCategory(token, "Books", "expense")
		rec := s.do("POST", "/api/v1/categories", token, `{"title":"Books","type":"expense"}`)
		s.expect(rec, http.StatusConflict)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		rec := s.do("POST", "/api/v1/expenses", token,
			fmt.Sprintf(`{"title":"Oops","amount":"1","category_id":%q}`, defaultIncome))
		s.expect(rec, http.StatusBadRequest)
		var body map[string]string
		s.decode(rec, &body)
		if body["code"] != "INVALID_CATEGORY" || body["message"] != "Choose an expense category" {
			t.Errorf("unexpected error body: %v", body)
		}
	})

	t.Run("foreign category", func(t *testing.T) {
		foreign := s.createCategory(other, "Private", "expense")
		rec := s.do("POST", "/api/v1/expenses", token,
			fmt.Sprintf(`{"title":"Sneaky","amount":"1","category_id":%q}`, foreign))
		s.expect(rec, http.StatusBadRequest)

		rec = s.do("DELETE", "/api/v1/categories/"+foreign, token, "")
		s.expect(rec, http.StatusForbidden)
	})

	t.Run("foreign record", func(t *testing.T) {
		cat := s.createCategory(other, "Theirs", "expense")
		id := s.createRecord(other, "expenses", "Theirs", "9", cat, "2024-03-01")
		s.expect(s.do("GET", "/api/v1/expenses/"+id, token, ""), http.StatusForbidden)
		s.expect(s.do("GET", "/api/v1/expenses/"+id, other, ""), http.StatusOK)
	})
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	s.register("flow@example.com")

	rec := s.do("POST", "/api/v1/auth/login", "", `{"email":"flow@example.com","password":"password123"}`)
	s.expect(rec, http.StatusOK)
	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	s.decode(rec, &tokens)

	s.expect(s.do("GET", "/api/v1/profile", tokens.AccessToken, ""), http.StatusOK)

	// A refresh token is not an access token.
	s.expect(s.do("GET", "/api/v1/profile", tokens.RefreshToken, ""), http.StatusUnauthorized)

	rec = s.do("POST", "/api/v1/auth/refresh", "", fmt.Sprintf(`{"refresh_token":%q}`, tokens.RefreshToken))
	s.expect(rec, http.StatusOK)

	rec = s.do("POST", "/api/v1/auth/refresh", "", fmt.Sprintf(`{"refresh_token":%q}`, tokens.RefreshToken))
	s.expect(rec, http.StatusUnauthorized)

	rec = s.do("POST", "/api/v1/auth/login", "", `{"email":"flow@example.com","password":"wrongpass"}`)
	s.expect(rec, http.StatusUnauthorized)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := s.do("GET", "/api/v1/nope", "", "")
	s.expect(rec, http.StatusNotFound)
	var body map[string]string
	s.decode(rec, &body)
	if body["code"] != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %v", body)
	}
}
