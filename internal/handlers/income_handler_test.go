package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

type mockIncomeService struct {
	createIncomeFn  func(userID string, input services.RecordInput) (*models.Income, error)
	getIncomeByIDFn func(userID, incomeID string) (*models.Income, error)
	updateIncomeFn  func(userID, incomeID string, update services.RecordUpdate) (*models.Income, error)
	deleteIncomeFn  func(userID, incomeID string) error
}

func (m *mockIncomeService) CreateIncome(userID string, input services.RecordInput) (*models.Income, error) {
	if m.createIncomeFn != nil {
		return m.createIncomeFn(userID, input)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) GetUserIncomes(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	resp := pagination.NewPageResponse([]models.Income{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockIncomeService) GetIncomeByID(userID, incomeID string) (*models.Income, error) {
	if m.getIncomeByIDFn != nil {
		return m.getIncomeByIDFn(userID, incomeID)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) UpdateIncome(userID, incomeID string, update services.RecordUpdate) (*models.Income, error) {
	if m.updateIncomeFn != nil {
		return m.updateIncomeFn(userID, incomeID, update)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) DeleteIncome(userID, incomeID string) error {
	if m.deleteIncomeFn != nil {
		return m.deleteIncomeFn(userID, incomeID)
	}
	return nil
}

var _ services.IncomeServicer = (*mockIncomeService)(nil)

func setupIncomeRouter(handler *IncomeHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/incomes", handler.CreateIncome)
	auth.GET("/incomes", handler.GetUserIncomes)
	auth.GET("/incomes/:id", handler.GetIncomeByID)
	auth.PUT("/incomes/:id", handler.UpdateIncome)
	auth.DELETE("/incomes/:id", handler.DeleteIncome)
	return r
}

func TestIncomeHandler(t *testing.T) {
	t.Run("create returns 201", func(t *testing.T) {
		incSvc := &mockIncomeService{
			createIncomeFn: func(userID string, input services.RecordInput) (*models.Income, error) {
				if !input.Date.IsZero() {
					t.Errorf("expected zero date when omitted, got %s", input.Date)
				}
				return &models.Income{MoneyRecord: models.MoneyRecord{
					Base:   models.Base{ID: testRecordID},
					UserID: userID,
					Title:  input.Title,
					Amount: input.Amount,
				}}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupIncomeRouter(NewIncomeHandler(incSvc, audit))

		rec := doRequest(r, "POST", "/incomes", `{"title":"Salary","amount":1000,"category_id":"`+testCategoryID+`"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		income := parseJSON(t, rec)["income"].(map[string]interface{})
		if income["title"] != "Salary" || income["amount"] != "1000" {
			t.Errorf("unexpected income: %v", income)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_INCOME" {
			t.Errorf("expected CREATE_INCOME audit entry, got %+v", audit.entries)
		}
	})

	t.Run("list returns page", func(t *testing.T) {
		r := setupIncomeRouter(NewIncomeHandler(&mockIncomeService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/incomes", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if _, ok := parseJSON(t, rec)["data"].([]interface{}); !ok {
			t.Error("expected data array")
		}
	})

	t.Run("get foreign returns 403", func(t *testing.T) {
		incSvc := &mockIncomeService{
			getIncomeByIDFn: func(_, _ string) (*models.Income, error) { return nil, apperrors.ErrForbidden },
		}
		r := setupIncomeRouter(NewIncomeHandler(incSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/incomes/"+testRecordID, "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")
	})

	t.Run("update wrong kind category returns 400", func(t *testing.T) {
		incSvc := &mockIncomeService{
			updateIncomeFn: func(_, _ string, _ services.RecordUpdate) (*models.Income, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidCategory, "Choose an income category")
			},
		}
		r := setupIncomeRouter(NewIncomeHandler(incSvc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/incomes/"+testRecordID, `{"category_id":"`+testCategoryID+`"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CATEGORY")
	})

	t.Run("delete missing returns 404", func(t *testing.T) {
		incSvc := &mockIncomeService{
			deleteIncomeFn: func(_, _ string) error { return apperrors.ErrIncomeNotFound },
		}
		r := setupIncomeRouter(NewIncomeHandler(incSvc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/incomes/"+testRecordID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INCOME_NOT_FOUND")
	})
}
