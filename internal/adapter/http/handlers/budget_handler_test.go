package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oficina_motos/internal/adapter/http/handlers/mocks"
	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
	"oficina_motos/internal/usecase"
	"oficina_motos/internal/usecase/interfaces"
	"oficina_motos/pkg"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type handlerDeps struct {
	budgets  *mocks.MockIBudgetUseCase
	workflow *mocks.MockIBudgetWorkflowUseCase
	router   *gin.Engine
}

func newHandlerDeps(t *testing.T) handlerDeps {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	deps := handlerDeps{
		budgets:  mocks.NewMockIBudgetUseCase(ctrl),
		workflow: mocks.NewMockIBudgetWorkflowUseCase(ctrl),
		router:   gin.New(),
	}
	h := NewBudgetHandler(deps.budgets, deps.workflow)
	g := deps.router.Group("/v1/budgets")
	g.POST("", h.CreateBudget)
	g.GET("", h.ListBudgets)
	g.GET("/:id", h.GetBudget)
	g.PATCH("/:id", h.UpdateBudget)
	g.DELETE("/:id", h.DeleteBudget)
	g.POST("/:id/approve", h.ApproveBudget)
	g.POST("/:id/reject", h.RejectBudget)
	g.POST("/:id/convert", h.ConvertBudget)
	return deps
}

func (d handlerDeps) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body
}

func handlerBudget() entities.Budget {
	return entities.Budget{
		ID:        "b-1",
		Value:     decimal.RequireFromString("80"),
		Expiry:    time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		ClientRef: "c-1",
		Status:    entities.BudgetStatusPendente,
		Items: items.ItemSet{
			Parts:    []items.PartLine{{Name: "Oil Filter", Quantity: 2, UnitPrice: decimal.RequireFromString("15")}},
			Services: []items.ServiceLine{{Description: "Labor", Value: decimal.RequireFromString("50")}},
		},
	}
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		d := newHandlerDeps(t)
		w := d.do(http.MethodPost, "/v1/budgets", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Kind != string(pkg.KindInvalidArgument) {
			t.Fatalf("unexpected kind %q", body.Kind)
		}
	})

	t.Run("invalid expiry", func(t *testing.T) {
		d := newHandlerDeps(t)
		w := d.do(http.MethodPost, "/v1/budgets", `{"clientRef":"c-1","expiry":"amanhã"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("client not found", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Budget{}, usecase.ErrClientNotFound)

		w := d.do(http.MethodPost, "/v1/budgets", `{"clientRef":"c-9","expiry":"2026-11-30"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "CLIENT_NOT_FOUND" || body.Kind != "NOT_FOUND" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.CreateBudgetInput) (entities.Budget, error) {
				if in.Items == nil || len(in.Items.Parts) != 1 || in.Items.Parts[0].Quantity != 0 {
					t.Fatalf("quantity must reach the use case as sent: %+v", in.Items)
				}
				return entities.Budget{}, fmt.Errorf("%w: %w", usecase.ErrInvalidBudgetItems, items.Validate(*in.Items))
			},
		)

		body := `{"clientRef":"c-1","expiry":"2026-11-30","items":{"parts":[{"name":"Oil Filter","quantity":0,"unitPrice":15}]}}`
		w := d.do(http.MethodPost, "/v1/budgets", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if body := decodeError(t, w); body.Code != "INVALID_BUDGET_ITEMS" || body.Kind != "INVALID_ARGUMENT" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.CreateBudgetInput) (entities.Budget, error) {
				if in.ClientRef != "c-1" || in.Items == nil || len(in.Items.Parts) != 1 {
					t.Fatalf("unexpected input: %+v", in)
				}
				if !in.Items.Parts[0].UnitPrice.Equal(decimal.RequireFromString("15")) {
					t.Fatalf("unexpected unit price %s", in.Items.Parts[0].UnitPrice)
				}
				return handlerBudget(), nil
			},
		)

		body := `{"clientRef":"c-1","expiry":"2026-11-30","items":{"parts":[{"name":"Oil Filter","quantity":2,"unitPrice":15}],"services":[{"description":"Labor","value":"50"}]}}`
		w := d.do(http.MethodPost, "/v1/budgets", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var res map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if res["id"] != "b-1" || res["statusLabel"] != "Pendente" || res["value"] != 80.0 {
			t.Fatalf("unexpected body %v", res)
		}
	})
}

func TestBudgetHandler_ListBudgets(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		d := newHandlerDeps(t)
		w := d.do(http.MethodGet, "/v1/budgets?status=unknown", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("filters", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().List(gomock.Any(), interfaces.BudgetFilter{ClientRef: "c-1", Status: entities.BudgetStatusPendente}).
			Return([]entities.Budget{handlerBudget()}, nil)

		w := d.do(http.MethodGet, "/v1/budgets?clientRef=c-1&status=P", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var res []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil || len(res) != 1 {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().GetByID(gomock.Any(), "b-404").Return(entities.Budget{}, usecase.ErrBudgetNotFound)

		w := d.do(http.MethodGet, "/v1/budgets/b-404", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Budget{}, errors.New("dynamo down"))

		w := d.do(http.MethodGet, "/v1/budgets/b-1", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Kind != "INTERNAL" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(handlerBudget(), nil)

		w := d.do(http.MethodGet, "/v1/budgets/b-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("linked budget", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().Update(gomock.Any(), "b-1", gomock.Any()).Return(entities.Budget{}, usecase.ErrBudgetOrderLinked)

		w := d.do(http.MethodPatch, "/v1/budgets/b-1", `{"items":{"notes":"x"}}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("client ref change", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().Update(gomock.Any(), "b-1", gomock.Any()).Return(entities.Budget{}, usecase.ErrClientRefImmutable)

		w := d.do(http.MethodPatch, "/v1/budgets/b-1", `{"clientRef":"c-2"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("notes only", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.budgets.EXPECT().Update(gomock.Any(), "b-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, in usecase.UpdateBudgetInput) (entities.Budget, error) {
				if in.Items.ReplacesLines() || in.Items.Notes == nil || *in.Items.Notes != "x" {
					t.Fatalf("unexpected patch: %+v", in.Items)
				}
				return handlerBudget(), nil
			},
		)

		w := d.do(http.MethodPatch, "/v1/budgets/b-1", `{"items":{"notes":"x"}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	d := newHandlerDeps(t)
	d.budgets.EXPECT().Delete(gomock.Any(), "b-1").Return(nil)
	d.budgets.EXPECT().Delete(gomock.Any(), "b-2").Return(usecase.ErrBudgetNotFound)

	if w := d.do(http.MethodDelete, "/v1/budgets/b-1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := d.do(http.MethodDelete, "/v1/budgets/b-2", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestBudgetHandler_ApproveBudget(t *testing.T) {
	t.Run("not pending", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.workflow.EXPECT().Approve(gomock.Any(), "b-1").Return(entities.ServiceOrder{}, usecase.ErrBudgetNotPending)

		w := d.do(http.MethodPost, "/v1/budgets/b-1/approve", "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Kind != "FAILED_PRECONDITION" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("no motorcycle", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.workflow.EXPECT().Approve(gomock.Any(), "b-1").Return(entities.ServiceOrder{}, usecase.ErrNoMotorcycle)

		w := d.do(http.MethodPost, "/v1/budgets/b-1/approve", "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.workflow.EXPECT().Approve(gomock.Any(), "b-1").Return(entities.ServiceOrder{Code: "os-1", BudgetRef: "b-1"}, nil)

		w := d.do(http.MethodPost, "/v1/budgets/b-1/approve", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var res map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if res["budgetId"] != "b-1" || res["orderRef"] != "os-1" {
			t.Fatalf("unexpected body %v", res)
		}
	})
}

func TestBudgetHandler_RejectBudget(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		d := newHandlerDeps(t)
		w := d.do(http.MethodPost, "/v1/budgets/b-1/reject", `{`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing reason", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.workflow.EXPECT().Reject(gomock.Any(), "b-1", "").Return(entities.Budget{}, usecase.ErrRejectionReasonRequired)

		w := d.do(http.MethodPost, "/v1/budgets/b-1/reject", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "REJECTION_REASON_REQUIRED" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("approved budget without reason", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.workflow.EXPECT().Reject(gomock.Any(), "b-1", "").Return(entities.Budget{}, usecase.ErrBudgetNotPending)

		w := d.do(http.MethodPost, "/v1/budgets/b-1/reject", `{}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "BUDGET_NOT_PENDING" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newHandlerDeps(t)
		rejected := handlerBudget()
		rejected.Status = entities.BudgetStatusRejeitado
		d.workflow.EXPECT().Reject(gomock.Any(), "b-1", "too expensive").Return(rejected, nil)

		w := d.do(http.MethodPost, "/v1/budgets/b-1/reject", `{"reason":"too expensive"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var res map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil || res["budgetId"] != "b-1" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})
}

func TestBudgetHandler_ConvertBudget(t *testing.T) {
	t.Run("missing acting user", func(t *testing.T) {
		d := newHandlerDeps(t)
		w := d.do(http.MethodPost, "/v1/budgets/b-1/convert", `{"title":"x"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown part", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.workflow.EXPECT().ConvertToOrder(gomock.Any(), "b-1", gomock.Any()).Return(entities.ServiceOrder{}, usecase.ErrPartNotFound)

		w := d.do(http.MethodPost, "/v1/budgets/b-1/convert", `{"actingUserRef":"u-1"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newHandlerDeps(t)
		d.workflow.EXPECT().ConvertToOrder(gomock.Any(), "b-1", usecase.ConvertInput{ActingUserRef: "u-1", Title: "Revisão", ExtraNotes: "urgente"}).
			Return(entities.ServiceOrder{
				Code:       "os-1",
				Title:      "Revisão",
				Status:     entities.OrderStatusEmAndamento,
				PartsValue: decimal.RequireFromString("80"),
				BudgetRef:  "b-1",
				CreatedBy:  "u-1",
			}, nil)

		w := d.do(http.MethodPost, "/v1/budgets/b-1/convert", `{"actingUserRef":"u-1","title":"Revisão","extraNotes":"urgente"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var res map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if res["code"] != "os-1" || res["partsValue"] != 80.0 || res["status"] != "em_andamento" {
			t.Fatalf("unexpected body %v", res)
		}
	})
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/ping", Ping)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
