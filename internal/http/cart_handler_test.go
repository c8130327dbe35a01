package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/YashSharma2129/shopping-cart/internal/cart"
	"github.com/YashSharma2129/shopping-cart/internal/catalog"
	"github.com/YashSharma2129/shopping-cart/internal/domain"
)

type catalogMock struct {
	product *domain.Product
	err     error
}

func (c catalogMock) Products(context.Context) ([]domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []domain.Product{*c.product}, nil
}

func (c catalogMock) Product(context.Context, int64) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.product, nil
}

func (c catalogMock) Categories(context.Context) ([]string, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []string{c.product.Category}, nil
}

var handlerProduct = domain.Product{ID: 1, Title: "Casual Shirt", Price: 100, Category: "men's clothing"}

func TestAddItem_Success(t *testing.T) {
	ledger := cart.NewLedger()
	handler := NewCartHandler(ledger, catalogMock{product: &handlerProduct}, 5*time.Second)

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 1})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/", bytes.NewReader(body))

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response CartResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 1 || response.Items[0].Quantity != 1 {
		t.Errorf("Expected one line with quantity 1, got %+v", response.Items)
	}
	if response.Subtotal != 100 {
		t.Errorf("Expected subtotal 100, got %v", response.Subtotal)
	}
}

func TestAddItem_TwiceMergesLine(t *testing.T) {
	ledger := cart.NewLedger()
	handler := NewCartHandler(ledger, catalogMock{product: &handlerProduct}, 5*time.Second)

	for i := 0; i < 2; i++ {
		body, _ := json.Marshal(AddItemRequestDTO{ProductID: 1})
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("POST", "/", bytes.NewReader(body))
		handler.AddItem(recorder, request)
	}

	lines := ledger.Lines()
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Errorf("Expected one merged line with quantity 2, got %+v", lines)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	ledger := cart.NewLedger()
	handler := NewCartHandler(ledger, catalogMock{err: catalog.ErrNotFound}, 5*time.Second)

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 999})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/", bytes.NewReader(body))

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestAddItem_InvalidProductID(t *testing.T) {
	handler := NewCartHandler(cart.NewLedger(), catalogMock{product: &handlerProduct}, 5*time.Second)

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 0})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/", bytes.NewReader(body))

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestUpdateQuantity_Validation(t *testing.T) {
	ledger := cart.NewLedger()
	ledger.Add(handlerProduct)
	handler := NewCartHandler(ledger, catalogMock{product: &handlerProduct}, 5*time.Second)

	for _, quantity := range []int{0, -1, 100} {
		body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: quantity})
		recorder := httptest.NewRecorder()
		request := newRequestWithParam("PUT", "/", "product_id", "1", bytes.NewReader(body))

		handler.UpdateQuantity(recorder, request)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("quantity %d: expected status code %d, got %d", quantity, http.StatusBadRequest, recorder.Code)
		}
	}

	if ledger.Lines()[0].Quantity != 1 {
		t.Errorf("Expected quantity unchanged, got %d", ledger.Lines()[0].Quantity)
	}
}

func TestRemoveItem_AbsentProductIsNoop(t *testing.T) {
	ledger := cart.NewLedger()
	handler := NewCartHandler(ledger, catalogMock{product: &handlerProduct}, 5*time.Second)

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		request := newRequestWithParam("DELETE", "/", "product_id", "42", nil)
		handler.RemoveItem(recorder, request)

		if recorder.Code != http.StatusOK {
			t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
		}
	}
}

func TestClearCart(t *testing.T) {
	ledger := cart.NewLedger()
	ledger.Add(handlerProduct)
	handler := NewCartHandler(ledger, catalogMock{product: &handlerProduct}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/", nil)
	handler.ClearCart(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if len(ledger.Lines()) != 0 {
		t.Errorf("Expected empty cart, got %d lines", len(ledger.Lines()))
	}
}

func newRequestWithParam(method, target, key, value string, body *bytes.Reader) *http.Request {
	var request *http.Request
	if body == nil {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, body)
	}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeCtx))
}
