package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"

	"github.com/orderdesk/orderdesk/internal/auth"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/telemetry"
)

type fakeStore struct {
	ids    []string
	orders map[string]*domain.Order
	seq    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: make(map[string]*domain.Order)}
}

func (s *fakeStore) Create(_ context.Context, order *domain.Order) error {
	for _, existing := range s.orders {
		if existing.OrderNumber == order.OrderNumber {
			return domain.ErrDuplicateOrderNumber
		}
	}
	s.seq++
	order.ID = fmt.Sprintf("order-%d", s.seq)
	order.TotalAmount = order.ComputeTotal()
	stored := *order
	s.ids = append(s.ids, order.ID)
	s.orders[order.ID] = &stored
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

func (s *fakeStore) Update(_ context.Context, order *domain.Order) error {
	if _, ok := s.orders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range s.orders {
		if id != order.ID && existing.OrderNumber == order.OrderNumber {
			return domain.ErrDuplicateOrderNumber
		}
	}
	order.TotalAmount = order.ComputeTotal()
	stored := *order
	s.orders[order.ID] = &stored
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *fakeStore) List(_ context.Context, filter ListFilter) ([]domain.Order, int, error) {
	var matched []domain.Order
	for _, id := range s.ids {
		order, ok := s.orders[id]
		if !ok {
			continue
		}
		if filter.OwnerID != "" && order.CreatedBy != filter.OwnerID {
			continue
		}
		if filter.Status != "" && string(order.Status) != filter.Status {
			continue
		}
		if filter.PaymentStatus != "" && string(order.PaymentStatus) != filter.PaymentStatus {
			continue
		}
		matched = append(matched, *order)
	}

	total := len(matched)
	offset := (filter.Page - 1) * filter.Limit
	if offset >= total {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

type fakeDirectory struct {
	users map[string]*domain.User
}

func (d *fakeDirectory) GetByID(_ context.Context, id string) (*domain.User, error) {
	return d.users[id], nil
}

type fakePublisher struct {
	events []domain.OrderEvent
}

func (p *fakePublisher) Publish(_ context.Context, _ string, event any) error {
	p.events = append(p.events, event.(domain.OrderEvent))
	return nil
}

var (
	testUser  = &domain.User{ID: "user-1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
	otherUser = &domain.User{ID: "user-2", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}
	testAdmin = &domain.User{ID: "admin-1", Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin}
)

func newTestHandler() (*Handler, *fakeStore, *fakePublisher) {
	store := newFakeStore()
	directory := &fakeDirectory{users: map[string]*domain.User{
		testUser.ID:  testUser,
		otherUser.ID: otherUser,
		testAdmin.ID: testAdmin,
	}}
	publisher := &fakePublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, directory, publisher, logger), store, publisher
}

func newRequest(method, target string, body string, user *domain.User, orderID string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := auth.ContextWithUser(req.Context(), user)
	if orderID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", orderID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func seedOrder(t *testing.T, h *Handler, user *domain.User, orderNumber string) View {
	t.Helper()

	body := fmt.Sprintf(`{
		"orderNumber": %q,
		"customerName": "Alice Johnson",
		"customerEmail": "alice@example.com",
		"items": [{"productName": "Widget", "quantity": 2, "price": 10.5}]
	}`, orderNumber)

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, newRequest(http.MethodPost, "/api/v1/orders", body, user, ""))
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed order failed: %d %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Order View `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode seed response: %v", err)
	}
	return resp.Order
}

func TestHandleCreate(t *testing.T) {
	t.Run("derives total from items and ignores client total", func(t *testing.T) {
		h, store, _ := newTestHandler()

		body := `{
			"orderNumber": "ORD-1001",
			"customerName": "Alice Johnson",
			"customerEmail": "Alice@Example.com",
			"totalAmount": 999,
			"items": [{"productName": "Widget", "quantity": 2, "price": 10.5}]
		}`
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, newRequest(http.MethodPost, "/api/v1/orders", body, testUser, ""))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Message string `json:"message"`
			Order   View   `json:"order"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Message != "Order created successfully" {
			t.Errorf("unexpected message %q", resp.Message)
		}
		if !resp.Order.TotalAmount.Equal(decimal.RequireFromString("21")) {
			t.Errorf("expected total 21, got %s", resp.Order.TotalAmount)
		}
		if resp.Order.Status != domain.OrderStatusPending {
			t.Errorf("expected pending status, got %q", resp.Order.Status)
		}
		if resp.Order.PaymentStatus != domain.PaymentStatusPending {
			t.Errorf("expected pending payment status, got %q", resp.Order.PaymentStatus)
		}
		if resp.Order.CustomerEmail != "alice@example.com" {
			t.Errorf("expected lowercased email, got %q", resp.Order.CustomerEmail)
		}

		stored := store.orders[resp.Order.ID]
		if stored == nil {
			t.Fatal("order not persisted")
		}
		if !stored.TotalAmount.Equal(decimal.RequireFromString("21")) {
			t.Errorf("stored total is %s", stored.TotalAmount)
		}
		if stored.CreatedBy != testUser.ID {
			t.Errorf("expected creator %q, got %q", testUser.ID, stored.CreatedBy)
		}
	})

	t.Run("duplicate order number returns 409", func(t *testing.T) {
		h, _, _ := newTestHandler()
		seedOrder(t, h, testUser, "ORD-1001")

		body := `{
			"orderNumber": "ORD-1001",
			"customerName": "Bob Smith",
			"customerEmail": "bob@example.com",
			"items": [{"productName": "Gadget", "quantity": 1, "price": 5}]
		}`
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, newRequest(http.MethodPost, "/api/v1/orders", body, otherUser, ""))

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Order number already exists") {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("missing items fails validation", func(t *testing.T) {
		h, _, _ := newTestHandler()

		body := `{
			"orderNumber": "ORD-1002",
			"customerName": "Alice Johnson",
			"customerEmail": "alice@example.com",
			"items": []
		}`
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, newRequest(http.MethodPost, "/api/v1/orders", body, testUser, ""))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Error  string              `json:"error"`
			Fields []domain.FieldError `json:"fields"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		found := false
		for _, f := range resp.Fields {
			if f.Field == "items" && f.Message == "Order must have at least one item" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected items error, got %+v", resp.Fields)
		}
	})

	t.Run("non-admin privileged fields are stripped", func(t *testing.T) {
		h, store, _ := newTestHandler()

		body := `{
			"orderNumber": "ORD-1003",
			"customerName": "Alice Johnson",
			"customerEmail": "alice@example.com",
			"items": [{"productName": "Widget", "quantity": 1, "price": 10}],
			"priority": "urgent",
			"adminNotes": "should vanish",
			"tags": ["vip"]
		}`
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, newRequest(http.MethodPost, "/api/v1/orders", body, testUser, ""))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Order View `json:"order"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}

		stored := store.orders[resp.Order.ID]
		if stored.Priority != domain.PriorityMedium {
			t.Errorf("expected default medium priority, got %q", stored.Priority)
		}
		if stored.AdminNotes != nil {
			t.Errorf("adminNotes persisted: %q", *stored.AdminNotes)
		}
		if len(stored.Tags) != 0 {
			t.Errorf("tags persisted: %v", stored.Tags)
		}

		raw := rec.Body.String()
		for _, key := range []string{`"priority"`, `"adminNotes"`, `"tags"`} {
			if strings.Contains(raw, key) {
				t.Errorf("privileged key %s leaked in response: %s", key, raw)
			}
		}
	})

	t.Run("admin privileged fields are persisted", func(t *testing.T) {
		h, store, _ := newTestHandler()

		body := fmt.Sprintf(`{
			"orderNumber": "ORD-1004",
			"customerName": "Alice Johnson",
			"customerEmail": "alice@example.com",
			"items": [{"productName": "Widget", "quantity": 1, "price": 10}],
			"priority": "urgent",
			"adminNotes": "expedite",
			"assignedTo": %q
		}`, "5b7c1a1e-95cf-4011-b52c-4d2d1f3a9f01")
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, newRequest(http.MethodPost, "/api/v1/orders", body, testAdmin, ""))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Order View `json:"order"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}

		stored := store.orders[resp.Order.ID]
		if stored.Priority != domain.PriorityUrgent {
			t.Errorf("expected urgent priority, got %q", stored.Priority)
		}
		if stored.AdminNotes == nil || *stored.AdminNotes != "expedite" {
			t.Errorf("adminNotes not persisted: %v", stored.AdminNotes)
		}
		if stored.AssignedTo == nil {
			t.Error("assignedTo not persisted")
		}
		if resp.Order.Priority != domain.PriorityUrgent {
			t.Errorf("expected priority in admin response, got %q", resp.Order.Priority)
		}
	})

	t.Run("publishes a created event", func(t *testing.T) {
		h, _, publisher := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-1005")

		if len(publisher.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(publisher.events))
		}
		event := publisher.events[0]
		if event.Type != domain.OrderEventCreated {
			t.Errorf("expected created event, got %q", event.Type)
		}
		if event.OrderID != order.ID {
			t.Errorf("expected order id %q, got %q", order.ID, event.OrderID)
		}
		if !event.TotalAmount.Equal(decimal.RequireFromString("21")) {
			t.Errorf("expected event total 21, got %s", event.TotalAmount)
		}
	})
}

func TestHandlerLogsCarryTraceIDs(t *testing.T) {
	store := newFakeStore()
	directory := &fakeDirectory{users: map[string]*domain.User{testUser.ID: testUser}}

	var buf bytes.Buffer
	h := NewHandler(store, directory, nil, telemetry.NewLogger(&buf))

	traceID, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("bad trace id: %v", err)
	}
	spanID, err := trace.SpanIDFromHex("0123456789abcdef")
	if err != nil {
		t.Fatalf("bad span id: %v", err)
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	req := newRequest(http.MethodGet, "/api/v1/orders", "", testUser, "")
	req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(buf.String(), `"trace_id":"0123456789abcdef0123456789abcdef"`) {
		t.Errorf("expected trace_id in handler log, got: %s", buf.String())
	}
}

func TestHandleGet(t *testing.T) {
	t.Run("owner reads own order", func(t *testing.T) {
		h, _, _ := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-2001")

		rec := httptest.NewRecorder()
		h.HandleGet(rec, newRequest(http.MethodGet, "/api/v1/orders/"+order.ID, "", testUser, order.ID))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		h, _, _ := newTestHandler()

		rec := httptest.NewRecorder()
		h.HandleGet(rec, newRequest(http.MethodGet, "/api/v1/orders/nope", "", testUser, "nope"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Order not found") {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("stranger gets 403", func(t *testing.T) {
		h, _, _ := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-2002")

		rec := httptest.NewRecorder()
		h.HandleGet(rec, newRequest(http.MethodGet, "/api/v1/orders/"+order.ID, "", otherUser, order.ID))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Not authorized to access this order") {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("admin reads anyone's order", func(t *testing.T) {
		h, _, _ := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-2003")

		rec := httptest.NewRecorder()
		h.HandleGet(rec, newRequest(http.MethodGet, "/api/v1/orders/"+order.ID, "", testAdmin, order.ID))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestHandleUpdate(t *testing.T) {
	updateBody := `{
		"orderNumber": "ORD-3001",
		"customerName": "Alice Johnson",
		"customerEmail": "alice@example.com",
		"items": [{"productName": "Widget", "quantity": 3, "price": 10}],
		"notes": "updated notes",
		"priority": "urgent"
	}`

	t.Run("owner update recomputes total and strips privileged fields", func(t *testing.T) {
		h, store, publisher := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-3001")

		rec := httptest.NewRecorder()
		h.HandleUpdate(rec, newRequest(http.MethodPut, "/api/v1/orders/"+order.ID, updateBody, testUser, order.ID))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		stored := store.orders[order.ID]
		if !stored.TotalAmount.Equal(decimal.RequireFromString("30")) {
			t.Errorf("expected recomputed total 30, got %s", stored.TotalAmount)
		}
		if stored.Notes != "updated notes" {
			t.Errorf("notes not applied: %q", stored.Notes)
		}
		if stored.Priority != domain.PriorityMedium {
			t.Errorf("priority should stay medium, got %q", stored.Priority)
		}

		last := publisher.events[len(publisher.events)-1]
		if last.Type != domain.OrderEventUpdated {
			t.Errorf("expected updated event, got %q", last.Type)
		}
	})

	t.Run("admin update applies privileged fields", func(t *testing.T) {
		h, store, _ := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-3001")

		rec := httptest.NewRecorder()
		h.HandleUpdate(rec, newRequest(http.MethodPut, "/api/v1/orders/"+order.ID, updateBody, testAdmin, order.ID))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if store.orders[order.ID].Priority != domain.PriorityUrgent {
			t.Errorf("expected urgent priority, got %q", store.orders[order.ID].Priority)
		}
	})

	t.Run("stranger gets 403", func(t *testing.T) {
		h, _, _ := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-3001")

		rec := httptest.NewRecorder()
		h.HandleUpdate(rec, newRequest(http.MethodPut, "/api/v1/orders/"+order.ID, updateBody, otherUser, order.ID))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown id returns 404 before any body parsing", func(t *testing.T) {
		h, _, _ := newTestHandler()

		rec := httptest.NewRecorder()
		h.HandleUpdate(rec, newRequest(http.MethodPut, "/api/v1/orders/nope", "{not json", testUser, "nope"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("invalid payload fails validation", func(t *testing.T) {
		h, _, _ := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-3001")

		rec := httptest.NewRecorder()
		h.HandleUpdate(rec, newRequest(http.MethodPut, "/api/v1/orders/"+order.ID, `{"items": []}`, testUser, order.ID))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestHandleDelete(t *testing.T) {
	t.Run("owner deletes own order", func(t *testing.T) {
		h, store, publisher := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-4001")

		rec := httptest.NewRecorder()
		h.HandleDelete(rec, newRequest(http.MethodDelete, "/api/v1/orders/"+order.ID, "", testUser, order.ID))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if _, ok := store.orders[order.ID]; ok {
			t.Error("order still present after delete")
		}

		last := publisher.events[len(publisher.events)-1]
		if last.Type != domain.OrderEventDeleted {
			t.Errorf("expected deleted event, got %q", last.Type)
		}
	})

	t.Run("stranger gets 403 and order survives", func(t *testing.T) {
		h, store, _ := newTestHandler()
		order := seedOrder(t, h, testUser, "ORD-4002")

		rec := httptest.NewRecorder()
		h.HandleDelete(rec, newRequest(http.MethodDelete, "/api/v1/orders/"+order.ID, "", otherUser, order.ID))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
		}
		if _, ok := store.orders[order.ID]; !ok {
			t.Error("order deleted despite 403")
		}
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		h, _, _ := newTestHandler()

		rec := httptest.NewRecorder()
		h.HandleDelete(rec, newRequest(http.MethodDelete, "/api/v1/orders/nope", "", testUser, "nope"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandleList(t *testing.T) {
	seedAll := func(t *testing.T, h *Handler) {
		t.Helper()
		seedOrder(t, h, testUser, "ORD-5001")
		seedOrder(t, h, testUser, "ORD-5002")
		seedOrder(t, h, otherUser, "ORD-5003")
	}

	type listResponse struct {
		Orders []View `json:"orders"`
		Count  int    `json:"count"`
		Total  int    `json:"total"`
		Page   int    `json:"page"`
		Pages  int    `json:"pages"`
	}

	list := func(t *testing.T, h *Handler, target string, user *domain.User) listResponse {
		t.Helper()
		rec := httptest.NewRecorder()
		h.HandleList(rec, newRequest(http.MethodGet, target, "", user, ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp listResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp
	}

	t.Run("non-admin only sees own orders", func(t *testing.T) {
		h, _, _ := newTestHandler()
		seedAll(t, h)

		resp := list(t, h, "/api/v1/orders", testUser)
		if resp.Total != 2 || resp.Count != 2 {
			t.Errorf("expected 2 orders, got count=%d total=%d", resp.Count, resp.Total)
		}
		for _, order := range resp.Orders {
			if order.CreatedBy.ID != testUser.ID {
				t.Errorf("foreign order leaked: %+v", order.CreatedBy)
			}
		}
	})

	t.Run("admin sees everything", func(t *testing.T) {
		h, _, _ := newTestHandler()
		seedAll(t, h)

		resp := list(t, h, "/api/v1/orders", testAdmin)
		if resp.Total != 3 {
			t.Errorf("expected total 3, got %d", resp.Total)
		}
	})

	t.Run("pagination envelope", func(t *testing.T) {
		h, _, _ := newTestHandler()
		seedAll(t, h)

		resp := list(t, h, "/api/v1/orders?page=2&limit=2", testAdmin)
		if resp.Page != 2 {
			t.Errorf("expected page 2, got %d", resp.Page)
		}
		if resp.Pages != 2 {
			t.Errorf("expected 2 pages, got %d", resp.Pages)
		}
		if resp.Count != 1 {
			t.Errorf("expected 1 order on page 2, got %d", resp.Count)
		}
		if resp.Total != 3 {
			t.Errorf("expected total 3, got %d", resp.Total)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		h, _, _ := newTestHandler()
		seedAll(t, h)

		resp := list(t, h, "/api/v1/orders?status=shipped", testAdmin)
		if resp.Total != 0 {
			t.Errorf("expected no shipped orders, got %d", resp.Total)
		}

		resp = list(t, h, "/api/v1/orders?status=pending", testAdmin)
		if resp.Total != 3 {
			t.Errorf("expected 3 pending orders, got %d", resp.Total)
		}
	})
}
