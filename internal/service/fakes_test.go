package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/repository"
)

type fakeSuppliers struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Supplier
}

func newFakeSuppliers(suppliers ...model.Supplier) *fakeSuppliers {
	f := &fakeSuppliers{items: map[uuid.UUID]*model.Supplier{}}
	for i := range suppliers {
		s := suppliers[i]
		f.items[s.ID] = &s
	}
	return f
}

func (f *fakeSuppliers) CreateSupplier(_ context.Context, supplier *model.Supplier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := *supplier
	f.items[s.ID] = &s
	return nil
}

func (f *fakeSuppliers) ListSuppliers(_ context.Context, _ string) ([]model.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.Supplier, 0, len(f.items))
	for _, s := range f.items {
		result = append(result, *s)
	}
	return result, nil
}

func (f *fakeSuppliers) GetSupplier(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSuppliers) GetSuppliers(_ context.Context, ids []uuid.UUID) ([]model.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Supplier
	for _, id := range ids {
		if s, ok := f.items[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (f *fakeSuppliers) UpdateSupplier(_ context.Context, supplier *model.Supplier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[supplier.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s := *supplier
	f.items[s.ID] = &s
	return nil
}

func (f *fakeSuppliers) DeleteSupplier(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeSuppliers) UpdatePerformance(_ context.Context, id uuid.UUID, mutate func(*model.Supplier) error) (*model.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	working := *s
	if err := mutate(&working); err != nil {
		return nil, err
	}
	s.Performance = working.Performance
	result := *s
	return &result, nil
}

type fakeQuotes struct {
	mu        sync.Mutex
	requests  map[uuid.UUID]*model.QuoteRequest
	responses []model.QuoteResponse
	// skipExistsCheck lets a test reach the storage-level duplicate guard.
	skipExistsCheck bool
}

func newFakeQuotes() *fakeQuotes {
	return &fakeQuotes{requests: map[uuid.UUID]*model.QuoteRequest{}}
}

func (f *fakeQuotes) CreateRequest(_ context.Context, request *model.QuoteRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := *request
	r.Invitations = append([]model.QuoteInvitation(nil), request.Invitations...)
	for i := range r.Invitations {
		r.Invitations[i].AccessToken = ""
	}
	f.requests[r.ID] = &r
	return nil
}

func (f *fakeQuotes) GetRequest(_ context.Context, id uuid.UUID) (*model.QuoteRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	copied.Invitations = append([]model.QuoteInvitation(nil), r.Invitations...)
	return &copied, nil
}

func (f *fakeQuotes) ListRequests(_ context.Context, filter repository.QuoteRequestFilter) ([]model.QuoteRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.QuoteRequest
	for _, r := range f.requests {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.PartID != nil && r.PartID != *filter.PartID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (f *fakeQuotes) UpdateRequestStatus(ctx context.Context, id uuid.UUID, mutate func(*model.QuoteRequest) error) (*model.QuoteRequest, error) {
	f.mu.Lock()
	r, ok := f.requests[id]
	if !ok {
		f.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	working := *r
	if err := mutate(&working); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	r.Status = working.Status
	f.mu.Unlock()
	return f.GetRequest(ctx, id)
}

func (f *fakeQuotes) ResponseExists(_ context.Context, requestID, supplierID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.skipExistsCheck {
		return false, nil
	}
	return f.hasResponse(requestID, supplierID), nil
}

func (f *fakeQuotes) hasResponse(requestID, supplierID uuid.UUID) bool {
	for _, resp := range f.responses {
		if resp.QuoteRequestID == requestID && resp.SupplierID == supplierID {
			return true
		}
	}
	return false
}

func (f *fakeQuotes) CreateResponse(_ context.Context, response *model.QuoteResponse, tokenID *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[response.QuoteRequestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if r.Status.Closed() {
		return repository.ErrRequestClosed
	}
	if tokenID != nil {
		consumed := false
		for i := range r.Invitations {
			inv := &r.Invitations[i]
			if inv.TokenID == *tokenID && inv.SupplierID == response.SupplierID && inv.UsedAt == nil {
				now := time.Now()
				inv.UsedAt = &now
				consumed = true
			}
		}
		if !consumed {
			return repository.ErrTokenUsed
		}
	}
	if f.hasResponse(response.QuoteRequestID, response.SupplierID) {
		return repository.ErrDuplicateResponse
	}
	f.responses = append(f.responses, *response)
	if r.Status == model.QuoteStatusRequested {
		r.Status = model.QuoteStatusReceived
	}
	return nil
}

func (f *fakeQuotes) GetResponse(_ context.Context, id uuid.UUID) (*model.QuoteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, resp := range f.responses {
		if resp.ID == id {
			copied := resp
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuotes) ListResponses(_ context.Context, requestID uuid.UUID) ([]model.QuoteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.QuoteResponse
	for _, resp := range f.responses {
		if resp.QuoteRequestID == requestID {
			result = append(result, resp)
		}
	}
	return result, nil
}

func (f *fakeQuotes) setResponseStatus(id uuid.UUID, status model.QuoteResponseStatus) {
	for i := range f.responses {
		if f.responses[i].ID == id {
			f.responses[i].Status = status
		}
	}
}

type fakeParts struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*model.Project
	parts    map[uuid.UUID]*model.Part
}

func newFakeParts(parts ...model.Part) *fakeParts {
	f := &fakeParts{projects: map[uuid.UUID]*model.Project{}, parts: map[uuid.UUID]*model.Part{}}
	for i := range parts {
		p := parts[i]
		f.parts[p.ID] = &p
	}
	return f
}

func (f *fakeParts) CreateProject(_ context.Context, project *model.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	project.Code = fmt.Sprintf("PRJ-%d-%03d", time.Now().Year(), len(f.projects)+1)
	p := *project
	f.projects[p.ID] = &p
	return nil
}

func (f *fakeParts) ListProjects(_ context.Context, status *model.ProjectStatus) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Project
	for _, p := range f.projects {
		if status == nil || p.Status == *status {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakeParts) GetProject(_ context.Context, id uuid.UUID) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeParts) UpdateProject(_ context.Context, project *model.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[project.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p := *project
	f.projects[p.ID] = &p
	return nil
}

func (f *fakeParts) DeleteProject(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.projects, id)
	for partID, part := range f.parts {
		if part.ProjectID == id {
			delete(f.parts, partID)
		}
	}
	return nil
}

func (f *fakeParts) CreatePart(_ context.Context, part *model.Part) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *part
	f.parts[p.ID] = &p
	return nil
}

func (f *fakeParts) ListParts(_ context.Context, filter repository.PartFilter) ([]model.Part, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Part
	for _, p := range f.parts {
		if filter.ProjectID != nil && p.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (f *fakeParts) GetPart(_ context.Context, id uuid.UUID) (*model.Part, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.parts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeParts) UpdatePart(_ context.Context, part *model.Part) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.parts[part.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p := *part
	f.parts[p.ID] = &p
	return nil
}

func (f *fakeParts) DeletePart(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.parts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.parts, id)
	return nil
}

func (f *fakeParts) setStatus(id uuid.UUID, status model.PartStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.parts[id]; ok {
		p.Status = status
	}
}

// fakeOrders mirrors the transactional behaviour of the order repository on
// top of the other fakes.
type fakeOrders struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*model.Order
	quotes    *fakeQuotes
	suppliers *fakeSuppliers
	parts     *fakeParts
}

func newFakeOrders(quotes *fakeQuotes, suppliers *fakeSuppliers, parts *fakeParts) *fakeOrders {
	return &fakeOrders{items: map[uuid.UUID]*model.Order{}, quotes: quotes, suppliers: suppliers, parts: parts}
}

func (f *fakeOrders) CreateFromResponse(_ context.Context, order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes.mu.Lock()
	defer f.quotes.mu.Unlock()

	open := false
	found := false
	for _, resp := range f.quotes.responses {
		if resp.ID == order.QuoteResponseID {
			found = true
			open = resp.Status == model.QuoteResponseReceived
		}
	}
	if !found {
		return gorm.ErrRecordNotFound
	}
	if !open {
		return repository.ErrResponseNotOpen
	}

	order.Code = fmt.Sprintf("SIP-%d-%03d", time.Now().Year(), len(f.items)+1)
	o := *order
	f.items[o.ID] = &o

	f.quotes.setResponseStatus(order.QuoteResponseID, model.QuoteResponseApproved)
	for _, resp := range f.quotes.responses {
		if resp.ID == order.QuoteResponseID {
			if r, ok := f.quotes.requests[resp.QuoteRequestID]; ok {
				r.Status = model.QuoteStatusApproved
			}
		}
	}

	f.parts.setStatus(order.PartID, model.PartStatusInProduction)
	return nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id uuid.UUID) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrders) ListOrders(_ context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Order
	for _, o := range f.items {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.SupplierID != nil && o.SupplierID != *filter.SupplierID {
			continue
		}
		result = append(result, *o)
	}
	return result, nil
}

func (f *fakeOrders) ApplyStatus(
	_ context.Context,
	id uuid.UUID,
	mutate func(*model.Order, *model.Supplier) (repository.OrderStatusEffects, error),
) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	f.suppliers.mu.Lock()
	defer f.suppliers.mu.Unlock()
	var supplier *model.Supplier
	if s, ok := f.suppliers.items[o.SupplierID]; ok {
		copied := *s
		supplier = &copied
	}

	working := *o
	effects, err := mutate(&working, supplier)
	if err != nil {
		return nil, err
	}
	*o = working
	if effects.SupplierChanged && supplier != nil {
		f.suppliers.items[supplier.ID].Performance = supplier.Performance
	}
	if effects.PartStatus != "" {
		f.parts.setStatus(o.PartID, effects.PartStatus)
	}
	result := *o
	return &result, nil
}

type fakeRates struct {
	latest  *model.CurrencyRate
	created []model.CurrencyRate
}

func (f *fakeRates) LatestRate(context.Context) (*model.CurrencyRate, error) {
	return f.latest, nil
}

func (f *fakeRates) CreateRate(_ context.Context, rate *model.CurrencyRate) error {
	f.created = append(f.created, *rate)
	latest := *rate
	f.latest = &latest
	return nil
}

type recordedNotification struct {
	Kind  string
	RefID uuid.UUID
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []recordedNotification
}

func (f *fakeNotifier) Notify(_ context.Context, kind, _, _, _ string, refID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, recordedNotification{Kind: kind, RefID: refID})
}

func (f *fakeNotifier) count(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sent {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

type fakeRecorder struct {
	mu          sync.Mutex
	comparisons int
	accepted    map[string]int
	duplicates  int
	recomputed  map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{accepted: map[string]int{}, recomputed: map[string]int{}}
}

func (f *fakeRecorder) ComparisonComputed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comparisons++
}

func (f *fakeRecorder) QuoteResponseAccepted(channel string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accepted[channel]++
}

func (f *fakeRecorder) DuplicateResponseRejected() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.duplicates++
}

func (f *fakeRecorder) PerformanceRecomputed(trigger string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recomputed[trigger]++
}

type fakeGenerator struct {
	content []byte
	got     *model.QuoteComparison
}

func (f *fakeGenerator) Generate(comparison model.QuoteComparison) ([]byte, error) {
	f.got = &comparison
	return f.content, nil
}
