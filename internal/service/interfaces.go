package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nurpe/procurement/internal/auth"
	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/repository"
)

type SupplierRepository interface {
	CreateSupplier(ctx context.Context, supplier *model.Supplier) error
	ListSuppliers(ctx context.Context, specialization string) ([]model.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	GetSuppliers(ctx context.Context, ids []uuid.UUID) ([]model.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier *model.Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
	UpdatePerformance(ctx context.Context, id uuid.UUID, mutate func(supplier *model.Supplier) error) (*model.Supplier, error)
}

type QuoteRepository interface {
	CreateRequest(ctx context.Context, request *model.QuoteRequest) error
	GetRequest(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error)
	ListRequests(ctx context.Context, filter repository.QuoteRequestFilter) ([]model.QuoteRequest, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, mutate func(request *model.QuoteRequest) error) (*model.QuoteRequest, error)
	ResponseExists(ctx context.Context, requestID, supplierID uuid.UUID) (bool, error)
	CreateResponse(ctx context.Context, response *model.QuoteResponse, tokenID *uuid.UUID) error
	GetResponse(ctx context.Context, id uuid.UUID) (*model.QuoteResponse, error)
	ListResponses(ctx context.Context, requestID uuid.UUID) ([]model.QuoteResponse, error)
}

type OrderRepository interface {
	CreateFromResponse(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
	ApplyStatus(
		ctx context.Context,
		id uuid.UUID,
		mutate func(order *model.Order, supplier *model.Supplier) (repository.OrderStatusEffects, error),
	) (*model.Order, error)
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, project *model.Project) error
	ListProjects(ctx context.Context, status *model.ProjectStatus) ([]model.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
	CreatePart(ctx context.Context, part *model.Part) error
	ListParts(ctx context.Context, filter repository.PartFilter) ([]model.Part, error)
	GetPart(ctx context.Context, id uuid.UUID) (*model.Part, error)
	UpdatePart(ctx context.Context, part *model.Part) error
	DeletePart(ctx context.Context, id uuid.UUID) error
}

type PartReader interface {
	GetPart(ctx context.Context, id uuid.UUID) (*model.Part, error)
}

type CurrencyRepository interface {
	LatestRate(ctx context.Context) (*model.CurrencyRate, error)
	CreateRate(ctx context.Context, rate *model.CurrencyRate) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, isRead *bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
}

type QuoteTokenIssuer interface {
	Issue(requestID, supplierID, tokenID uuid.UUID) (string, error)
	Parse(raw string) (*auth.QuoteClaims, error)
}

type ExcelGenerator interface {
	Generate(comparison model.QuoteComparison) ([]byte, error)
}

type PDFGenerator interface {
	Generate(comparison model.QuoteComparison) ([]byte, error)
}

// Recorder receives domain metrics. *metrics.Metrics satisfies it.
type Recorder interface {
	ComparisonComputed()
	QuoteResponseAccepted(channel string)
	DuplicateResponseRejected()
	PerformanceRecomputed(trigger string)
}

// Notifier records user-facing notifications. Failures must not surface to callers.
type Notifier interface {
	Notify(ctx context.Context, kind, title, message, refType string, refID uuid.UUID)
}
