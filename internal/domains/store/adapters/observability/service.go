package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	storedomain "github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
	storeports "github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
)

const tracerName = "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/observability/service"

// Service decorates the store service with tracing, logging, and metrics.
type Service struct {
	inner   storeports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core store service.
func New(inner storeports.Service, opts ...Option) storeports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) AddProduct(ctx context.Context, input storeports.AddProductInput) (*storedomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.AddProduct", trace.WithAttributes(
		attribute.String("product.kind", input.Kind),
		attribute.Int("product.stock", input.Stock),
	))
	defer span.End()
	s.logInfo(ctx, "adding product", slog.String("kind", input.Kind), slog.String("name", input.Name))
	result, err := s.inner.AddProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product", slog.String("kind", input.Kind))
	}
	span.SetAttributes(attribute.String("product.id", result.ID.String()))
	s.metrics.recordProductAdded(ctx, result.Kind())
	s.logInfo(ctx, "product added", slog.String("product.id", result.ID.String()), slog.String("kind", string(result.Kind())))
	return result, nil
}

func (s *Service) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "StoreService.RemoveProduct", trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()
	if err := s.inner.RemoveProduct(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to remove product", slog.String("product.id", id.String()))
	}
	s.metrics.recordProductRemoved(ctx)
	s.logInfo(ctx, "product removed", slog.String("product.id", id.String()))
	return nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*storedomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.GetProduct", trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()
	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id.String()))
	}
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*storedomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.ListProducts")
	defer span.End()
	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) PlaceOrder(ctx context.Context, input storeports.PlaceOrderInput) (*storedomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.PlaceOrder", trace.WithAttributes(
		attribute.String("user.id", input.UserID.String()),
		attribute.Int("order.lines", len(input.Lines)),
	))
	defer span.End()
	s.logInfo(ctx, "placing order", slog.String("user.id", input.UserID.String()), slog.Int("lines", len(input.Lines)))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		attrs := []slog.Attr{slog.String("user.id", input.UserID.String())}
		var lineErr *storedomain.LineError
		if errors.As(err, &lineErr) {
			attrs = append(attrs, slog.Int("line", lineErr.Index), slog.String("product.id", lineErr.ProductID.String()))
			span.SetAttributes(attribute.Int("order.rejected_line", lineErr.Index))
		}
		s.metrics.recordOrderRejected(ctx)
		return nil, s.handleError(ctx, span, err, "failed to place order", attrs...)
	}
	total := result.Total()
	span.SetAttributes(attribute.String("order.id", result.ID.String()), attribute.Float64("order.total", total))
	s.metrics.recordOrderPlaced(ctx, total)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", result.ID.String()),
		slog.String("user.id", result.UserID.String()),
		slog.Float64("total", total),
	)
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*storedomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.GetOrder", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()
	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	return result, nil
}

func (s *Service) ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]*storedomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.ListOrdersForUser", trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()
	result, err := s.inner.ListOrdersForUser(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("user.id", userID.String()))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	productsAdded   metric.Int64Counter
	productsRemoved metric.Int64Counter
	ordersPlaced    metric.Int64Counter
	ordersRejected  metric.Int64Counter
	orderTotal      metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("store.service.products_added", metric.WithDescription("Number of products added to the catalog"))
	removed, _ := m.Int64Counter("store.service.products_removed", metric.WithDescription("Number of products removed from the catalog"))
	placed, _ := m.Int64Counter("store.service.orders_placed", metric.WithDescription("Number of orders placed"))
	rejected, _ := m.Int64Counter("store.service.orders_rejected", metric.WithDescription("Number of orders rejected"))
	total, _ := m.Float64Histogram("store.service.order_total", metric.WithDescription("Order totals"))
	return serviceMetrics{
		productsAdded:   added,
		productsRemoved: removed,
		ordersPlaced:    placed,
		ordersRejected:  rejected,
		orderTotal:      total,
	}
}

func (m serviceMetrics) recordProductAdded(ctx context.Context, kind storedomain.Kind) {
	if m.productsAdded != nil {
		m.productsAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("product.kind", string(kind))))
	}
}

func (m serviceMetrics) recordProductRemoved(ctx context.Context) {
	if m.productsRemoved != nil {
		m.productsRemoved.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordOrderPlaced(ctx context.Context, total float64) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.orderTotal != nil {
		m.orderTotal.Record(ctx, total)
	}
}

func (m serviceMetrics) recordOrderRejected(ctx context.Context) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ storeports.Service = (*Service)(nil)
