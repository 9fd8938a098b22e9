package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Transactor = (*Repository)(nil)
)

// Repository persists the catalog and orders through GORM. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
	// inTx marks a repository bound to an open transaction; product reads lock their rows.
	inTx bool
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductRecord maps a catalog entry and its variant columns to the products table.
type ProductRecord struct {
	Seq            int64     `gorm:"primaryKey;autoIncrement;column:seq"`
	ID             string    `gorm:"column:id;size:36;uniqueIndex"`
	Kind           string    `gorm:"column:kind;size:16"`
	Name           string    `gorm:"column:name"`
	Price          float64   `gorm:"column:price"`
	Stock          int       `gorm:"column:stock"`
	WarrantyMonths int       `gorm:"column:warranty_months"`
	Size           string    `gorm:"column:size;size:16"`
	Color          string    `gorm:"column:color;size:32"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (ProductRecord) TableName() string { return "products" }

// OrderRecord is the order header. Seq preserves placement order.
type OrderRecord struct {
	Seq          int64     `gorm:"primaryKey;autoIncrement;column:seq"`
	ID           string    `gorm:"column:id;size:36;uniqueIndex"`
	UserID       string    `gorm:"column:user_id;size:36;index"`
	CustomerName string    `gorm:"column:customer_name"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (OrderRecord) TableName() string { return "orders" }

// OrderLineRecord stores one line with its product snapshot.
type OrderLineRecord struct {
	Seq         int64   `gorm:"primaryKey;autoIncrement;column:seq"`
	OrderID     string  `gorm:"column:order_id;size:36;index:idx_order_lines_order_position"`
	Position    int     `gorm:"column:position;index:idx_order_lines_order_position"`
	ProductID   string  `gorm:"column:product_id;size:36"`
	ProductName string  `gorm:"column:product_name"`
	Quantity    int     `gorm:"column:quantity"`
	UnitPrice   float64 `gorm:"column:unit_price"`
}

func (OrderLineRecord) TableName() string { return "order_lines" }

// WithinTx runs fn inside one database transaction, rolling back when fn fails.
func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context, repo ports.Repository) error) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if fn == nil {
		return errors.New("transaction function is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Repository{db: tx, inTx: true})
	})
}

// SaveProduct inserts a product or overwrites the stored row for its identifier.
func (r *Repository) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toProductRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "name", "price", "stock", "warranty_months", "size", "color"}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, product.ID)
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx)
	if r.inTx {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record ProductRecord
	if err := query.First(&record, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&ProductRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}

// ListProducts returns the catalog in insertion order.
func (r *Repository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []ProductRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		product, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// SaveOrder records a new order together with its lines.
func (r *Repository) SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	header, lines := toOrderRecords(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&header).Error; err != nil {
			return err
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, order.ID)
}

func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var header OrderRecord
	if err := r.db.WithContext(ctx).First(&header, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	orders, err := r.hydrate(ctx, []OrderRecord{header})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// ListOrdersByUser returns the user's orders in placement order.
func (r *Repository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var headers []OrderRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID.String()).Order("seq").Find(&headers).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, headers)
}

// hydrate loads the lines of the given headers in one query.
func (r *Repository) hydrate(ctx context.Context, headers []OrderRecord) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(headers))
	if len(headers) == 0 {
		return orders, nil
	}
	ids := make([]string, 0, len(headers))
	for _, h := range headers {
		ids = append(ids, h.ID)
	}
	var lineRecords []OrderLineRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("order_id").Order("position").
		Find(&lineRecords).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[string][]OrderLineRecord, len(headers))
	for _, line := range lineRecords {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}
	for _, h := range headers {
		order, err := h.toDomain(byOrder[h.ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("gorm store repository not configured")
	}
	return nil
}

func toProductRecord(product *domain.Product) ProductRecord {
	record := ProductRecord{
		ID:        product.ID.String(),
		Kind:      string(product.Kind()),
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		CreatedAt: product.CreatedAt,
	}
	switch v := product.Variant.(type) {
	case domain.Electronic:
		record.WarrantyMonths = v.WarrantyMonths
	case domain.Apparel:
		record.Size = v.Size
		record.Color = v.Color
	}
	return record
}

func (r ProductRecord) toDomain() (*domain.Product, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("decode product id %q: %w", r.ID, err)
	}
	kind, err := domain.ParseKind(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("decode product %s: %w", r.ID, err)
	}
	var variant domain.Variant = domain.Generic{}
	switch kind {
	case domain.KindElectronic:
		variant = domain.Electronic{WarrantyMonths: r.WarrantyMonths}
	case domain.KindApparel:
		variant = domain.Apparel{Size: r.Size, Color: r.Color}
	}
	return &domain.Product{
		ID:        id,
		Name:      r.Name,
		Price:     r.Price,
		Stock:     r.Stock,
		Variant:   variant,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}

func toOrderRecords(order *domain.Order) (OrderRecord, []OrderLineRecord) {
	header := OrderRecord{
		ID:           order.ID.String(),
		UserID:       order.UserID.String(),
		CustomerName: order.CustomerName,
		CreatedAt:    order.CreatedAt,
	}
	lines := make([]OrderLineRecord, 0, len(order.Lines))
	for i, line := range order.Lines {
		lines = append(lines, OrderLineRecord{
			OrderID:     header.ID,
			Position:    i,
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return header, lines
}

func (r OrderRecord) toDomain(lineRecords []OrderLineRecord) (*domain.Order, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("decode order id %q: %w", r.ID, err)
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return nil, fmt.Errorf("decode order %s user id: %w", r.ID, err)
	}
	lines := make([]domain.Line, 0, len(lineRecords))
	for _, rec := range lineRecords {
		productID, err := uuid.Parse(rec.ProductID)
		if err != nil {
			return nil, fmt.Errorf("decode order %s product id: %w", r.ID, err)
		}
		lines = append(lines, domain.Line{
			ProductID:   productID,
			ProductName: rec.ProductName,
			Quantity:    rec.Quantity,
			UnitPrice:   rec.UnitPrice,
		})
	}
	return &domain.Order{
		ID:           id,
		UserID:       userID,
		CustomerName: r.CustomerName,
		Lines:        lines,
		CreatedAt:    r.CreatedAt.UTC(),
	}, nil
}
