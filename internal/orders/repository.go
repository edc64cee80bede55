package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/orderdesk/orderdesk/internal/domain"
)

// ListFilter narrows a list query. An empty OwnerID means no owner scoping
// (admin callers); the guard sets it for everyone else so scoping happens in
// SQL rather than by post-filtering.
type ListFilter struct {
	OwnerID       string
	Status        string
	PaymentStatus string
	Page          int
	Limit         int
}

func (f ListFilter) offset() int {
	return (f.Page - 1) * f.Limit
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone, total_amount,
	status, payment_status, ship_street, ship_city, ship_state, ship_zip_code, ship_country,
	notes, created_by, assigned_to, admin_notes, priority, tags, estimated_delivery_date,
	created_at, updated_at`

// Create persists the aggregate. The total is derived from the line items
// inside the same transaction as the insert, so a client-supplied total can
// never reach the table.
func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	order.ID = uuid.New().String()
	order.TotalAmount = order.ComputeTotal()
	if order.Tags == nil {
		order.Tags = []string{}
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	street, city, state, zip, country := addressValues(order.ShippingAddr)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, customer_name, customer_email, customer_phone, total_amount,
			status, payment_status, ship_street, ship_city, ship_state, ship_zip_code, ship_country,
			notes, created_by, assigned_to, admin_notes, priority, tags, estimated_delivery_date,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $21)
	`, order.ID, order.OrderNumber, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.TotalAmount, order.Status, order.PaymentStatus, street, city, state, zip, country,
		order.Notes, order.CreatedBy, order.AssignedTo, order.AdminNotes, order.Priority,
		pq.Array(order.Tags), order.EstimatedDeliveryDate, now)
	if err != nil {
		if isUniqueViolation(err, "orders_order_number_key") {
			return domain.ErrDuplicateOrderNumber
		}
		return err
	}

	if err := insertItems(ctx, tx, order); err != nil {
		return err
	}

	return tx.Commit()
}

// Update rewrites the aggregate: the order row is updated and the line items
// replaced wholesale, with the total recomputed from the items inside the
// same transaction.
func (r *Repository) Update(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	order.TotalAmount = order.ComputeTotal()
	if order.Tags == nil {
		order.Tags = []string{}
	}

	street, city, state, zip, country := addressValues(order.ShippingAddr)

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET order_number = $2, customer_name = $3, customer_email = $4, customer_phone = $5,
			total_amount = $6, status = $7, payment_status = $8,
			ship_street = $9, ship_city = $10, ship_state = $11, ship_zip_code = $12, ship_country = $13,
			notes = $14, assigned_to = $15, admin_notes = $16, priority = $17, tags = $18,
			estimated_delivery_date = $19, updated_at = NOW()
		WHERE id = $1
	`, order.ID, order.OrderNumber, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.TotalAmount, order.Status, order.PaymentStatus, street, city, state, zip, country,
		order.Notes, order.AssignedTo, order.AdminNotes, order.Priority,
		pq.Array(order.Tags), order.EstimatedDeliveryDate)
	if err != nil {
		if isUniqueViolation(err, "orders_order_number_key") {
			return domain.ErrDuplicateOrderNumber
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, order); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID returns the aggregate, or (nil, nil) when no order has that id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	itemsByOrder, err := r.loadItems(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = itemsByOrder[order.ID]
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}

	return order, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns one page of orders, newest first, plus the total count for
// the filter.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]domain.Order, int, error) {
	var conds []string
	var args []any

	addCond := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.OwnerID != "" {
		addCond("created_by", filter.OwnerID)
	}
	if filter.Status != "" {
		addCond("status", filter.Status)
	}
	if filter.PaymentStatus != "" {
		addCond("payment_status", filter.PaymentStatus)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		order.Items = []domain.OrderItem{}
		orderMap[order.ID] = order
		orderIDs = append(orderIDs, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, total, nil
	}

	itemsByOrder, err := r.loadItems(ctx, orderIDs)
	if err != nil {
		return nil, 0, err
	}
	for id, items := range itemsByOrder {
		orderMap[id].Items = items
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, total, nil
}

func (r *Repository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY position
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := make(map[string][]domain.OrderItem)
	for rows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], item)
	}

	return items, rows.Err()
}

func insertItems(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	for i, item := range order.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_name, quantity, price, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), order.ID, item.ProductName, item.Quantity, item.Price, i)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	order := &domain.Order{}
	var street, city, state, zip, country sql.NullString

	err := row.Scan(&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerEmail,
		&order.CustomerPhone, &order.TotalAmount, &order.Status, &order.PaymentStatus,
		&street, &city, &state, &zip, &country,
		&order.Notes, &order.CreatedBy, &order.AssignedTo, &order.AdminNotes, &order.Priority,
		pq.Array(&order.Tags), &order.EstimatedDeliveryDate, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if street.Valid || city.Valid || state.Valid || zip.Valid || country.Valid {
		order.ShippingAddr = &domain.ShippingAddress{
			Street:  street.String,
			City:    city.String,
			State:   state.String,
			ZipCode: zip.String,
			Country: country.String,
		}
	}

	return order, nil
}

func addressValues(addr *domain.ShippingAddress) (street, city, state, zip, country any) {
	if addr == nil {
		return nil, nil, nil, nil, nil
	}
	return addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == constraint
	}
	return false
}
