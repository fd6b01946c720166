package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
)

// CustomerRepository reads customers and writes their addresses.
type CustomerRepository struct {
	pool database.DBTX
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool database.DBTX) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// ListCustomers returns every customer ordered by ID.
func (r *CustomerRepository) ListCustomers(ctx context.Context) (customers []domain.Customer, err error) {
	query := `SELECT id, email FROM customers ORDER BY id`

	ctx, end := database.TraceQuery(ctx, "ListCustomers", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Customer
		if err = rows.Scan(&c.ID, &c.Email); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

// InsertAddress stores an address and sets its ID.
func (r *CustomerRepository) InsertAddress(ctx context.Context, a *domain.Address) (err error) {
	query := `
		INSERT INTO customer_addresses (
			customer_id, is_default, address_type, street_address,
			phone_number, province, district, ward
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "InsertAddress", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query,
		a.CustomerID,
		a.IsDefault,
		a.AddressType,
		a.StreetAddress,
		a.PhoneNumber,
		a.Province,
		a.District,
		a.Ward,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert address for customer %d: %w", a.CustomerID, err)
	}
	return nil
}

// FirstAddresses returns each customer's default address, or its oldest one
// when none is marked default.
func (r *CustomerRepository) FirstAddresses(ctx context.Context) (book map[int64]domain.Address, err error) {
	query := `
		SELECT DISTINCT ON (customer_id)
		       id, customer_id, is_default, address_type, street_address,
		       phone_number, province, district, ward
		FROM customer_addresses
		ORDER BY customer_id, is_default DESC, id`

	ctx, end := database.TraceQuery(ctx, "FirstAddresses", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	book = make(map[int64]domain.Address)
	for rows.Next() {
		var a domain.Address
		if err = rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.IsDefault,
			&a.AddressType,
			&a.StreetAddress,
			&a.PhoneNumber,
			&a.Province,
			&a.District,
			&a.Ward,
		); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		book[a.CustomerID] = a
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}
	return book, nil
}
