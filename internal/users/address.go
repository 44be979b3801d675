package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

// AddressesForUser lists a user's addresses. The user must exist.
func (c *Conf) AddressesForUser(ctx context.Context, userID int) ([]Address, error) {
	query := `
		SELECT id, address_name, apartment, area, landmark, pincode, city, state, user_id
		FROM addresses
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := c.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing addresses: %w", err)
	}
	defer rows.Close()

	addresses := []Address{}
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.AddressName, &a.Apartment, &a.Area, &a.Landmark,
			&a.Pincode, &a.City, &a.State, &a.UserID); err != nil {
			return nil, fmt.Errorf("scanning address: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating addresses: %w", err)
	}
	return addresses, nil
}

// InsertAddress creates an address for the user. The address name must be
// unique within that user's book.
func (c *Conf) InsertAddress(ctx context.Context, userID int, na NewAddress) (Address, error) {
	address := Address{
		AddressName: na.AddressName,
		Apartment:   na.Apartment,
		Area:        na.Area,
		Landmark:    na.Landmark,
		Pincode:     na.Pincode,
		City:        na.City,
		State:       na.State,
		UserID:      userID,
	}

	query := `
		INSERT INTO addresses (user_id, address_name, apartment, area, landmark, pincode, city, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := c.db.QueryRowContext(ctx, query, userID, na.AddressName, na.Apartment, na.Area,
		na.Landmark, na.Pincode, na.City, na.State).Scan(&address.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Address{}, apperr.New(apperr.Conflict, "Address with the same name already exists")
		}
		return Address{}, fmt.Errorf("inserting address: %w", err)
	}
	return address, nil
}

// AddressByID fetches a single address regardless of owner; ownership checks
// happen at the handler layer where the caller is known.
func (c *Conf) AddressByID(ctx context.Context, id int) (Address, error) {
	query := `
		SELECT id, address_name, apartment, area, landmark, pincode, city, state, user_id
		FROM addresses
		WHERE id = $1
	`
	var a Address
	err := c.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.AddressName, &a.Apartment,
		&a.Area, &a.Landmark, &a.Pincode, &a.City, &a.State, &a.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Address{}, apperr.New(apperr.NotFound, "Address not found")
		}
		return Address{}, fmt.Errorf("fetching address %d: %w", id, err)
	}
	return a, nil
}

func (c *Conf) DeleteAddress(ctx context.Context, id int) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting address %d: %w", id, err)
	}
	return nil
}

// PaymentMethodsForUser lists a user's payment methods.
func (c *Conf) PaymentMethodsForUser(ctx context.Context, userID int) ([]PaymentMethod, error) {
	query := `
		SELECT id, type, account_id, user_id
		FROM payment_methods
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := c.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer rows.Close()

	paymentMethods := []PaymentMethod{}
	for rows.Next() {
		var p PaymentMethod
		if err := rows.Scan(&p.ID, &p.Type, &p.AccountID, &p.UserID); err != nil {
			return nil, fmt.Errorf("scanning payment method: %w", err)
		}
		paymentMethods = append(paymentMethods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment methods: %w", err)
	}
	return paymentMethods, nil
}

// InsertPaymentMethod creates a payment method; the account id must be unique
// per user.
func (c *Conf) InsertPaymentMethod(ctx context.Context, userID int, np NewPaymentMethod) (PaymentMethod, error) {
	paymentMethod := PaymentMethod{
		Type:      np.Type,
		AccountID: np.AccountID,
		UserID:    userID,
	}

	query := `
		INSERT INTO payment_methods (user_id, type, account_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := c.db.QueryRowContext(ctx, query, userID, np.Type, np.AccountID).Scan(&paymentMethod.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return PaymentMethod{}, apperr.New(apperr.Conflict, "Payment method with the same account id already exists")
		}
		return PaymentMethod{}, fmt.Errorf("inserting payment method: %w", err)
	}
	return paymentMethod, nil
}

func (c *Conf) PaymentMethodByID(ctx context.Context, id int) (PaymentMethod, error) {
	query := `
		SELECT id, type, account_id, user_id
		FROM payment_methods
		WHERE id = $1
	`
	var p PaymentMethod
	err := c.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Type, &p.AccountID, &p.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PaymentMethod{}, apperr.New(apperr.NotFound, "Payment method not found")
		}
		return PaymentMethod{}, fmt.Errorf("fetching payment method %d: %w", id, err)
	}
	return p, nil
}

func (c *Conf) DeletePaymentMethod(ctx context.Context, id int) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting payment method %d: %w", id, err)
	}
	return nil
}
