// Package users is the user directory: accounts, addresses, and payment
// methods, backed by postgres.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shikhasoumya1612/ecommerce/internal/auth"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
	"golang.org/x/crypto/bcrypt"
)

type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (*Conf, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Conf{db: db}, nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// InsertUser registers a new account: password policy, bcrypt hash, default
// avatar, CUSTOMER role.
func (c *Conf) InsertUser(ctx context.Context, nu NewUser) (User, error) {
	if err := ValidatePassword(nu.Password); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := User{
		Name:    nu.Name,
		Email:   nu.Email,
		Role:    auth.RoleCustomer,
		ImgLink: DefaultAvatarLink,
	}

	query := `
		INSERT INTO users (name, password, email, role, img_link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = c.db.QueryRowContext(ctx, query, nu.Name, string(hash), nu.Email, user.Role, user.ImgLink).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, apperr.New(apperr.Conflict, "User already exists with this email")
		}
		return User{}, fmt.Errorf("inserting user: %w", err)
	}

	return user, nil
}

// Authenticate checks email and password. The error is identical for an
// unknown email and a wrong password.
func (c *Conf) Authenticate(ctx context.Context, email string, password string) (User, error) {
	user, err := c.userByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, apperr.New(apperr.InvalidInput, "Invalid Credentials")
		}
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, apperr.New(apperr.InvalidInput, "Invalid Credentials")
	}

	if err := c.loadOwned(ctx, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (c *Conf) userByEmail(ctx context.Context, email string) (User, error) {
	query := `
		SELECT id, name, password, email, role, img_link
		FROM users
		WHERE email = $1
	`
	var user User
	err := c.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.PasswordHash, &user.Email, &user.Role, &user.ImgLink)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// UserByID fetches a user together with their addresses and payment methods.
func (c *Conf) UserByID(ctx context.Context, id int) (User, error) {
	query := `
		SELECT id, name, password, email, role, img_link
		FROM users
		WHERE id = $1
	`
	var user User
	err := c.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.PasswordHash, &user.Email, &user.Role, &user.ImgLink)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, apperr.New(apperr.NotFound, "User not found")
		}
		return User{}, fmt.Errorf("fetching user %d: %w", id, err)
	}

	if err := c.loadOwned(ctx, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// AllCustomers lists every CUSTOMER account with their owned resources.
func (c *Conf) AllCustomers(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, name, email, role, img_link
		FROM users
		WHERE role = $1
		ORDER BY id
	`
	rows, err := c.db.QueryContext(ctx, query, auth.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.ImgLink); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	for i := range users {
		if err := c.loadOwned(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// UpdateUser applies a typed patch. Every field is validated before any field
// is written, so a bad patch leaves the user untouched.
func (c *Conf) UpdateUser(ctx context.Context, userID int, patch UpdateUser) (User, error) {
	user, err := c.UserByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if patch.Password != nil {
		if err := ValidatePassword(*patch.Password); err != nil {
			return User{}, err
		}
	}

	if patch.Email != nil && *patch.Email != user.Email {
		_, err := c.userByEmail(ctx, *patch.Email)
		switch {
		case err == nil:
			return User{}, apperr.New(apperr.Conflict, "User already exists with this email")
		case !errors.Is(err, sql.ErrNoRows):
			return User{}, fmt.Errorf("checking email uniqueness: %w", err)
		}
		user.Email = *patch.Email
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.ImgLink != nil {
		user.ImgLink = *patch.ImgLink
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	query := `
		UPDATE users
		SET name = $1, password = $2, email = $3, img_link = $4
		WHERE id = $5
	`
	if _, err := c.db.ExecContext(ctx, query, user.Name, user.PasswordHash, user.Email, user.ImgLink, user.ID); err != nil {
		if isUniqueViolation(err) {
			return User{}, apperr.New(apperr.Conflict, "User already exists with this email")
		}
		return User{}, fmt.Errorf("updating user %d: %w", userID, err)
	}

	return user, nil
}

// DeleteUser removes an account; addresses and payment methods cascade.
func (c *Conf) DeleteUser(ctx context.Context, id int) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.NotFound, "User not found")
	}
	return nil
}

func (c *Conf) loadOwned(ctx context.Context, user *User) error {
	addresses, err := c.AddressesForUser(ctx, user.ID)
	if err != nil {
		return err
	}
	paymentMethods, err := c.PaymentMethodsForUser(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Addresses = addresses
	user.PaymentMethods = paymentMethods
	return nil
}
