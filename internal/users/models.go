package users

import (
	"fmt"
	"strings"
)

// DefaultAvatarLink is assigned to every new account until the user uploads
// their own image.
const DefaultAvatarLink = "https://i.ibb.co/n3tCTrK/avatar-17.png"

type User struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	PasswordHash   string          `json:"-"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	ImgLink        string          `json:"imgLink"`
	Addresses      []Address       `json:"addresses"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
}

type Address struct {
	ID          int    `json:"id"`
	AddressName string `json:"addressName"`
	Apartment   string `json:"apartment"`
	Area        string `json:"area"`
	Landmark    string `json:"landmark"`
	Pincode     string `json:"pincode"`
	City        string `json:"city"`
	State       string `json:"state"`
	UserID      int    `json:"-"`
}

// DetailString renders the address the way order snapshots store it.
func (a Address) DetailString() string {
	return "Address - " + strings.Join([]string{
		a.AddressName, a.Apartment, a.Area, a.Landmark, a.Pincode, a.City, a.State,
	}, ", ")
}

const (
	PaymentTypeCreditCard = "CREDIT_CARD"
	PaymentTypeDebitCard  = "DEBIT_CARD"
	PaymentTypeUPI        = "UPI"
)

type PaymentMethod struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	AccountID string `json:"accountId"`
	UserID    int    `json:"-"`
}

// DetailString renders the payment method for order snapshots, masking all but
// the last four characters of the account id.
func (p PaymentMethod) DetailString() string {
	return fmt.Sprintf("Paid using - %s, accountId='%s'", p.Type, maskAccountID(p.AccountID))
}

func maskAccountID(accountID string) string {
	runes := []rune(accountID)
	for i := 0; i < len(runes)-4; i++ {
		runes[i] = 'X'
	}
	return string(runes)
}

// NewUser is the registration request body.
type NewUser struct {
	Name     string `json:"name" validate:"required,min=3"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NewAddress is the create-address request body.
type NewAddress struct {
	AddressName string `json:"addressName" validate:"required,min=2"`
	Apartment   string `json:"apartment"`
	Area        string `json:"area"`
	Landmark    string `json:"landmark"`
	Pincode     string `json:"pincode" validate:"required,min=6"`
	City        string `json:"city"`
	State       string `json:"state"`
}

// NewPaymentMethod is the create-payment-method request body.
type NewPaymentMethod struct {
	Type      string `json:"type" validate:"required,oneof=CREDIT_CARD DEBIT_CARD UPI"`
	AccountID string `json:"accountId" validate:"required,min=10"`
}

// UpdateUser is the typed patch for user fields. Only these four fields may be
// updated; the handler decodes with DisallowUnknownFields so any other key is
// rejected before anything is touched.
type UpdateUser struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	ImgLink  *string `json:"imgLink"`
}
