package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

const userServiceName = "user-service"

// UserDirectoryClient reads address and payment method snapshot strings from
// the user service.
type UserDirectoryClient struct {
	resolver Resolver
	client   *http.Client
}

func NewUserDirectoryClient(resolver Resolver) *UserDirectoryClient {
	return &UserDirectoryClient{
		resolver: resolver,
		client:   defaultHTTPClient(),
	}
}

// AddressDetails fetches the rendered address string for an order snapshot.
func (u *UserDirectoryClient) AddressDetails(ctx context.Context, addressID int) (string, error) {
	var body struct {
		AddressDetails string `json:"addressDetails"`
	}
	url := fmt.Sprintf("/users/addresses/%d/string", addressID)
	if err := u.get(ctx, url, "Invalid address id", &body); err != nil {
		return "", err
	}
	return body.AddressDetails, nil
}

// PaymentDetails fetches the masked payment method string for an order
// snapshot.
func (u *UserDirectoryClient) PaymentDetails(ctx context.Context, paymentMethodID int) (string, error) {
	var body struct {
		PaymentDetails string `json:"paymentDetails"`
	}
	url := fmt.Sprintf("/users/paymentMethods/%d/string", paymentMethodID)
	if err := u.get(ctx, url, "Invalid payment method id", &body); err != nil {
		return "", err
	}
	return body.PaymentDetails, nil
}

func (u *UserDirectoryClient) get(ctx context.Context, path string, badIDMessage string, out any) error {
	base, err := u.resolver.Resolve(userServiceName)
	if err != nil {
		return errUnavailable()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return fmt.Errorf("building user service request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return errUnavailable()
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return errUnavailable()
	case resp.StatusCode >= 400:
		return apperr.New(apperr.InvalidInput, badIDMessage)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding user service response: %w", err)
	}
	return nil
}
