package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

func TestUserDirectoryClientAddressDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/addresses/7/string" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"addressDetails":"Address - Home, 12B, MG Road, Near Park, 560001, Bengaluru, Karnataka"}`))
	}))
	defer srv.Close()

	client := NewUserDirectoryClient(StaticResolver{userServiceName: srv.URL})
	got, err := client.AddressDetails(context.Background(), 7)
	if err != nil {
		t.Fatalf("AddressDetails: %v", err)
	}
	want := "Address - Home, 12B, MG Road, Near Park, 560001, Bengaluru, Karnataka"
	if got != want {
		t.Errorf("AddressDetails = %q, want %q", got, want)
	}
}

func TestUserDirectoryClientStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind apperr.Kind
		wantMsg  string
	}{
		{"not found is a bad id", http.StatusNotFound, apperr.InvalidInput, "Invalid payment method id"},
		{"server error is unavailable", http.StatusInternalServerError, apperr.RemoteUnavailable, "Service down. Try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewUserDirectoryClient(StaticResolver{userServiceName: srv.URL})
			_, err := client.PaymentDetails(context.Background(), 3)
			if err == nil {
				t.Fatal("expected an error")
			}
			if apperr.KindOf(err) != tt.wantKind {
				t.Errorf("kind = %v, want %v", apperr.KindOf(err), tt.wantKind)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestUserDirectoryClientUnresolvable(t *testing.T) {
	client := NewUserDirectoryClient(StaticResolver{})
	_, err := client.AddressDetails(context.Background(), 1)
	if apperr.KindOf(err) != apperr.RemoteUnavailable {
		t.Errorf("kind = %v, want RemoteUnavailable", apperr.KindOf(err))
	}
}

func TestCatalogClientDetailsForOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/products/p1/detailsForOrder" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Shirt","category":"Clothing","img":"default-link","quantity":5,"price":19.99}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(StaticResolver{productServiceName: srv.URL})
	details, err := client.DetailsForOrder(context.Background(), "p1")
	if err != nil {
		t.Fatalf("DetailsForOrder: %v", err)
	}
	if details.Name != "Shirt" || details.Quantity != 5 || details.Price != 19.99 {
		t.Errorf("unexpected details %+v", details)
	}
}

func TestCatalogClientQuantityBadID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewCatalogClient(StaticResolver{productServiceName: srv.URL})
	_, err := client.Quantity(context.Background(), "missing")
	if err == nil || err.Error() != "Invalid Product Id" {
		t.Errorf("expected Invalid Product Id, got %v", err)
	}
}

func TestCatalogClientUpdateQuantity(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/products/products/p1/updateQuantity" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.Write([]byte(`{"message":"Quantity updated successfully"}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(StaticResolver{productServiceName: srv.URL})
	if err := client.UpdateQuantity(context.Background(), "p1", 3); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	// The product service expects the quantity as a string.
	if gotBody != `{"quantity":"3"}` {
		t.Errorf("body = %s, want quantity as a string", gotBody)
	}
}
