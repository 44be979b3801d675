package users

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"valid", "Str0ng@Pass", ""},
		{"too short", "S0@a", "Invalid Password : The length of the password must be at least 8"},
		{"no digit", "Strong@Pass", "Invalid Password : The password must contain at least one digit."},
		{"no lowercase", "STR0NG@PASS", "Invalid Password : The password must contain at least one lowercase letter."},
		{"no uppercase", "str0ng@pass", "Invalid Password : The password must contain at least one uppercase letter."},
		{"no special", "Str0ngPass", "Invalid Password : The password must contain at least one special character."},
		{"whitespace", "Str0ng@ Pass", "Invalid Password : The password must not contain any whitespace."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidatePassword(%q) = %v, want nil", tt.password, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidatePassword(%q) = nil, want %q", tt.password, tt.wantMsg)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("ValidatePassword(%q) = %q, want %q", tt.password, err.Error(), tt.wantMsg)
			}
		})
	}
}

// The first violated rule wins even when several rules are broken.
func TestValidatePasswordFirstViolationWins(t *testing.T) {
	err := ValidatePassword("abc")
	if err == nil || err.Error() != "Invalid Password : The length of the password must be at least 8" {
		t.Errorf("expected length violation first, got %v", err)
	}

	err = ValidatePassword("PASSWORD1")
	if err == nil || err.Error() != "Invalid Password : The password must contain at least one lowercase letter." {
		t.Errorf("expected lowercase violation before special-char, got %v", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	const plain = "Str0ng@Pass"

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	if string(hash) == plain {
		t.Fatal("stored hash must never equal the plaintext password")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(plain)); err != nil {
		t.Errorf("verifying original password failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("Str0ng@Pass2")); err == nil {
		t.Error("verifying a different password unexpectedly succeeded")
	}
}

func TestMaskAccountID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234567890", "XXXXXX7890"},
		{"9999", "9999"},
		{"12", "12"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := maskAccountID(tt.in); got != tt.want {
			t.Errorf("maskAccountID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPaymentMethodDetailString(t *testing.T) {
	p := PaymentMethod{Type: PaymentTypeUPI, AccountID: "user@upibank"}
	want := "Paid using - UPI, accountId='XXXXXXXXbank'"
	if got := p.DetailString(); got != want {
		t.Errorf("DetailString() = %q, want %q", got, want)
	}
}

func TestAddressDetailString(t *testing.T) {
	a := Address{
		AddressName: "Home",
		Apartment:   "12B",
		Area:        "MG Road",
		Landmark:    "Near Park",
		Pincode:     "560001",
		City:        "Bengaluru",
		State:       "Karnataka",
	}
	want := "Address - Home, 12B, MG Road, Near Park, 560001, Bengaluru, Karnataka"
	if got := a.DetailString(); got != want {
		t.Errorf("DetailString() = %q, want %q", got, want)
	}
}
