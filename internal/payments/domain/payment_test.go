package domain_test

import (
	"testing"
	"time"

	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPaymentComputeNetAmount(t *testing.T) {
	payment := domain.Payment{Amount: dec("100.00"), ProcessingFee: dec("2.50")}

	if got := payment.ComputeNetAmount(); !got.Equal(dec("97.50")) {
		t.Errorf("expected 97.50, got %s", got)
	}
}

func TestPaymentMarkCaptured(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	payment := domain.Payment{}
	payment.MarkCaptured(first)
	payment.MarkCaptured(later)

	if payment.PaymentDate == nil || !payment.PaymentDate.Equal(first) {
		t.Errorf("expected payment date to stay %v, got %v", first, payment.PaymentDate)
	}
}

func TestPaymentMethodValidateAmount(t *testing.T) {
	method := domain.PaymentMethod{
		Code:      "CREDIT_CARD",
		MinAmount: dec("10.00"),
		MaxAmount: dec("1000.00"),
	}

	tests := []struct {
		name      string
		amount    string
		wantBound string
	}{
		{"below minimum", "9.99", "min"},
		{"at minimum", "10.00", ""},
		{"inside bounds", "500.00", ""},
		{"at maximum", "1000.00", ""},
		{"above maximum", "1000.01", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := method.ValidateAmount(dec(tt.amount))
			if tt.wantBound == "" {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}

			invalidErr, ok := err.(*domain.InvalidAmountError)
			if !ok {
				t.Fatalf("expected InvalidAmountError, got: %v", err)
			}
			if invalidErr.Bound != tt.wantBound {
				t.Errorf("expected bound %q, got %q", tt.wantBound, invalidErr.Bound)
			}
		})
	}
}

func TestPaymentMethodComputeFee(t *testing.T) {
	method := domain.PaymentMethod{FeePercent: dec("2.50")}

	if got := method.ComputeFee(dec("100.00")); !got.Equal(dec("2.50")) {
		t.Errorf("expected 2.50, got %s", got)
	}

	// 2.5% of 33.33 is 0.83325, rounded half-up.
	if got := method.ComputeFee(dec("33.33")); !got.Equal(dec("0.83")) {
		t.Errorf("expected 0.83, got %s", got)
	}
}

func TestPaymentTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.PaymentStatus
		to   domain.PaymentStatus
		want bool
	}{
		{"pending to authorized", domain.PaymentPending, domain.PaymentAuthorized, true},
		{"pending to failed", domain.PaymentPending, domain.PaymentFailed, true},
		{"pending to voided", domain.PaymentPending, domain.PaymentVoided, true},
		{"pending to captured", domain.PaymentPending, domain.PaymentCaptured, false},
		{"authorized to captured", domain.PaymentAuthorized, domain.PaymentCaptured, true},
		{"captured is terminal", domain.PaymentCaptured, domain.PaymentRefunded, false},
		{"failed is terminal", domain.PaymentFailed, domain.PaymentPending, false},
		{"terminal self transition refused", domain.PaymentCaptured, domain.PaymentCaptured, false},
		{"pending self transition allowed", domain.PaymentPending, domain.PaymentPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Transitions.CanTransition(string(tt.from), string(tt.to))
			if got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestPaymentStatusIsTerminal(t *testing.T) {
	terminal := []domain.PaymentStatus{
		domain.PaymentCaptured, domain.PaymentFailed, domain.PaymentRefunded, domain.PaymentVoided,
	}
	for _, status := range terminal {
		if !status.IsTerminal() {
			t.Errorf("expected %s to be terminal", status)
		}
	}

	for _, status := range []domain.PaymentStatus{domain.PaymentPending, domain.PaymentAuthorized} {
		if status.IsTerminal() {
			t.Errorf("expected %s not to be terminal", status)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := domain.ParseStatus("AUTHORIZED"); err != nil {
		t.Errorf("expected AUTHORIZED to parse, got: %v", err)
	}
	if _, err := domain.ParseStatus("SETTLED"); err == nil {
		t.Error("expected unknown status to be rejected")
	}
}
