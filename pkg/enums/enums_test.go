package enums

import "testing"

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"cash", "check", "zelle", "paypal", "applepay", "venmo"} {
		method, err := ParsePaymentMethod(raw)
		if err != nil {
			t.Fatalf("expected %q to parse: %v", raw, err)
		}
		if !method.IsValid() || method.String() != raw {
			t.Fatalf("unexpected method %q", method)
		}
	}
	if _, err := ParsePaymentMethod("bitcoin"); err == nil {
		t.Fatal("expected unknown method to fail")
	}
	if PaymentMethod("CASH").IsValid() {
		t.Fatal("payment methods are case sensitive")
	}
}

func TestPaymentMethodsReturnsCopy(t *testing.T) {
	methods := PaymentMethods()
	methods[0] = "mutated"
	if PaymentMethods()[0] != PaymentMethodCash {
		t.Fatal("PaymentMethods should not expose the backing slice")
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("in_progress")
	if err != nil || status != OrderStatusInProgress {
		t.Fatalf("expected in_progress, got %q (%v)", status, err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected unknown status to fail")
	}
}
