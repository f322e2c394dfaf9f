package checkout

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keepers-bakery/pkg/enums"
	pkgerrors "github.com/angelmondragon/keepers-bakery/pkg/errors"
)

func validRequest() OrderRequest {
	return OrderRequest{
		CustomerName:  "Ada Baker",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "555-0100",
		Items: []OrderItem{
			{ProductID: "sourdough", Quantity: 2, Price: decimal.RequireFromString("8.50")},
		},
		Total:         decimal.RequireFromString("17.00"),
		PaymentMethod: enums.PaymentMethodZelle,
	}
}

func TestValidateOrderRequest_Accepts(t *testing.T) {
	if err := ValidateOrderRequest(validRequest()); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestValidateOrderRequest_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OrderRequest)
		field  string
	}{
		{"missing email", func(r *OrderRequest) { r.CustomerEmail = "" }, "customerEmail"},
		{"bad email", func(r *OrderRequest) { r.CustomerEmail = "not-an-email" }, "customerEmail"},
		{"no items", func(r *OrderRequest) { r.Items = nil }, "items"},
		{"zero quantity", func(r *OrderRequest) { r.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"negative price", func(r *OrderRequest) { r.Items[0].Price = decimal.NewFromInt(-1) }, "items[0].price"},
		{"negative total", func(r *OrderRequest) { r.Total = decimal.RequireFromString("-0.01") }, "total"},
		{"unknown payment", func(r *OrderRequest) { r.PaymentMethod = "bitcoin" }, "paymentMethod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := ValidateOrderRequest(req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			details, ok := typed.Details().(map[string]string)
			if !ok {
				t.Fatalf("expected field details, got %T", typed.Details())
			}
			if _, ok := details[tt.field]; !ok {
				t.Fatalf("expected detail for %s, got %v", tt.field, details)
			}
		})
	}
}

func TestPaymentMethodMessageListsChoices(t *testing.T) {
	req := validRequest()
	req.PaymentMethod = "card"
	typed := pkgerrors.As(ValidateOrderRequest(req))
	details := typed.Details().(map[string]string)
	if got := details["paymentMethod"]; got != "must be one of cash, check, zelle, paypal, applepay, venmo" {
		t.Fatalf("unexpected message %q", got)
	}
}
