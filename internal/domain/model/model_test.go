package model

import "testing"

func TestStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   Status
		value string
	}{
		{"orders", StatusOrders, "orders"},
		{"delivered", StatusDelivered, "delivered"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusOrders.Valid() || !StatusDelivered.Valid() {
		t.Fatal("expected both domain statuses to be valid")
	}
	for _, s := range []Status{"", "pending", "ORDERS", "Delivered"} {
		if s.Valid() {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestStatusOptions(t *testing.T) {
	options := StatusOptions()
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	if options[0].Value != StatusOrders || options[0].Label != "Orders" || options[0].Color != "yellow" {
		t.Fatalf("unexpected first option %+v", options[0])
	}
	if options[1].Value != StatusDelivered || options[1].Label != "Delivered" || options[1].Color != "green" {
		t.Fatalf("unexpected second option %+v", options[1])
	}
}
