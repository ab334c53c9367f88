package entity

import (
	"encoding/json"
	"testing"
)

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"integer", "100", 100},
		{"decimal", "99.95", 99.95},
		{"negative", "-5", -5},
		{"empty", "", 0},
		{"garbage", "abc", 0},
		{"trailing text", "12abc", 0},
		{"whitespace", " 12 ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceAmount(tt.raw); got != tt.want {
				t.Errorf("CoerceAmount(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  float64
	}{
		{
			name:  "empty list",
			items: nil,
			want:  0,
		},
		{
			name: "single item",
			items: []LineItem{
				{Description: "Consulting", UnitPrice: 150},
			},
			want: 150,
		},
		{
			name: "mixed valid and zero prices",
			items: []LineItem{
				{Description: "Design", UnitPrice: 200.50},
				{Description: "Hosting", UnitPrice: 0},
				{Description: "Support", UnitPrice: 49.50},
			},
			want: 250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeTotal(tt.items); got != tt.want {
				t.Errorf("ComputeTotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTotalOrderIndependent(t *testing.T) {
	forward := []LineItem{
		{Description: "A", UnitPrice: 10},
		{Description: "B", UnitPrice: 20},
		{Description: "C", UnitPrice: 30},
	}
	reversed := []LineItem{forward[2], forward[1], forward[0]}

	if ComputeTotal(forward) != ComputeTotal(reversed) {
		t.Errorf("total depends on item order: %v vs %v",
			ComputeTotal(forward), ComputeTotal(reversed))
	}
}

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want float64
	}{
		{"number", `42.5`, 42.5},
		{"quoted number", `"42.5"`, 42.5},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"non-numeric string", `"abc"`, 0},
		{"boolean", `true`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.data), &a); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.data, err)
			}
			if float64(a) != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.data, a, tt.want)
			}
		})
	}
}

func TestLineItemsScan(t *testing.T) {
	var items LineItems
	raw := `[{"description":"Web work","price":"120"},{"description":"Extras","price":null}]`

	if err := items.Scan([]byte(raw)); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if float64(items[0].UnitPrice) != 120 {
		t.Errorf("first item price = %v, want 120", items[0].UnitPrice)
	}
	if float64(items[1].UnitPrice) != 0 {
		t.Errorf("null price = %v, want 0", items[1].UnitPrice)
	}
	if got := ComputeTotal(items); got != 120 {
		t.Errorf("ComputeTotal after scan = %v, want 120", got)
	}
}
