package myorm

import (
	"testing"
)

func TestDelete(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		build   func() *SQL
		wantSQL string
	}{
		{
			name:    "all rows",
			build:   func() *SQL { return Delete("products") },
			wantSQL: "DELETE FROM `products`",
		},
		{
			name:    "with where",
			build:   func() *SQL { return Delete("products").Where(Filter{"status": "hidden"}) },
			wantSQL: "DELETE FROM `products` WHERE `status`='hidden'",
		},
		{
			name:    "one",
			build:   func() *SQL { return Delete("products").Where(Filter{"id": 2}).Limit(1) },
			wantSQL: "DELETE FROM `products` WHERE `id`=2 LIMIT 1",
		},
		{
			name:    "empty filter",
			build:   func() *SQL { return Delete("products").Where(Filter{}) },
			wantSQL: "DELETE FROM `products`",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().String(); got != tt.wantSQL {
				t.Errorf("String() = %q, want %q", got, tt.wantSQL)
			}
		})
	}
}

func TestDropTable(t *testing.T) {
	t.Parallel()
	if got := DropTable("products").String(); got != "DROP TABLE IF EXISTS `products`" {
		t.Errorf("String() = %q", got)
	}
}
