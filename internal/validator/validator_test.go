package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Color string `validate:"omitempty,hex_color"`
	Kind  string `validate:"required,category_kind"`
	ID    string `validate:"omitempty,uuid_id"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := v.RegisterValidation("hex_color", validateHexColor); err != nil {
		t.Fatal(err)
	}
	if err := v.RegisterValidation("category_kind", validateCategoryKind); err != nil {
		t.Fatal(err)
	}
	if err := v.RegisterValidation("uuid_id", validateUUID); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidate(t)

	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid_short_color", sample{Color: "#fff", Kind: "income"}, false},
		{"valid_long_color", sample{Color: "#A1B2C3", Kind: "expense"}, false},
		{"named_color", sample{Color: "red", Kind: "expense"}, true},
		{"unknown_kind", sample{Kind: "transfer"}, true},
		{"valid_id", sample{Kind: "income", ID: "0190b4a5-7c3e-7d4a-9b2f-3c1d2e4f5a6b"}, false},
		{"invalid_id", sample{Kind: "income", ID: "42"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
