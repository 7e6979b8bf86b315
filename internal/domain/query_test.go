package domain

import (
	"errors"
	"testing"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{"", SortNone, false},
		{"featured", SortNone, false},
		{"price-asc", SortPriceAsc, false},
		{"price-low", SortPriceAsc, false},
		{"PRICE-DESC", SortPriceDesc, false},
		{"price-high", SortPriceDesc, false},
		{"rating", SortRatingDesc, false},
		{"rating-desc", SortRatingDesc, false},
		{" newest ", SortNewest, false},
		{"relevance", SortRelevance, false},
		{"cheapest", SortNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortKey(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRequest) {
					t.Errorf("ParseSortKey(%q) error = %v, want ErrInvalidRequest", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSortKey(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSortKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestListQueryNormalize(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		q := ListQuery{}
		q.Normalize()
		if q.Page != DefaultPage || q.Limit != DefaultLimit {
			t.Errorf("got page=%d limit=%d, want %d/%d", q.Page, q.Limit, DefaultPage, DefaultLimit)
		}
	})

	t.Run("clamps limit", func(t *testing.T) {
		q := ListQuery{Page: 3, Limit: 5000}
		q.Normalize()
		if q.Page != 3 {
			t.Errorf("Page = %d, want 3", q.Page)
		}
		if q.Limit != MaxLimit {
			t.Errorf("Limit = %d, want %d", q.Limit, MaxLimit)
		}
	})

	t.Run("trims text fields", func(t *testing.T) {
		q := ListQuery{Category: " fashion ", Search: "  shirt"}
		q.Normalize()
		if q.Category != "fashion" || q.Search != "shirt" {
			t.Errorf("got category=%q search=%q", q.Category, q.Search)
		}
	})
}

func TestProductRef(t *testing.T) {
	ref := NewRef(SourceDatabase, "01HZX3")
	if ref.String() != "database:01HZX3" {
		t.Errorf("String() = %q", ref.String())
	}

	parsed, ok := ParseProductRef(ref.String())
	if !ok || parsed != ref {
		t.Errorf("ParseProductRef round trip = %+v, %v", parsed, ok)
	}

	for _, bare := range []string{"7", "frontend:", "warehouse:7", ""} {
		if _, ok := ParseProductRef(bare); ok {
			t.Errorf("ParseProductRef(%q) ok = true, want false", bare)
		}
	}

	parsed, ok = ParseProductRef("frontend:7")
	if !ok || parsed.Source != SourceFrontend || parsed.NativeID != "7" {
		t.Errorf("ParseProductRef(frontend:7) = %+v, %v", parsed, ok)
	}
}

func TestUserIsAdmin(t *testing.T) {
	var nobody *User
	if nobody.IsAdmin() {
		t.Error("nil user must not be admin")
	}
	if (&User{Role: "customer"}).IsAdmin() {
		t.Error("customer must not be admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role must be admin")
	}
}
