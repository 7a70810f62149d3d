package pagination

import "testing"

func TestDefaults(t *testing.T) {
	cases := []struct {
		name     string
		in       PageRequest
		wantPage int
		wantSize int
	}{
		{"zero value", PageRequest{}, 1, 20},
		{"negative", PageRequest{Page: -3, PageSize: -1}, 1, 20},
		{"capped size", PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"kept as-is", PageRequest{Page: 4, PageSize: 50}, 4, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Defaults()
			if tc.in.Page != tc.wantPage || tc.in.PageSize != tc.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d",
					tc.in.Page, tc.in.PageSize, tc.wantPage, tc.wantSize)
			}
		})
	}
}

func TestOffsetAndTotals(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}

	resp := NewPageResponse[int](nil, 1, 25, 51)
	if resp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.TotalPages)
	}
	if resp.Data == nil {
		t.Error("Data should be an empty slice, not nil")
	}
}
