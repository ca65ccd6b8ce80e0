package handlers

import "testing"

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != defaultPage || limit != defaultLimit {
		t.Fatalf("expected defaults %d/%d, got %d/%d", defaultPage, defaultLimit, page, limit)
	}
}

func TestParsePaginationParamsLimitCap(t *testing.T) {
	_, limit, err := parsePaginationParams("2", "5000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != maxLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxLimit, limit)
	}
}

func TestParsePaginationParamsRejectsInvalid(t *testing.T) {
	cases := [][2]string{
		{"0", "10"},
		{"-1", "10"},
		{"abc", "10"},
		{"1", "0"},
		{"1", "-5"},
		{"1", "ten"},
	}
	for _, tc := range cases {
		if _, _, err := parsePaginationParams(tc[0], tc[1]); err == nil {
			t.Fatalf("expected error for page=%q limit=%q", tc[0], tc[1])
		}
	}
}
