package saft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nordkassa/kassa-api/internal/domain/saft"
)

// TestAccountForPaymentMethod covers the full mapping including the
// catch-all for unknown and empty methods.
func TestAccountForPaymentMethod(t *testing.T) {
	cases := []struct {
		method string
		want   string
	}{
		{"cash", "1920"},
		{"card", "1921"},
		{"vipps", "1922"},
		{"gift_card", "1922"},
		{"", "1922"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, saft.AccountForPaymentMethod(tc.method), "method=%q", tc.method)
	}
}
