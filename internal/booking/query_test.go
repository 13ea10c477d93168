package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDateQuery(t *testing.T) {
	cases := []struct {
		query  string
		isDate bool
	}{
		{"2024-03-15", true},
		{"2024/03/15", true},
		{"2024-3-5", true},
		{"2024/3/5", true},
		{"2024-12-31", true},
		{"2024-13-01", false},
		{"2024-00-10", false},
		{"2024-03-32", false},
		{"555", false},
		{"800-555-1212", false},
		{"", false},
		{"15-03-2024", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.isDate, IsDateQuery(tc.query), tc.query)
	}
}

func TestPhoneFragment(t *testing.T) {
	assert.Equal(t, "8005551212", PhoneFragment("(800) 555-1212"))
	assert.Equal(t, "555", PhoneFragment("555"))
	assert.Equal(t, "", PhoneFragment("n/a"))
}
