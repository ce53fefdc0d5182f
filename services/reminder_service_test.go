package services

import (
	"testing"

	"nailbook-backend/models"

	"github.com/stretchr/testify/assert"
)

func phonePtr(s string) *string { return &s }

func TestReminderRecipient(t *testing.T) {
	cases := []struct {
		name  string
		phone *string
		want  string
		ok    bool
	}{
		{"no phone on file", nil, "", false},
		{"empty phone", phonePtr(""), "", false},
		{"local number", phonePtr("0812345678"), "0812345678", true},
		{"international number", phonePtr("+66812345678"), "+66812345678", true},
		{"letters", phonePtr("not-a-number"), "", false},
		{"formatted with spaces", phonePtr("081 234 5678"), "081 234 5678", true},
		{"too short", phonePtr("1"), "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reminderRecipient(models.Appointment{CustomerPhone: tc.phone})
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
