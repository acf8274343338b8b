package response

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBookingResponse_MaskPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"digits", "9876543210", "******3210"},
		{"short number untouched", "1234", "1234"},
		{"empty", "", ""},
		{"multibyte digits", "९८७६५४३२१०", "******३२१०"},
		{"mixed", "+91 ९८७६५ 43210", "***********3210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BookingResponse{PhoneNumber: tt.phone}.MaskPhone()

			assert.Equal(t, tt.want, got.PhoneNumber)
			assert.True(t, utf8.ValidString(got.PhoneNumber))
		})
	}
}

func TestBookingResponse_MaskPhoneLeavesOriginal(t *testing.T) {
	orig := BookingResponse{PhoneNumber: "9876543210"}

	_ = orig.MaskPhone()

	assert.Equal(t, "9876543210", orig.PhoneNumber)
}
