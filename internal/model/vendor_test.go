package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryContact(t *testing.T) {
	vendor := Vendor{
		Contacts: []VendorContact{
			{Name: "Alice", IsPrimary: false},
			{Name: "Bob", IsPrimary: true},
		},
	}

	primary := vendor.PrimaryContact()
	assert.NotNil(t, primary)
	assert.Equal(t, "Bob", primary.Name)

	empty := Vendor{}
	assert.Nil(t, empty.PrimaryContact())
}

func TestFullAddress_SkipsEmptyParts(t *testing.T) {
	vendor := Vendor{
		AddressLine1: "123 Main St",
		City:         "Springfield",
		State:        "IL",
		PostalCode:   "62701",
	}
	assert.Equal(t, "123 Main St, Springfield, IL, 62701", vendor.FullAddress())

	assert.Equal(t, "", (&Vendor{}).FullAddress())
}
