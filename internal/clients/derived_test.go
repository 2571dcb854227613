package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutstandingFeesSumsPendingOnly(t *testing.T) {
	invoices := []Invoice{
		{Amount: 1500, Status: "Pending"},
		{Amount: 2000, Status: "Paid"},
		{Amount: 350.50, Status: "Pending"},
	}

	assert.InDelta(t, 1850.50, OutstandingFees(invoices), 1e-9)
}

func TestOutstandingFeesEmpty(t *testing.T) {
	assert.Zero(t, OutstandingFees(nil))
	assert.Zero(t, OutstandingFees([]Invoice{{Amount: 100, Status: "Paid"}}))
}
