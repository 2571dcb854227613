package clients

// InvoiceStatusPending marks an invoice that still counts against the client.
const InvoiceStatusPending = "Pending"

// OutstandingFees sums the amounts of pending invoices. Paid or otherwise
// settled invoices do not contribute.
func OutstandingFees(invoices []Invoice) float64 {
	var sum float64
	for _, inv := range invoices {
		if inv.Status == InvoiceStatusPending {
			sum += inv.Amount
		}
	}
	return sum
}
