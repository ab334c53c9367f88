package entity

// RenderedInvoice is the fixed-layout document derived from one Invoice,
// ready to hand to the PDF exporter. It is transient: built per render,
// discarded after. Totals here are re-derived from the item snapshot, never
// read from the stored Amount.
type RenderedInvoice struct {
	// DisplayID is the truncated record id shown on the page. Display only,
	// never valid for lookups.
	DisplayID  string        `json:"display_id"`
	Issuer     SenderProfile `json:"issuer"`
	ClientName string        `json:"client_name"`
	Date       string        `json:"date"`
	Rows       []DocumentRow `json:"rows"`
	Total      string        `json:"total"`
}

// DocumentRow is one printed line of the invoice table.
type DocumentRow struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}
