package domain

const (
	// DefaultTimezone is the execution context timezone sent with every
	// fields_get call so field labels render the same across calls.
	DefaultTimezone = "UTC"

	DefaultCategory              = "odoo"
	DefaultEnrichmentConcurrency = 4

	ModelPartner = "res.partner"
	ModelCompany = "res.company"
)
