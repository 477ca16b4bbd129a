// Package glossary owns the model catalog and its enrichment pass.
package glossary

import "odx/internal/domain"

// DefaultCatalog returns the built-in glossary entries. Callers get a fresh
// copy on every call; the returned slice is safe to mutate.
func DefaultCatalog() []domain.GlossaryEntry {
	catalog := []domain.GlossaryEntry{
		{
			Model:                 domain.ModelPartner,
			Aliases:               []string{"partner", "contact", "customer", "vendor", "supplier"},
			Category:              "contacts",
			Description:           "People and organizations Odoo does business with: customers, vendors, employees' contacts and their addresses.",
			ExtraDescription:      "A partner can be an individual or a company (is_company flag). Child partners model contacts and delivery/invoice addresses of a parent company.",
			AvailableActions:      []string{"search_read", "create", "write"},
			AliasesMany2oneFields: []string{"partner_id", "customer_id", "vendor_id", "commercial_partner_id"},
			FieldsSource:          domain.FieldsDynamic,
			Hints: []string{
				"Match people by email before falling back to fuzzy name search.",
				"is_company=true distinguishes organizations from individuals.",
			},
			Examples: []any{
				map[string]any{"name": "Azure Interior", "email": "azure.interior24@example.com", "is_company": true},
			},
		},
		{
			Model:                 domain.ModelCompany,
			Aliases:               []string{"company", "legal entity"},
			Category:              "settings",
			Description:           "Legal entities the Odoo database is operated for. Multi-company setups have one record per entity.",
			AvailableActions:      []string{"search_read"},
			AliasesMany2oneFields: []string{"company_id"},
			FieldsSource:          domain.FieldsDynamic,
			Hints: []string{
				"Not to be confused with res.partner records flagged is_company.",
			},
		},
		{
			Model:                 "product.product",
			Aliases:               []string{"product", "item", "sku", "variant"},
			Category:              "inventory",
			Description:           "Sellable or purchasable product variants, each belonging to a product.template.",
			AvailableActions:      []string{"search_read"},
			AliasesMany2oneFields: []string{"product_id"},
			FieldsSource:          domain.FieldsDynamic,
			Hints: []string{
				"default_code holds the internal reference (SKU).",
			},
		},
		{
			Model:                 "sale.order",
			Aliases:               []string{"sale order", "quotation", "quote", "sales order"},
			Category:              "sales",
			Description:           "Quotations and confirmed sales orders, with order lines linking products, quantities and prices.",
			AvailableActions:      []string{"search_read"},
			AliasesMany2oneFields: []string{"order_id", "sale_order_id"},
			FieldsSource:          domain.FieldsDynamic,
			ModelSpecificActions: map[string]any{
				"action_confirm": "Confirms a draft quotation into a sales order.",
			},
			Hints: []string{
				"state=draft means quotation, state=sale means confirmed order.",
			},
		},
		{
			Model:                 "account.move",
			Aliases:               []string{"invoice", "bill", "journal entry", "credit note"},
			Category:              "accounting",
			Description:           "Journal entries, including customer invoices (move_type=out_invoice) and vendor bills (move_type=in_invoice).",
			AvailableActions:      []string{"search_read"},
			AliasesMany2oneFields: []string{"move_id", "invoice_id"},
			FieldsSource:          domain.FieldsDynamic,
			Hints: []string{
				"Filter on move_type to separate invoices from arbitrary journal entries.",
			},
		},
		{
			Model:        "res.country",
			Aliases:      []string{"country"},
			Category:     "reference",
			Description:  "ISO country reference data used on partner addresses.",
			FieldsSource: domain.FieldsStatic,
			Fields: domain.FieldMap{
				"name": map[string]any{"type": "char", "string": "Country Name"},
				"code": map[string]any{"type": "char", "string": "Country Code", "help": "ISO 3166-1 alpha-2 code."},
			},
		},
	}

	out := make([]domain.GlossaryEntry, len(catalog))
	for i, entry := range catalog {
		out[i] = entry.Clone()
	}
	return out
}
