package models

// Setting keys seeded on first run.
const (
	SettingCompanyName   = "companyName"
	SettingCompanyPhone  = "companyPhone"
	SettingCompanyEmail  = "companyEmail"
	SettingCurrency      = "currency"
	SettingTaxRate       = "taxRate"
	SettingInvoicePrefix = "invoicePrefix"
	SettingTheme         = "theme"
)

type Setting struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}
