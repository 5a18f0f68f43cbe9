// Package banking holds the static South African banking reference data used
// for deposit instructions and reconciliation reports.
package banking

// CompanyAccount is the account deposits are reconciled against. Display-only.
type CompanyAccount struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	BranchCode    string `json:"branch_code"`
	AccountType   string `json:"account_type"`
}

var Company = CompanyAccount{
	AccountNumber: "63160510955",
	BankName:      "FNB",
	AccountName:   "SafeChain Vault",
	BranchCode:    "250655",
	AccountType:   "Business Account",
}

// BranchCodes maps bank identifiers to universal branch codes.
var BranchCodes = map[string]string{
	"ABSA":       "632005",
	"CAPITEC":    "470010",
	"FNB":        "250655",
	"INVESTEC":   "580105",
	"NEDBANK":    "198765",
	"STANDARD":   "051001",
	"AFRICAN":    "430000",
	"BIDVEST":    "462005",
	"DISCOVERY":  "679000",
	"GRINDROD":   "584000",
	"HSBC":       "587000",
	"MERCANTILE": "450905",
	"TYME":       "678910",
}

// BankNames maps bank identifiers to display names.
var BankNames = map[string]string{
	"ABSA":       "ABSA Bank",
	"CAPITEC":    "Capitec Bank",
	"FNB":        "First National Bank",
	"INVESTEC":   "Investec Bank",
	"NEDBANK":    "Nedbank",
	"STANDARD":   "Standard Bank",
	"AFRICAN":    "African Bank",
	"BIDVEST":    "Bidvest Bank",
	"DISCOVERY":  "Discovery Bank",
	"GRINDROD":   "Grindrod Bank",
	"HSBC":       "HSBC Bank",
	"MERCANTILE": "Mercantile Bank",
	"SAHL":       "South African Home Loans",
	"TYME":       "TymeBank",
	"UBS":        "UBS Bank",
}

// BranchCode returns the universal branch code for a bank, or empty string.
func BranchCode(bank string) string {
	return BranchCodes[bank]
}

// IsKnownBank reports whether the identifier is one we accept on withdrawals.
func IsKnownBank(bank string) bool {
	_, ok := BankNames[bank]
	return ok
}
