// Command verifydeposits audits deposit records from the operations side:
// totals per status, integrity checks on pending submissions, and optional
// CSV/XLSX exports for reconciliation against the bank statement.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"safechain/config"
	"safechain/internal/database"
	"safechain/internal/domain"
	"safechain/internal/models"
	"safechain/internal/repository"
	"safechain/pkg/banking"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func main() {
	var (
		status      = flag.String("status", "all", "filter by status: pending, approved, rejected, all")
		days        = flag.Int("days", 30, "look back this many days")
		exportCSV   = flag.String("export", "", "write a CSV report to this path")
		exportXLSX  = flag.String("xlsx", "", "write an XLSX report to this path")
		checkProofs = flag.Bool("check-proofs", false, "flag EFT deposits without proof of payment")
		minAmount   = flag.String("min-amount", "50", "flag deposits below this amount")
	)
	flag.Parse()

	minDep, err := decimal.NewFromString(*minAmount)
	if err != nil {
		log.Fatalf("invalid --min-amount: %v", err)
	}

	cfg := config.Load()
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	deposits := repository.NewDepositRepository(db)
	to := time.Now()
	from := to.AddDate(0, 0, -*days)
	list, err := deposits.ListByDateRange(from, to, *status)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}

	report := buildReport(list, minDep, *checkProofs)
	report.print(from, to)

	if *exportCSV != "" {
		if err := writeCSV(*exportCSV, list); err != nil {
			log.Fatalf("csv export failed: %v", err)
		}
		fmt.Printf("\nCSV written to %s\n", *exportCSV)
	}
	if *exportXLSX != "" {
		if err := writeXLSX(*exportXLSX, list, report); err != nil {
			log.Fatalf("xlsx export failed: %v", err)
		}
		fmt.Printf("XLSX written to %s\n", *exportXLSX)
	}
}

type report struct {
	total          int
	byStatus       map[string]int
	amountByStatus map[string]decimal.Decimal
	noProof        []uint
	belowMin       []uint
	suspicious     []uint
}

func buildReport(list []models.Deposit, minDep decimal.Decimal, checkProofs bool) *report {
	r := &report{
		byStatus:       map[string]int{},
		amountByStatus: map[string]decimal.Decimal{},
	}
	perUser := map[uint][]models.Deposit{}
	for _, d := range list {
		r.total++
		r.byStatus[d.Status]++
		r.amountByStatus[d.Status] = r.amountByStatus[d.Status].Add(d.Amount)

		if checkProofs && d.PaymentMethod == domain.PaymentMethodEFT && d.ProofImage == "" {
			r.noProof = append(r.noProof, d.ID)
		}
		if d.Amount.LessThan(minDep) {
			r.belowMin = append(r.belowMin, d.ID)
		}
		perUser[d.UserID] = append(perUser[d.UserID], d)
	}

	// More than three submissions from one user inside a rolling 24 hours is
	// worth a manual look. The list is ordered oldest first.
	for _, ds := range perUser {
		for i := range ds {
			window := 1
			for j := i + 1; j < len(ds); j++ {
				if ds[j].CreatedAt.Sub(ds[i].CreatedAt) <= 24*time.Hour {
					window++
				}
			}
			if window > 3 {
				for _, d := range ds {
					r.suspicious = append(r.suspicious, d.ID)
				}
				break
			}
		}
	}
	return r
}

func (r *report) print(from, to time.Time) {
	fmt.Printf("Deposit verification %s to %s\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	fmt.Printf("Total deposits: %d\n\n", r.total)
	for _, st := range []string{domain.StatusPending, domain.StatusApproved, domain.StatusRejected} {
		fmt.Printf("  %-9s %5d   R%s\n", st, r.byStatus[st], r.amountByStatus[st].StringFixed(2))
	}
	if len(r.noProof) > 0 {
		fmt.Printf("\nEFT deposits missing proof: %v\n", r.noProof)
	}
	if len(r.belowMin) > 0 {
		fmt.Printf("Deposits below minimum: %v\n", r.belowMin)
	}
	if len(r.suspicious) > 0 {
		fmt.Printf("Suspicious (more than 3 in 24h): %v\n", r.suspicious)
	}
	fmt.Printf("\nReconcile against %s account %s (branch %s)\n",
		banking.Company.BankName, banking.Company.AccountNumber, banking.Company.BranchCode)
}

var exportHeader = []string{"ID", "User", "Email", "Amount", "Method", "Status", "Proof", "Admin Notes", "Created"}

func exportRow(d *models.Deposit) []string {
	proof := "yes"
	if d.ProofImage == "" {
		proof = "no"
	}
	return []string{
		fmt.Sprintf("%d", d.ID),
		d.User.Username,
		d.User.Email,
		d.Amount.StringFixed(2),
		d.PaymentMethod,
		d.Status,
		proof,
		d.AdminNotes,
		d.CreatedAt.Format(time.RFC3339),
	}
}

func writeCSV(path string, list []models.Deposit) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for i := range list {
		if err := w.Write(exportRow(&list[i])); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, list []models.Deposit, rep *report) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Deposits"
	f.SetSheetName("Sheet1", sheet)
	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for i := range list {
		for col, val := range exportRow(&list[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	summaryRow := len(list) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Pending amount")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), rep.amountByStatus[domain.StatusPending].StringFixed(2))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1), "Approved amount")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+1), rep.amountByStatus[domain.StatusApproved].StringFixed(2))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+2), "Company account")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+2),
		fmt.Sprintf("%s %s", banking.Company.BankName, banking.Company.AccountNumber))

	return f.SaveAs(path)
}
