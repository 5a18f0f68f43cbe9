package main

import (
	"testing"
	"time"

	"safechain/internal/domain"
	"safechain/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRowMatchesHeader(t *testing.T) {
	d := &models.Deposit{
		UserID:        7,
		User:          models.User{Username: "alice", Email: "alice@example.com"},
		Amount:        decimal.NewFromInt(250),
		PaymentMethod: domain.PaymentMethodEFT,
		Status:        domain.StatusRejected,
		ProofImage:    "https://img.example.com/proof.jpg",
		AdminNotes:    "reference mismatch, asked user to resubmit",
	}
	d.ID = 42
	d.CreatedAt = time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)

	row := exportRow(d)
	require.Len(t, row, len(exportHeader))

	cols := map[string]string{}
	for i, name := range exportHeader {
		cols[name] = row[i]
	}
	assert.Equal(t, "42", cols["ID"])
	assert.Equal(t, "alice", cols["User"])
	assert.Equal(t, "250.00", cols["Amount"])
	assert.Equal(t, "yes", cols["Proof"])
	assert.Equal(t, "reference mismatch, asked user to resubmit", cols["Admin Notes"])
	assert.Equal(t, "2026-08-15T09:30:00Z", cols["Created"])
}

func TestBuildReportFlagsIntegrityIssues(t *testing.T) {
	now := time.Now()
	mk := func(id, userID uint, amount int64, method, proof string, created time.Time) models.Deposit {
		d := models.Deposit{
			UserID:        userID,
			Amount:        decimal.NewFromInt(amount),
			PaymentMethod: method,
			Status:        domain.StatusPending,
			ProofImage:    proof,
		}
		d.ID = id
		d.CreatedAt = created
		return d
	}

	list := []models.Deposit{
		mk(1, 1, 100, domain.PaymentMethodEFT, "", now.Add(-3*time.Hour)),
		mk(2, 2, 20, domain.PaymentMethodCash, "", now.Add(-2*time.Hour)),
		// four deposits from one user inside 24 hours
		mk(3, 3, 100, domain.PaymentMethodCash, "", now.Add(-10*time.Hour)),
		mk(4, 3, 100, domain.PaymentMethodCash, "", now.Add(-8*time.Hour)),
		mk(5, 3, 100, domain.PaymentMethodCash, "", now.Add(-6*time.Hour)),
		mk(6, 3, 100, domain.PaymentMethodCash, "", now.Add(-4*time.Hour)),
	}

	r := buildReport(list, decimal.NewFromInt(50), true)
	assert.Equal(t, 6, r.total)
	assert.Equal(t, 6, r.byStatus[domain.StatusPending])
	assert.Equal(t, []uint{1}, r.noProof)
	assert.Equal(t, []uint{2}, r.belowMin)
	assert.ElementsMatch(t, []uint{3, 4, 5, 6}, r.suspicious)
}
