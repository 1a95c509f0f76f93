package accounting

import (
	"fmt"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the natural-balance sign of the account type to a line.
// DEBIT to ASSET/EXPENSE and CREDIT to LIABILITY/EQUITY/REVENUE are positive.
func CalculateSignedAmount(lineType domain.LineType, amount decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	isDebit := lineType == domain.Debit
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	return amount, nil
}

// NaturalBalance returns the trial balance row net expressed in the account's normal side.
func NaturalBalance(row domain.TrialBalanceRow) (decimal.Decimal, error) {
	debit, err := CalculateSignedAmount(domain.Debit, row.Debit, row.AccountType)
	if err != nil {
		return decimal.Zero, err
	}
	credit, err := CalculateSignedAmount(domain.Credit, row.Credit, row.AccountType)
	if err != nil {
		return decimal.Zero, err
	}
	return debit.Add(credit), nil
}

// ReverseLines flips every line to the opposite side, keeping amounts and tags.
// Reconciliation state is not carried over.
func ReverseLines(lines []domain.JournalLine) []domain.JournalLine {
	out := CopyLines(lines)
	for i := range out {
		out[i].Type = out[i].Type.Opposite()
	}
	return out
}

// CopyLines clones lines without IDs, entry links or reconciliation state.
func CopyLines(lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		var dims map[string]string
		if len(l.Dimensions) > 0 {
			dims = make(map[string]string, len(l.Dimensions))
			for k, v := range l.Dimensions {
				dims[k] = v
			}
		}
		out[i] = domain.JournalLine{
			LineNo:                  i + 1,
			AccountID:               l.AccountID,
			Type:                    l.Type,
			Amount:                  l.Amount,
			Description:             l.Description,
			EntityCode:              l.EntityCode,
			Dimensions:              dims,
			FSLIBucket:              l.FSLIBucket,
			InternalReportingBucket: l.InternalReportingBucket,
			Item:                    l.Item,
		}
	}
	return out
}
