// Package export renders ledger data as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	entrySheet        = "Entry"
	linesSheet        = "Lines"
	trialBalanceSheet = "Trial Balance"
)

// AccountNames maps account IDs to a display label; missing IDs fall back to the ID.
type AccountNames map[string]string

// WriteEntry writes one entry as a workbook with a header sheet and a lines sheet.
// Lines are written in the legacy two-column debit/credit layout accountants expect.
func WriteEntry(w io.Writer, entry *domain.JournalEntry, accounts AccountNames) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", entrySheet); err != nil {
		return err
	}
	header := [][]any{
		{"Entry ID", entry.EntryID},
		{"Reference", entry.ReferenceNumber},
		{"Date", entry.EntryDate.Format(time.DateOnly)},
		{"Description", entry.Description},
		{"Status", string(entry.Status)},
		{"Version", entry.Version},
	}
	if entry.ReversedEntryID != nil {
		header = append(header, []any{"Reversal of", *entry.ReversedEntryID})
	}
	if entry.ReversedByEntryID != nil {
		header = append(header, []any{"Reversed by", *entry.ReversedByEntryID})
	}
	for i, row := range header {
		if err := setRow(f, entrySheet, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(linesSheet); err != nil {
		return err
	}
	if err := setRow(f, linesSheet, 1, []any{"Line", "Account", "Description", "Debit", "Credit", "Dimensions", "FSLI Bucket", "Reporting Bucket", "Item", "Reconciled"}); err != nil {
		return err
	}
	for i, l := range entry.Lines {
		var debit, credit any
		amount, _ := l.Amount.Float64()
		if l.Type == domain.Debit {
			debit = amount
		} else {
			credit = amount
		}
		row := []any{l.LineNo, accounts.label(l.AccountID), l.Description, debit, credit,
			formatDimensions(l.Dimensions), l.FSLIBucket, l.InternalReportingBucket, l.Item, l.Reconciled}
		if err := setRow(f, linesSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := setAmountFormat(f, linesSheet, "D2", fmt.Sprintf("E%d", len(entry.Lines)+1)); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

// WriteTrialBalance writes a trial balance with a totals row.
func WriteTrialBalance(w io.Writer, tb *domain.TrialBalance) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", trialBalanceSheet); err != nil {
		return err
	}
	if err := setRow(f, trialBalanceSheet, 1, []any{"As of", tb.AsOf.Format(time.DateOnly)}); err != nil {
		return err
	}
	if err := setRow(f, trialBalanceSheet, 3, []any{"Code", "Account", "Type", "Debit", "Credit"}); err != nil {
		return err
	}

	rowNo := 4
	for _, r := range tb.Rows {
		debit, _ := r.Debit.Float64()
		credit, _ := r.Credit.Float64()
		if err := setRow(f, trialBalanceSheet, rowNo, []any{r.AccountCode, r.AccountName, string(r.AccountType), debit, credit}); err != nil {
			return err
		}
		rowNo++
	}
	totalDebit, _ := tb.TotalDebit.Float64()
	totalCredit, _ := tb.TotalCredit.Float64()
	if err := setRow(f, trialBalanceSheet, rowNo, []any{"", "Total", "", totalDebit, totalCredit}); err != nil {
		return err
	}
	if err := setAmountFormat(f, trialBalanceSheet, "D4", fmt.Sprintf("E%d", rowNo)); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func setAmountFormat(f *excelize.File, sheet, from, to string) error {
	format := "#,##0.00"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

func (a AccountNames) label(accountID string) string {
	if name, ok := a[accountID]; ok && name != "" {
		return name
	}
	return accountID
}

func formatDimensions(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + tags[k]
	}
	return strings.Join(parts, ", ")
}
