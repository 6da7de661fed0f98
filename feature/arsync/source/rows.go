package source

import (
	"fmt"
	"strings"

	"ar-sync/core/erp"
	"ar-sync/core/utils"
	"ar-sync/feature/arsync/models"
)

// Column names produced by DefaultQuery. A custom query must alias its columns the same way.
const (
	ColumnCustomerID   = "customer_id"
	ColumnCustomerName = "customer_name"
	ColumnTotalBalance = "total_ar_balance"
	ColumnPastDue      = "past_due_amount"
)

// DefaultQuery selects active customers with an open balance, largest first.
const DefaultQuery = `SELECT c.id AS customer_id, ` +
	`COALESCE(c.companyname, c.entityid) AS customer_name, ` +
	`c.balance AS total_ar_balance, ` +
	`c.overduebalance AS past_due_amount ` +
	`FROM customer c ` +
	`WHERE c.isinactive = 'F' AND c.balance > 0 ` +
	`ORDER BY c.balance DESC, c.id`

// RecordsFromRows converts query rows into records, preserving order.
func RecordsFromRows(rows []erp.Row) ([]models.ReceivableRecord, []models.RejectedRow) {
	records := make([]models.ReceivableRecord, 0, len(rows))
	var rejected []models.RejectedRow

	for i, row := range rows {
		record, err := recordFromRow(row)
		if err != nil {
			rejected = append(rejected, models.RejectedRow{
				Index:              i,
				ExternalCustomerID: record.ExternalCustomerID,
				Reason:             err.Error(),
			})
			continue
		}
		records = append(records, record)
	}

	return records, rejected
}

// RowsFromCustomers turns a customer list into rows with zero balances.
func RowsFromCustomers(customers []erp.Customer) []erp.Row {
	rows := make([]erp.Row, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, erp.Row{
			ColumnCustomerID:   c.ID,
			ColumnCustomerName: c.DisplayName(),
			ColumnTotalBalance: "0",
			ColumnPastDue:      "0",
		})
	}
	return rows
}

func recordFromRow(row erp.Row) (models.ReceivableRecord, error) {
	record := models.ReceivableRecord{
		ExternalCustomerID: strings.TrimSpace(utils.ToString(row[ColumnCustomerID])),
		DisplayName:        strings.TrimSpace(utils.ToString(row[ColumnCustomerName])),
	}
	if record.ExternalCustomerID == "" {
		return record, fmt.Errorf("missing %s", ColumnCustomerID)
	}
	if record.DisplayName == "" {
		return record, fmt.Errorf("missing %s", ColumnCustomerName)
	}

	total, err := utils.ToDecimal(row[ColumnTotalBalance])
	if err != nil {
		return record, fmt.Errorf("invalid %s: %w", ColumnTotalBalance, err)
	}
	pastDue, err := utils.ToDecimal(row[ColumnPastDue])
	if err != nil {
		return record, fmt.Errorf("invalid %s: %w", ColumnPastDue, err)
	}
	if total.IsNegative() {
		return record, fmt.Errorf("negative %s %s", ColumnTotalBalance, total.String())
	}
	if pastDue.IsNegative() {
		return record, fmt.Errorf("negative %s %s", ColumnPastDue, pastDue.String())
	}

	record.TotalBalance = total
	record.PastDueBalance = pastDue
	return record, nil
}
