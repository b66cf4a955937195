package calculator

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mmynk/splitledger/internal/models"
)

// csvHeader is the first row of an exported balance sheet.
var csvHeader = []string{"User ID", "Name", "Balance"}

// WriteCSV writes the balance sheet as CSV with a header row.
func WriteCSV(w io.Writer, entries []models.BalanceEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		row := []string{strconv.FormatInt(e.UserID, 10), e.Name, e.Balance.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for user %d: %w", e.UserID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
