// Package export renders content plans as spreadsheets.
package export

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

// SheetName is the worksheet holding the calendar.
const SheetName = "Calendar"

// ContentType is the MIME type of the written workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var calendarHeaders = []any{
	"Date", "Time", "Page", "Format", "Primary Text", "Secondary Text",
	"Call To Action", "Hashtags", "Score", "Frequency", "Passed", "Status",
}

// WriteCalendar writes items as an XLSX content calendar, one row per item
// in the given order.
func WriteCalendar(w io.Writer, items []domain.ContentItem) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, 1, calendarHeaders); err != nil {
		return err
	}
	for i, item := range items {
		if err := setRow(f, i+2, calendarRow(item)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}

func calendarRow(item domain.ContentItem) []any {
	return []any{
		item.ScheduledDate,
		item.ScheduledTime,
		item.PageName,
		string(item.Format),
		item.PrimaryText,
		item.SecondaryText,
		item.CallToAction,
		hashtags(item.HashtagStrategy),
		item.ComplianceCheck.Score,
		string(item.ComplianceCheck.Frequency),
		item.ComplianceCheck.Passed,
		string(item.Status),
	}
}

// hashtags flattens the strategy groups in key order.
func hashtags(groups map[string][]string) string {
	var tags []string
	for _, key := range slices.Sorted(maps.Keys(groups)) {
		tags = append(tags, groups[key]...)
	}
	return strings.Join(tags, " ")
}
