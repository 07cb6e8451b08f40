package db

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

// ExportXLSX writes the table to a spreadsheet with one header row followed by
// the records in table order.
func (db *DB) ExportXLSX(path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := f.SetSheetName("Sheet1", TableName); err != nil {
		return err
	}
	header := []interface{}{"ID", "Name", "Programme", "Mark"}
	if err := f.SetSheetRow(TableName, "A1", &header); err != nil {
		return err
	}
	for i, s := range db.records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		mark, err := strconv.ParseFloat(FormatMark(s.Mark), 64)
		if err != nil {
			return err
		}
		row := []interface{}{s.ID, s.Name, s.Programme, mark}
		if err := f.SetSheetRow(TableName, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "db: export %s", path)
	}
	db.log.Info("database exported", "path", path, "records", len(db.records))
	return nil
}
