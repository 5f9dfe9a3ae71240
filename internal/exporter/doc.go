// Package exporter persists and prints analysis results.
//
// CSVWriter writes rate datasets (with an exclusive-create mode so an
// existing file is never truncated). WriteJSON and WriteWorkbook persist a
// report as indented JSON and as an XLSX workbook with one sheet per
// section. TextWriter prints the human-readable console report.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(logger)
//	err := w.WriteCSV(path, exporter.WriteOptions{
//	    Headers:   exporter.RateHeaders(),
//	    Records:   exporter.RateRows(records),
//	    Exclusive: true,
//	})
//
//	err = exporter.WriteJSON(report, "out/reports/report.json")
//	err = exporter.NewTextWriter(os.Stdout).WriteOverview(report)
package exporter
