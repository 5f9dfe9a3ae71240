// Package dataset provisions, loads and cleans the unemployment rate file.
//
// Ensure writes a fixed 36-month sample when no file exists yet and never
// touches an existing one. Load reads the file into a Table, locating
// columns by header name and treating empty cells and the usual NA tokens as
// missing; records with a missing field are dropped by Clean.
//
//	created, err := dataset.Ensure(ctx, "unemployment.csv", logger)
//	table, err := dataset.Load("unemployment.csv")
//	fmt.Println(table.Len(), table.Info().DroppedRows)
package dataset
