// Package shared holds helpers used by more than one package that belong to
// no single layer. Today that is only the testutil subpackage: a buffered
// slog handler for asserting on log output and rate-record fixtures.
//
// Example usage:
//
//	func TestLoad(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    path := testutil.WriteCSV(t, t.TempDir(), testutil.SampleCSV)
//	    ...
//	    testutil.AssertLogContains(t, handler, slog.LevelInfo, "Dataset loaded")
//	}
package shared
