// Package analysis computes the exploratory statistics of a rate table:
// descriptive summary, pre/post event comparison, seasonal and yearly
// averages, per-region distributions and the extremal months.
//
// Every function here is pure; nothing is printed or drawn. Run chains the
// stages into a Report that the exporter and chart packages consume.
//
// # Usage Example
//
//	report, err := analysis.Run(ctx, table, analysis.Options{
//	    Cutoff:    time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
//	    EventName: "Covid-19",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Insights.Highest.Name)
//
// # Statistics
//
// Quantiles use linear interpolation between closest ranks, so a summary
// matches the usual describe() output of dataframe libraries. Means and
// standard deviations come from gonum/stat; the standard deviation is the
// sample (n-1) estimator and is NaN for a single value.
package analysis
