// Package operations runs the analysis pipeline as an ordered list of steps.
//
// A Runner executes steps one after another in the calling goroutine. Before
// each step it checks the context, so a cancelled run stops at the next step
// boundary and the remaining steps are marked skipped. Every step gets its
// own trace span, a duration observation and start/finish log entries.
//
// The first failing step ends the run. Nothing is retried.
package operations
