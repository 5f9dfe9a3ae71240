// Package app wires configuration, logging, tracing, metrics and chart
// rendering around the analysis pipeline and runs it once.
package app
