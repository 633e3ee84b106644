// Package coordinator hosts the agent registry and the multi-step business
// workflows that orchestrate the analysis agents. Workflows run their steps
// sequentially so each step's audit trail lands in order; a failing step
// aborts the run.
package coordinator
