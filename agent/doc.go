// Package agent implements the salonmind analysis agents. BaseAgent bundles
// the shared reasoning loop (Think), the best-effort audit journaling
// (LogAction) and identity helpers; embed it in a concrete agent and supply
// an Execute method to satisfy core.Agent. SchedulerAgent analyzes
// appointment utilization and scheduling gaps; ClientIntelAgent classifies
// churn risk and segments the customer base.
package agent
