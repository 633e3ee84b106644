// Package core defines the contracts shared by the salonmind agents and the
// coordinator: the Agent interface, the closed set of tasks an agent can be
// asked to perform, the typed analysis results those tasks produce, the
// append-only audit action record, and the narrow store interfaces the agents
// consume. Concrete implementations live in the agent, coordinator and store
// packages; keeping the contracts here avoids import cycles between them.
package core
