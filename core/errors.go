package core

import "errors"

// Sentinel errors returned by agents and the coordinator. Callers use
// errors.Is to tell a bad request (unknown task or workflow, missing agent)
// apart from a system failure such as a store or provider error.
var (
	ErrUnknownTask     = errors.New("unknown task")
	ErrUnknownWorkflow = errors.New("unknown workflow")
	ErrAgentsMissing   = errors.New("required agents not found")
	ErrMissingAPIKey   = errors.New("api key not configured")
)
