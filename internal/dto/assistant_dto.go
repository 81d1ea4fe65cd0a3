package dto

import "robi-be/pkg/agent"

type AskRequest struct {
	Query string `query:"query" json:"query" validate:"required"`
}

type AskResponse struct {
	Query   string        `json:"query"`
	Answer  string        `json:"answer"`
	Timings agent.Timings `json:"timings"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status          string         `json:"status"`
	ResourcesLoaded bool           `json:"resources_loaded"`
	Documents       int            `json:"documents"`
	Generation      uint64         `json:"generation"`
	UserName        string         `json:"user_name"`
	Agents          []string       `json:"agents"`
	Events          map[string]int `json:"events,omitempty"`
}
