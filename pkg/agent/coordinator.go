package agent

import (
	"context"
	"fmt"
	"strings"

	"robi-be/pkg/intent"
	"robi-be/pkg/session"
)

// Coordinator classifies queries and hands them to the matching agent.
type Coordinator struct {
	agents  map[intent.Category]*Agent
	session *session.State
	cfg     Config
}

// NewCoordinator builds one agent per profile. All agents share cfg, in particular
// the session state and the response cache. A profile for the fallback category is required.
func NewCoordinator(cfg Config, profiles map[intent.Category]Profile) (*Coordinator, error) {
	cfg = cfg.withDefaults()
	if _, ok := profiles[intent.CategoryOther]; !ok {
		return nil, fmt.Errorf("missing profile for fallback category %q", intent.CategoryOther)
	}

	agents := make(map[intent.Category]*Agent, len(profiles))
	for category, profile := range profiles {
		profile.Category = category
		a, err := NewAgent(profile, cfg)
		if err != nil {
			return nil, fmt.Errorf("create %s agent: %w", category, err)
		}
		agents[category] = a
	}
	return &Coordinator{agents: agents, session: cfg.Session, cfg: cfg}, nil
}

// Route answers a query. The answer is returned exactly as the agent produced it;
// the error is non-nil only for an empty query.
func (c *Coordinator) Route(ctx context.Context, query string) (*Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	category := intent.Classify(query)
	a, ok := c.agents[category]
	if !ok {
		a = c.agents[intent.CategoryOther]
	}
	c.cfg.Logger.Debug(module, "Routing query", map[string]interface{}{
		"category": string(a.Category()),
	})
	return a.Answer(ctx, query), nil
}

func (c *Coordinator) Agent(category intent.Category) (*Agent, bool) {
	a, ok := c.agents[category]
	return a, ok
}

// Agents lists the configured categories in routing priority order.
func (c *Coordinator) Agents() []intent.Category {
	out := make([]intent.Category, 0, len(c.agents))
	for _, cat := range intent.Categories {
		if _, ok := c.agents[cat]; ok {
			out = append(out, cat)
		}
	}
	return out
}

func (c *Coordinator) Session() *session.State {
	return c.session
}
