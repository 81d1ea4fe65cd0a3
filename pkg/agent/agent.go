package agent

import (
	"context"
	"errors"
	"sync"
	"text/template"
	"time"

	"robi-be/internal/pkg/logger"
	"robi-be/pkg/catalog"
	"robi-be/pkg/intent"
	"robi-be/pkg/llm"
	"robi-be/pkg/session"
)

const module = "AGENT"

const DefaultTimeout = 60 * time.Second

// Resources is the part of the catalog an agent reads.
type Resources interface {
	IsReady() bool
	Generation() uint64
	Documents() []catalog.Document
	NavigationGuide() string
}

// ResponseCache stores final answers by key. A nil cache disables caching.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, answer string) error
}

// CacheKey scopes an answer to the user name it was generated for, so a name
// change never replays an answer that greets somebody else.
func CacheKey(userName, query string) string {
	return userName + "\x00" + query
}

// Timings are the diagnostics returned next to every answer, in seconds.
type Timings struct {
	ResponseTime float64 `json:"response_time,omitempty"`
	TotalTime    float64 `json:"total_time,omitempty"`
	Cached       bool    `json:"cached,omitempty"`
	NameUpdate   bool    `json:"name_update,omitempty"`
	Category     string  `json:"category,omitempty"`
}

type Answer struct {
	Text     string
	Category intent.Category
	Timings  Timings
	// Err is set when Text is a degraded error answer.
	Err error
}

// DefaultGenerationOptions pin deterministic, long-form output.
func DefaultGenerationOptions() []llm.Option {
	return []llm.Option{
		llm.WithTemperature(0),
		llm.WithTopP(0.95),
		llm.WithTopK(64),
		llm.WithMaxTokens(8192),
	}
}

// Config carries the collaborators shared by every agent.
type Config struct {
	LLM        llm.LLMProvider
	Resources  Resources
	Session    *session.State
	Cache      ResponseCache
	Logger     logger.ILogger
	Timeout    time.Duration
	NamePolicy session.NamePolicy
	Options    []llm.Option
}

func (c Config) withDefaults() Config {
	if c.Session == nil {
		c.Session = session.NewState()
	}
	if c.Logger == nil {
		c.Logger = logger.NewNopLogger()
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.NamePolicy == "" {
		c.NamePolicy = session.NamePolicyPrefix
	}
	if c.Options == nil {
		c.Options = DefaultGenerationOptions()
	}
	return c
}

// Agent answers queries for one category. Requests to the same agent are
// serialized; the transcript is only touched while mu is held.
type Agent struct {
	profile Profile
	tmpl    *template.Template
	cfg     Config

	mu         sync.Mutex
	transcript []llm.Message
	seededGen  uint64
}

func NewAgent(profile Profile, cfg Config) (*Agent, error) {
	if cfg.LLM == nil || cfg.Resources == nil {
		return nil, errors.New("agent requires an LLM provider and resources")
	}
	tmpl, err := profile.Parse()
	if err != nil {
		return nil, err
	}
	return &Agent{profile: profile, tmpl: tmpl, cfg: cfg.withDefaults()}, nil
}

func (a *Agent) Category() intent.Category {
	return a.profile.Category
}

// Transcript returns a copy of the accumulated conversation.
func (a *Agent) Transcript() []llm.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]llm.Message(nil), a.transcript...)
}

// Answer never fails hard: downstream errors come back as an error answer with Err set.
func (a *Agent) Answer(ctx context.Context, query string) *Answer {
	start := time.Now()
	ans := &Answer{Category: a.profile.Category}
	ans.Timings.Category = string(a.profile.Category)
	defer func() { ans.Timings.TotalTime = time.Since(start).Seconds() }()

	// name is the single snapshot used for the prompt, the cache key and the acknowledgement.
	name, changed := a.cfg.Session.UpdateFromQuery(query)
	if changed {
		ans.Timings.NameUpdate = true
		a.cfg.Logger.Info(module, "User name updated", map[string]interface{}{"name": name})
		if a.cfg.NamePolicy == session.NamePolicyShortCircuit || !session.HasFollowUp(query) {
			ans.Text = session.Acknowledgement(name)
			return ans
		}
	}

	a.answer(ctx, query, name, ans)

	if changed {
		reply := ans.Text
		if ans.Err == nil {
			reply = session.StripGreeting(reply, name)
		}
		ans.Text = session.Acknowledgement(name) + " " + reply
	}
	return ans
}

func (a *Agent) answer(ctx context.Context, query, userName string, ans *Answer) {
	if !a.cfg.Resources.IsReady() {
		a.fail(ans, ErrNotLoaded)
		return
	}

	key := CacheKey(userName, query)
	if a.cfg.Cache != nil {
		text, ok, err := a.cfg.Cache.Get(ctx, key)
		if err != nil {
			a.cfg.Logger.Warn(module, "Response cache read failed", map[string]interface{}{"error": err.Error()})
		} else if ok {
			ans.Text = text
			ans.Timings.Cached = true
			return
		}
	}

	prompt, err := render(a.tmpl, PromptData{
		UserName:         userName,
		Query:            query,
		NavigationGuide:  a.cfg.Resources.NavigationGuide(),
		PriorityDocument: a.profile.PriorityDocument,
	})
	if err != nil {
		a.fail(ans, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.prepareTranscript()
	request := append(append([]llm.Message(nil), a.transcript...), llm.UserText(prompt))

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	callStart := time.Now()
	reply, err := a.cfg.LLM.Chat(callCtx, request, a.cfg.Options...)
	ans.Timings.ResponseTime = time.Since(callStart).Seconds()
	if err != nil {
		a.fail(ans, &ModelInvocationError{Category: a.profile.Category, Err: err})
		return
	}

	a.transcript = append(a.transcript, llm.UserText(prompt), llm.Message{Role: llm.RoleModel, Content: reply})
	ans.Text = reply

	if a.cfg.Cache != nil {
		if err := a.cfg.Cache.Set(ctx, key, reply); err != nil {
			a.cfg.Logger.Warn(module, "Response cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	a.cfg.Logger.Info(module, "Query answered", map[string]interface{}{
		"category":      string(a.profile.Category),
		"response_time": ans.Timings.ResponseTime,
	})
}

// prepareTranscript applies the transcript policy. Replacing profiles start from the
// fresh document context on every call; the others reseed only after a reload.
func (a *Agent) prepareTranscript() {
	gen := a.cfg.Resources.Generation()
	if a.profile.ReplaceTranscript || a.transcript == nil || a.seededGen != gen {
		a.transcript = a.documentContext()
		a.seededGen = gen
	}
}

// documentContext references the profile's priority document in full, ahead of
// every other document, which is referenced by name only.
func (a *Agent) documentContext() []llm.Message {
	key := a.profile.PriorityDocument
	docs := catalog.Prioritize(a.cfg.Resources.Documents(), key)
	msgs := make([]llm.Message, 0, len(docs))
	for _, d := range docs {
		if catalog.Matches(d, key) {
			msgs = append(msgs, llm.UserFile(d.File()))
		} else {
			msgs = append(msgs, llm.UserText("Basic content from "+d.Name))
		}
	}
	return msgs
}

func (a *Agent) fail(ans *Answer, err error) {
	ans.Err = err
	ans.Text = errorText(err)
	a.cfg.Logger.Error(module, "Query failed", map[string]interface{}{
		"category": string(a.profile.Category),
		"error":    err.Error(),
	})
}
