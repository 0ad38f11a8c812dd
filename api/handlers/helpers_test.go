package handlers_test

import (
	"net/http"
	"sync"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/policy"
)

func as(req *http.Request, id, role string) *http.Request {
	return req.WithContext(api.WithPrincipal(req.Context(), policy.NewPrincipal(id, id+"@lifeline.test", role)))
}

// published records the changes a handler announces
type published struct {
	mu      sync.Mutex
	changes []feed.Change
}

func (p *published) publish(c feed.Change) {
	p.mu.Lock()
	p.changes = append(p.changes, c)
	p.mu.Unlock()
}

func (p *published) tables() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.changes))
	for _, c := range p.changes {
		out = append(out, c.Table+":"+string(c.Op))
	}
	return out
}
