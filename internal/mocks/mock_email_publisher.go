package mocks

import (
	"context"
	"sync"

	"github.com/dwisatya/go-auth-service/pkg/mailer"
)

// MockEmailPublisher records published email jobs instead of hitting a broker.
type MockEmailPublisher struct {
	mu   sync.Mutex
	Err  error // returned from PublishJSON when set
	Jobs []mailer.EmailJob
}

func (m *MockEmailPublisher) PublishJSON(ctx context.Context, body any) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := body.(mailer.EmailJob); ok {
		m.Jobs = append(m.Jobs, job)
	}
	return nil
}

// LastJob returns the most recently published job, or a zero job.
func (m *MockEmailPublisher) LastJob() mailer.EmailJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Jobs) == 0 {
		return mailer.EmailJob{}
	}
	return m.Jobs[len(m.Jobs)-1]
}
