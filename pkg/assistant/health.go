// SPDX-License-Identifier: Apache-2.0

package assistant

import (
	"context"
	"sync"
	"time"
)

// CollaboratorHealth is the cached probe outcome for one collaborator.
type CollaboratorHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// HealthStatus is a read-only snapshot of process-wide assistant state.
type HealthStatus struct {
	Initialized   bool                 `json:"initialized"`
	Model         string               `json:"model"`
	Tools         []string             `json:"tools"`
	Collaborators []CollaboratorHealth `json:"collaborators,omitempty"`
}

// Health reports the current snapshot. The tool and collaborator lists are
// empty while the service is uninitialized. Collaborator probes are cached,
// so polling this is cheap.
func (s *Service) Health(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Initialized: s.initialized.Load(),
		Model:       s.model,
		Tools:       []string{},
	}
	if !status.Initialized {
		return status
	}

	status.Tools = s.registry.Names()
	for _, checker := range s.checkers {
		healthy, err := checker.Check(ctx)
		entry := CollaboratorHealth{Name: checker.name, Healthy: healthy}
		if err != nil {
			entry.Error = err.Error()
		}
		status.Collaborators = append(status.Collaborators, entry)
	}
	return status
}

// CollaboratorChecker probes a collaborator with a minimum interval between
// real checks; callers polling health reuse the cached result.
type CollaboratorChecker struct {
	name        string
	checkFunc   func(ctx context.Context) error
	minInterval time.Duration

	mu          sync.Mutex
	lastCheck   time.Time
	lastHealthy bool
	lastErr     error
}

// NewCollaboratorChecker creates a checker for the named collaborator.
func NewCollaboratorChecker(name string, checkFunc func(ctx context.Context) error) *CollaboratorChecker {
	return &CollaboratorChecker{
		name:        name,
		checkFunc:   checkFunc,
		minInterval: 30 * time.Second,
	}
}

// seed records an already-observed probe outcome, so the first health poll
// after initialization reuses the init result instead of probing again.
func (c *CollaboratorChecker) seed(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastCheck = time.Now()
	c.lastHealthy = err == nil
	c.lastErr = err
}

// Check probes the collaborator, returning whether it is healthy and the
// last error observed. Results within the minimum interval are cached.
func (c *CollaboratorChecker) Check(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastCheck.IsZero() && time.Since(c.lastCheck) < c.minInterval {
		return c.lastHealthy, c.lastErr
	}

	if c.checkFunc == nil {
		c.lastCheck = time.Now()
		c.lastHealthy, c.lastErr = true, nil
		return true, nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := c.checkFunc(probeCtx)
	c.lastCheck = time.Now()
	c.lastHealthy, c.lastErr = err == nil, err
	return c.lastHealthy, c.lastErr
}
