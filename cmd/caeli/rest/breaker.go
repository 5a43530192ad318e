package rest

import (
	"errors"
	"fmt"
	"time"

	"github.com/caeli-works/caeli-api-types/tasks"
	"github.com/sony/gobreaker"
)

// ErrAIUnavailable is returned when the AI endpoints have failed
// often enough that the client stops calling them for a while.
var ErrAIUnavailable = errors.New("ai endpoints suspended")

// aiBreaker guards the enrichment and analysis endpoints. Those sit
// in front of an LLM backend which degrades slowly under load, so
// after a few consecutive failures the client backs off instead of
// piling more work on it.
type aiBreaker struct {
	cb *gobreaker.CircuitBreaker
}

func newAIBreaker() *aiBreaker {
	return &aiBreaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "caeli-ai",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// Execute runs fn through the breaker. While the circuit is open the
// call is rejected with ErrAIUnavailable without touching the server.
func (b *aiBreaker) Execute(fn func() (tasks.Task, error)) (tasks.Task, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return tasks.Task{}, fmt.Errorf("%w: %s", ErrAIUnavailable, err)
		}
		return tasks.Task{}, err
	}
	return v.(tasks.Task), nil
}
