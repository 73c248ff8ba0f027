package llm

import (
	"context"
)

// Fixture is a Client that returns canned responses. It is used when no API
// key is configured and in tests.
type Fixture struct {
	// Responses are returned in order. When exhausted, the last response
	// repeats.
	Responses []string

	// Calls records the conversations this client received.
	Calls [][]Message

	calls int
}

// NewFixture returns a fixture client with a generic assistant response.
func NewFixture() *Fixture {
	return &Fixture{
		Responses: []string{
			"You are currently within your budget. Keep an eye on your largest categories for the rest of the month.",
		},
	}
}

// Chat implements the Client interface.
func (f *Fixture) Chat(_ context.Context, messages []Message, _ Options) (string, error) {
	f.Calls = append(f.Calls, messages)

	if len(f.Responses) == 0 {
		return "", ErrEmptyResponse
	}

	i := f.calls
	if i >= len(f.Responses) {
		i = len(f.Responses) - 1
	}
	f.calls++

	return f.Responses[i], nil
}
