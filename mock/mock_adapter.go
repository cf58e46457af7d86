package mock

import (
	"context"

	nftbridge "github.com/opennft/nft-bridge"
)

// Step is one scripted outcome: either a transport error or a response.
type Step struct {
	Err  error
	Resp *nftbridge.NormalizedResponse
}

// MockAdapter plays back a fixed script of outcomes. Once the script runs
// out the last step repeats, so "always 429" is a one-step script. Calls
// counts every ExecuteRequest, which lets tests assert the executor's
// attempt budget.
type MockAdapter struct {
	Steps []Step

	Calls int
}

func (m *MockAdapter) ExecuteRequest(_ context.Context, _ *nftbridge.NormalizedRequest) (*nftbridge.NormalizedResponse, error) {
	i := m.Calls
	m.Calls++
	if len(m.Steps) == 0 {
		return OK(`{}`).Resp, nil
	}
	if i >= len(m.Steps) {
		i = len(m.Steps) - 1
	}
	step := m.Steps[i]
	return step.Resp, step.Err
}

func (m *MockAdapter) IsRateLimitError(resp *nftbridge.NormalizedResponse) bool {
	return resp.StatusCode == 429
}

// OK returns a scripted 200 with the given JSON body.
func OK(body string) Step {
	return Step{Resp: &nftbridge.NormalizedResponse{
		StatusCode: 200,
		Headers:    map[string]string{},
		Data:       []byte(body),
	}}
}

// Status returns a scripted response with an arbitrary status code.
func Status(code int, body string) Step {
	return Step{Resp: &nftbridge.NormalizedResponse{
		StatusCode: code,
		Headers:    map[string]string{},
		Data:       []byte(body),
	}}
}

// RateLimited returns a scripted 429.
func RateLimited() Step {
	return Status(429, `{"error":"Rate limited"}`)
}

// TransportErr returns a scripted transport-level failure.
func TransportErr(err error) Step {
	return Step{Err: err}
}
