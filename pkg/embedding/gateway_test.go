package embedding

import (
	"errors"
	"io"
	"log"
	"testing"
)

type stubProvider struct {
	name      string
	result    *Result
	err       error
	available bool
	calls     int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(text, taskType string) (*Result, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubProvider) Available() bool { return s.available }

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestGatewayFallbackOrder(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("boom")}
	secondary := &stubProvider{
		name:   "secondary",
		result: &Result{Values: []float32{1, 0}, Dimension: 2, Model: "secondary"},
	}

	g := NewGateway(discardLogger(), primary, secondary)
	res := g.Embed("some text", TaskRetrievalQuery)

	if res == nil {
		t.Fatal("expected fallback result, got nil")
	}
	if res.Model != "secondary" {
		t.Errorf("got result from %s, want secondary", res.Model)
	}
	if primary.calls != 1 {
		t.Errorf("primary called %d times, want 1", primary.calls)
	}
}

func TestGatewayPrimaryWinsWithoutFallback(t *testing.T) {
	primary := &stubProvider{
		name:   "primary",
		result: &Result{Values: []float32{1}, Dimension: 1, Model: "primary"},
	}
	secondary := &stubProvider{name: "secondary"}

	g := NewGateway(discardLogger(), primary, secondary)
	res := g.Embed("text", TaskRetrievalDocument)

	if res == nil || res.Model != "primary" {
		t.Fatalf("expected primary result, got %+v", res)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls)
	}
}

func TestGatewayNilOnTotalFailure(t *testing.T) {
	g := NewGateway(discardLogger(),
		&stubProvider{name: "a", err: errors.New("down")},
		&stubProvider{name: "b", err: errors.New("also down")},
	)

	if res := g.Embed("text", TaskRetrievalQuery); res != nil {
		t.Errorf("expected nil on total failure, got %+v", res)
	}
}

func TestGatewayAvailableAnyBackend(t *testing.T) {
	g := NewGateway(discardLogger(),
		&stubProvider{name: "a", available: false},
		&stubProvider{name: "b", available: true},
	)
	if !g.Available() {
		t.Error("expected gateway to be available")
	}

	none := NewGateway(discardLogger(), &stubProvider{name: "a"})
	if none.Available() {
		t.Error("expected gateway to be unavailable")
	}
}
