package services

import (
	"context"
	"sync"
	"testing"

	"github.com/yungbote/codemorph-backend/internal/platform/logger"
)

// fakeClient scripts model replies for tests. respond is called with the user
// prompt for every GenerateText/GenerateJSON call; calls are counted.
type fakeClient struct {
	mu      sync.Mutex
	calls   int
	respond func(prompt string) (string, error)
}

func (f *fakeClient) GenerateText(_ context.Context, _ string, user string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.respond(user)
}

func (f *fakeClient) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	return f.GenerateText(ctx, system, user)
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}
