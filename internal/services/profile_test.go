package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/codemorph-backend/internal/types"
)

// fakeProfileRepo keeps profiles in a map keyed by session id, mirroring the
// upsert-by-session-id contract of the real repo.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]types.SessionProfile
	upserts  int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]types.SessionProfile)}
}

func (r *fakeProfileRepo) GetBySessionID(_ context.Context, _ *gorm.DB, sessionID string) (*types.SessionProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[sessionID]
	if !ok {
		return nil, nil
	}
	copied := p
	return &copied, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, _ *gorm.DB, profile *types.SessionProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	r.profiles[profile.SessionID] = *profile
	return nil
}

func TestGetOrCreate_CreatesDefaultProfileOnce(t *testing.T) {
	repo := newFakeProfileRepo()
	ai := &fakeClient{respond: func(string) (string, error) { return "", nil }}
	svc := NewProfileService(nil, testLogger(t), repo, ai)

	first, err := svc.GetOrCreate(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if first.SkillLevel != types.SkillBeginner {
		t.Fatalf("expected beginner default, got %q", first.SkillLevel)
	}
	if first.LastUpdated.IsZero() {
		t.Fatalf("expected last_updated to be set")
	}

	second, err := svc.GetOrCreate(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("GetOrCreate second call: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same profile, got %s and %s", first.ID, second.ID)
	}
	if repo.upserts != 1 {
		t.Fatalf("expected 1 upsert, got %d", repo.upserts)
	}
}

func TestGetOrCreate_RequiresSessionID(t *testing.T) {
	svc := NewProfileService(nil, testLogger(t), newFakeProfileRepo(), &fakeClient{respond: func(string) (string, error) { return "", nil }})
	if _, err := svc.GetOrCreate(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty session id")
	}
}

func TestAppendInteraction_AccumulatesHistory(t *testing.T) {
	repo := newFakeProfileRepo()
	ai := &fakeClient{respond: func(string) (string, error) { return "", nil }}
	svc := NewProfileService(nil, testLogger(t), repo, ai)

	profile, err := svc.GetOrCreate(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	for i := 0; i < 3; i++ {
		event := types.InteractionEvent{MessageLength: 10 + i, ResponseLength: 100, Timestamp: "2026-08-30T00:00:00Z", ContextType: "general"}
		if err := svc.AppendInteraction(context.Background(), profile, event); err != nil {
			t.Fatalf("AppendInteraction: %v", err)
		}
	}

	stored, _ := repo.GetBySessionID(context.Background(), nil, "sess-1")
	if stored == nil {
		t.Fatalf("profile not persisted")
	}
	var history []types.InteractionEvent
	if err := json.Unmarshal(stored.InteractionHistory, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 events, got %d", len(history))
	}
	if history[2].MessageLength != 12 {
		t.Fatalf("unexpected last event: %+v", history[2])
	}
}

func TestUpdateFromSignals_PromotesAndComposesSuggestions(t *testing.T) {
	repo := newFakeProfileRepo()
	ai := &fakeClient{respond: func(string) (string, error) {
		return `["Study graph traversal", "Profile your hot loops", "Read about B-trees"]`, nil
	}}
	svc := NewProfileService(nil, testLogger(t), repo, ai)

	update, err := svc.UpdateFromSignals(context.Background(), "sess-1", SkillSignals{
		CodeQualityScore: floatPtr(9),
		Question:         strPtr("how does the algorithm scale?"),
	}, "databases")
	if err != nil {
		t.Fatalf("UpdateFromSignals: %v", err)
	}
	if update.SkillLevel != types.SkillAdvanced {
		t.Fatalf("expected advanced, got %q", update.SkillLevel)
	}
	if len(update.Suggestions) != 3 || update.Suggestions[0] != "Study graph traversal" {
		t.Fatalf("unexpected suggestions: %v", update.Suggestions)
	}

	stored, _ := repo.GetBySessionID(context.Background(), nil, "sess-1")
	if stored.SkillLevel != types.SkillAdvanced {
		t.Fatalf("reclassification not persisted: %q", stored.SkillLevel)
	}
}

func TestUpdateFromSignals_SuggestionCallFailureFallsBack(t *testing.T) {
	suggestionCall := false
	ai := &fakeClient{respond: func(prompt string) (string, error) {
		suggestionCall = true
		return "", fmt.Errorf("unreachable")
	}}
	svc := NewProfileService(nil, testLogger(t), newFakeProfileRepo(), ai)

	update, err := svc.UpdateFromSignals(context.Background(), "sess-1", SkillSignals{}, "")
	if err != nil {
		t.Fatalf("UpdateFromSignals: %v", err)
	}
	if !suggestionCall {
		t.Fatalf("expected a suggestions call")
	}
	want := []string{"Keep practicing!", "Try more examples", "Ask questions"}
	if len(update.Suggestions) != len(want) || update.Suggestions[0] != want[0] {
		t.Fatalf("unexpected fallback: %v", update.Suggestions)
	}
}

func TestUpdateFromSignals_UnparseableSuggestionsUseTopicFallback(t *testing.T) {
	ai := &fakeClient{respond: func(string) (string, error) {
		return "here are some ideas for you", nil
	}}
	svc := NewProfileService(nil, testLogger(t), newFakeProfileRepo(), ai)

	update, err := svc.UpdateFromSignals(context.Background(), "sess-1", SkillSignals{}, "")
	if err != nil {
		t.Fatalf("UpdateFromSignals: %v", err)
	}
	if update.Suggestions[0] != "Practice more programming problems" {
		t.Fatalf("expected topic default in fallback, got %v", update.Suggestions)
	}
}
