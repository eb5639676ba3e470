package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReeceHarding/landing-page/internal/llm"
	"github.com/ReeceHarding/landing-page/internal/logger"
	"github.com/ReeceHarding/landing-page/internal/normalizer"
	"github.com/ReeceHarding/landing-page/internal/store"
)

// fakeClient replays a scripted fragment sequence.
type fakeClient struct {
	fragments   []llm.Fragment
	streamErr   error
	completion  string
	completeErr error
	lastStream  []llm.Message
}

func (f *fakeClient) Stream(_ context.Context, messages []llm.Message) (<-chan llm.Fragment, error) {
	f.lastStream = messages
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	out := make(chan llm.Fragment, len(f.fragments))
	for _, frag := range f.fragments {
		out <- frag
	}
	close(out)
	return out, nil
}

func (f *fakeClient) Complete(context.Context, []llm.Message) (string, error) {
	return f.completion, f.completeErr
}

// recordingObserver captures pipeline narration.
type recordingObserver struct {
	logs       []string
	keepAlives int
}

func (r *recordingObserver) Log(message string) { r.logs = append(r.logs, message) }
func (r *recordingObserver) KeepAlive()         { r.keepAlives++ }

func newTestService(t *testing.T, client CompletionClient) (*Service, *store.ContentStore, *store.ContentStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	log := logger.NewNop()
	preview := store.New(rc, store.Options{KeyPrefix: "landing:preview:", Retention: time.Hour}, log)
	dynamic := store.New(rc, store.Options{KeyPrefix: "landing:dynamic:", Retention: time.Hour, VerifyWrites: true}, log)

	return NewService(client, normalizer.New(log), preview, dynamic, log), preview, dynamic
}

func fragmentsFor(text string) []llm.Fragment {
	return []llm.Fragment{
		{Text: text},
		{Done: true},
	}
}

func TestGenerate(t *testing.T) {
	client := &fakeClient{fragments: fragmentsFor(
		`{"heroTitles": ["Plan", "Cook", "Enjoy"], "heroDescription": "Meal kits for climbers."}`,
	)}
	service, preview, dynamic := newTestService(t, client)

	obs := &recordingObserver{}
	result, err := service.Generate(context.Background(), "meal kits for climbers", obs)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.GeneratedID)
	assert.NotEmpty(t, result.DynamicID)
	assert.NotEqual(t, result.GeneratedID, result.DynamicID)

	// The idea reaches the upstream prompt
	require.NotEmpty(t, client.lastStream)
	assert.Contains(t, client.lastStream[len(client.lastStream)-1].Content, "meal kits for climbers")

	// Both copies are readable and carry the normalized content
	p, err := preview.Get(context.Background(), result.GeneratedID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plan", "Cook", "Enjoy"}, p.Hero.Titles)
	assert.Equal(t, "Meal kits for climbers.", p.Hero.Description)

	d, err := dynamic.Get(context.Background(), result.DynamicID)
	require.NoError(t, err)
	assert.Equal(t, p.Hero.Titles, d.Hero.Titles)

	// Narration covers the whole pipeline
	require.NotEmpty(t, obs.logs)
	assert.Contains(t, obs.logs[0], "Generating")
	assert.Contains(t, obs.logs[len(obs.logs)-1], "ready")
}

func TestGenerateEmptyIdea(t *testing.T) {
	client := &fakeClient{}
	service, _, _ := newTestService(t, client)

	for _, idea := range []string{"", "   ", "\n\t"} {
		_, err := service.Generate(context.Background(), idea, nil)
		assert.ErrorIs(t, err, ErrNoIdea)
	}

	// No upstream call was made
	assert.Nil(t, client.lastStream)
}

func TestGenerateRejectedStream(t *testing.T) {
	client := &fakeClient{streamErr: llm.ErrNoInput}
	service, _, _ := newTestService(t, client)

	_, err := service.Generate(context.Background(), "an idea", nil)
	assert.ErrorIs(t, err, ErrNoIdea)
}

func TestGenerateForwardsKeepAlives(t *testing.T) {
	client := &fakeClient{fragments: []llm.Fragment{
		{Idle: true},
		{Text: "{}"},
		{Idle: true},
		{Done: true},
	}}
	service, _, _ := newTestService(t, client)

	obs := &recordingObserver{}
	_, err := service.Generate(context.Background(), "an idea", obs)
	require.NoError(t, err)
	assert.Equal(t, 2, obs.keepAlives)
}

func TestGenerateUnparseableOutputFallsBack(t *testing.T) {
	client := &fakeClient{fragments: fragmentsFor("I cannot produce JSON today.")}
	service, preview, _ := newTestService(t, client)

	result, err := service.Generate(context.Background(), "an idea", nil)
	require.NoError(t, err)

	p, err := preview.Get(context.Background(), result.GeneratedID)
	require.NoError(t, err)
	assert.Empty(t, p.MissingFields())
}

func TestGenerateEarlyStreamEndFallsBack(t *testing.T) {
	// No Done sentinel and no content: the pipeline still yields a full record
	client := &fakeClient{fragments: []llm.Fragment{{Idle: true}}}
	service, _, dynamic := newTestService(t, client)

	result, err := service.Generate(context.Background(), "an idea", nil)
	require.NoError(t, err)

	d, err := dynamic.Get(context.Background(), result.DynamicID)
	require.NoError(t, err)
	assert.Empty(t, d.MissingFields())
}

func TestGenerateStoreFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	log := logger.NewNop()
	preview := store.New(rc, store.Options{KeyPrefix: "landing:preview:", Retention: time.Hour}, log)
	dynamic := store.New(rc, store.Options{KeyPrefix: "landing:dynamic:", Retention: time.Hour}, log)
	client := &fakeClient{fragments: fragmentsFor("{}")}
	service := NewService(client, normalizer.New(log), preview, dynamic, log)

	mr.Close()

	obs := &recordingObserver{}
	_, err := service.Generate(context.Background(), "an idea", obs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview store")
	assert.Contains(t, obs.logs[len(obs.logs)-1], "went wrong")
}

func TestSuggestIdea(t *testing.T) {
	client := &fakeClient{completion: "  A plant-care subscription box.\n"}
	service, _, _ := newTestService(t, client)

	idea, err := service.SuggestIdea(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A plant-care subscription box.", idea)
}

func TestSuggestIdeaError(t *testing.T) {
	client := &fakeClient{completeErr: errors.New("upstream down")}
	service, _, _ := newTestService(t, client)

	_, err := service.SuggestIdea(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suggest idea")
}
