package symptom

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_ParsesModelArray(t *testing.T) {
	completion := &fakeCompletion{reply: `["acetaminophen", "ibuprofen"]`}
	recommender := NewRecommender(completion)

	got := recommender.Recommend(context.Background(), Record{
		Symptoms: []string{"headache"},
		Severity: SeverityMild,
	})

	assert.Equal(t, []string{"acetaminophen", "ibuprofen"}, got)
	require.Len(t, completion.userPrompts, 1)
	assert.Contains(t, completion.userPrompts[0], "Symptoms: headache")
	assert.Contains(t, completion.userPrompts[0], "Severity: mild")
	assert.Contains(t, completion.userPrompts[0], "Duration: unknown")
}

func TestRecommend_DeduplicatesModelOutput(t *testing.T) {
	completion := &fakeCompletion{reply: `["ibuprofen", "aspirin", "ibuprofen"]`}
	recommender := NewRecommender(completion)

	got := recommender.Recommend(context.Background(), Record{Symptoms: []string{"headache"}})
	assert.Equal(t, []string{"ibuprofen", "aspirin"}, got)
}

func TestRecommend_NonArrayFallsBackToTable(t *testing.T) {
	completion := &fakeCompletion{reply: `{"medicines": ["ibuprofen"]}`}
	recommender := NewRecommender(completion)

	got := recommender.Recommend(context.Background(), Record{Symptoms: []string{"fever"}})
	assert.Equal(t, []string{"acetaminophen", "ibuprofen"}, got)
}

func TestRecommend_CompletionFailureFallsBackToTable(t *testing.T) {
	completion := &fakeCompletion{err: fmt.Errorf("backend down")}
	recommender := NewRecommender(completion)

	got := recommender.Recommend(context.Background(), Record{Symptoms: []string{"headache", "fever"}})
	assert.Equal(t, []string{"acetaminophen", "ibuprofen", "aspirin"}, got)
}

func TestRecommend_EmptySymptomsSkipsModel(t *testing.T) {
	completion := &fakeCompletion{reply: `["ibuprofen"]`}
	recommender := NewRecommender(completion)

	got := recommender.Recommend(context.Background(), Record{Symptoms: []string{}})
	assert.Nil(t, got)
	assert.Zero(t, completion.calls)
}
