package resolve

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/pkg/places"
	"github.com/sells-group/lead-resolver/pkg/places/mocks"
)

func TestBatch(t *testing.T) {
	dir := &fakeDirectory{
		results: map[string]string{StrategyNameCityState: "ChIJtx"},
		profiles: map[string]*model.CandidateProfile{"ChIJtx": {
			PlaceID: "ChIJtx", Name: "Lead Co", State: "TX",
		}},
	}

	var reqs []Request
	for i := 0; i < 6; i++ {
		reqs = append(reqs, Request{Lead: model.LeadRecord{Name: "Lead Co", State: "TX"}})
	}
	for i := 0; i < 3; i++ {
		reqs = append(reqs, Request{Lead: model.LeadRecord{Name: fmt.Sprintf("Other %d", i), State: "CA"}})
	}
	reqs = append(reqs, Request{Lead: model.LeadRecord{}})

	var items []BatchItem
	stats, err := New(dir).Batch(context.Background(), reqs, 3, func(it BatchItem) {
		items = append(items, it)
	})
	require.NoError(t, err)

	// Every completed lead stops at its first search.
	assert.Equal(t, BatchStats{Total: 10, Matched: 6, Unmatched: 3, Failed: 1, Searches: 9, Lookups: 9}, stats)
	assert.Len(t, items, 10)

	seen := make(map[int]bool)
	for _, it := range items {
		seen[it.Index] = true
		if it.Index == 9 {
			assert.Error(t, it.Err)
		}
	}
	assert.Len(t, seen, 10)
}

func TestBatch_ConfigurationAborts(t *testing.T) {
	dir := &fakeDirectory{errs: map[string]error{StrategyNameOnly: eris.Wrap(ErrConfiguration, "missing key")}}
	reqs := []Request{{Lead: model.LeadRecord{Name: "A"}}, {Lead: model.LeadRecord{Name: "B"}}}

	_, err := New(dir).Batch(context.Background(), reqs, 50, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestBatch_Empty(t *testing.T) {
	stats, err := New(&fakeDirectory{}).Batch(context.Background(), nil, 0, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestBatch_SearchesIncludeRetries(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("SearchText", mock.Anything, mock.Anything).Return(nil, transient(503)).Once()
	client.On("SearchText", mock.Anything, mock.Anything).Return(&places.SearchTextResponse{}, nil)

	reqs := []Request{{Lead: model.LeadRecord{Name: "ABC Roofing", State: "TX"}}}
	stats, err := New(newTestSearcher(t, client)).Batch(context.Background(), reqs, 1, nil)
	require.NoError(t, err)

	// Two strategies, the first retried once.
	assert.Equal(t, 1, stats.Unmatched)
	assert.Equal(t, 3, stats.Searches)
	assert.Zero(t, stats.Lookups)
}
