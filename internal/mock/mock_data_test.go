package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bughtuch/tennis-trader-ai/internal/ticks"
)

func TestQuoteFeed_QuotesAreOnLadder(t *testing.T) {
	feed := NewQuoteFeed(1.54, 7)
	for i := 0; i < 500; i++ {
		q := feed.Next()
		assert.True(t, ticks.IsValid(q.Back), "back %v", q.Back)
		assert.True(t, ticks.IsValid(q.Lay), "lay %v", q.Lay)
		assert.Equal(t, ticks.MoveByTicks(q.Back, 1), q.Lay)
		assert.Less(t, q.Back, q.Lay)
	}
}

func TestQuoteFeed_Deterministic(t *testing.T) {
	a := NewQuoteFeed(2.5, 42)
	b := NewQuoteFeed(2.5, 42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestQuoteFeed_StartSnapsAndClamps(t *testing.T) {
	assert.Equal(t, 2.02, NewQuoteFeed(2.019, 1).Current().Back)
	top := NewQuoteFeed(5000, 1).Current()
	assert.Equal(t, 990.0, top.Back)
	assert.Equal(t, 1000.0, top.Lay)
	bottom := NewQuoteFeed(0.2, 1).Current()
	assert.Equal(t, 1.01, bottom.Back)
	assert.Equal(t, 1.02, bottom.Lay)
}

func TestQuoteFeed_Runner(t *testing.T) {
	feed := NewQuoteFeed(3.0, 3)
	r := feed.Runner("Player A", 47972)
	require.Len(t, r.AvailableToBack, ladderDepth)
	require.Len(t, r.AvailableToLay, ladderDepth)

	q, ok := r.BestQuote()
	require.True(t, ok)
	assert.Equal(t, feed.Current(), q)
	assert.Equal(t, 2.98, r.AvailableToBack[1].Price)
	assert.Equal(t, 3.1, r.AvailableToLay[1].Price)
	for _, lvl := range append(r.AvailableToBack, r.AvailableToLay...) {
		assert.GreaterOrEqual(t, lvl.Size, 2.0)
	}
}
