package recall

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/dataset"
	"github.com/rushteam/reckit-cf/similarity"
)

func TestItemSimilarityBuilder_Critics(t *testing.T) {
	critics := dataset.Critics()
	var progress [][2]int
	builder := &ItemSimilarityBuilder{
		OnProgress: func(done, total int) { progress = append(progress, [2]int{done, total}) },
	}
	table, err := builder.Build(context.Background(), critics)
	require.NoError(t, err)
	assert.Len(t, table, 6)
	assertScores(t, []core.SimilarityScore{
		{ID: "Snakes on a Plane", Score: 0.309016994},
		{ID: "The Night Listener", Score: 0.252650308},
		{ID: "Lady in the Water", Score: 0.240253073},
		{ID: "Just My Luck", Score: 0.207991596},
		{ID: "You, Me and Dupree", Score: 0.191825366},
	}, table["Superman Returns"])
	assert.Equal(t, [][2]int{{6, 6}}, progress)
}

func TestItemSimilarityBuilder_Neighbors(t *testing.T) {
	critics := dataset.Critics()
	table, err := (&ItemSimilarityBuilder{N: 2, Metric: similarity.PearsonMetric{}}).Build(context.Background(), critics)
	require.NoError(t, err)
	for item, scores := range table {
		assert.Len(t, scores, 2, item)
		for _, s := range scores {
			assert.NotEqual(t, item, s.ID)
		}
		assert.GreaterOrEqual(t, scores[0].Score, scores[1].Score)
	}
	neighbors, err := table.Neighbors("Superman Returns")
	require.NoError(t, err)
	assert.Equal(t, "You, Me and Dupree", neighbors[0].ID)
}

func syntheticMatrix(users, items int) core.RatingMatrix {
	m := core.NewRatingMatrix()
	for u := 0; u < users; u++ {
		for i := 0; i < items; i++ {
			if (u*7+i*3)%5 == 0 {
				continue
			}
			m.Set(fmt.Sprintf("u%03d", u), fmt.Sprintf("i%03d", i), float64((u+2*i)%5+1))
		}
	}
	return m
}

func TestItemSimilarityBuilder_Parallel(t *testing.T) {
	m := syntheticMatrix(40, 250)
	sequential, err := (&ItemSimilarityBuilder{N: 5}).Build(context.Background(), m)
	require.NoError(t, err)

	var calls []int
	parallel, err := (&ItemSimilarityBuilder{
		N:          5,
		Workers:    8,
		OnProgress: func(done, total int) { calls = append(calls, done) },
	}).Build(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
	assert.Equal(t, []int{100, 200, 250}, calls)
}

func TestItemSimilarityBuilder_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&ItemSimilarityBuilder{Workers: 2}).Build(ctx, dataset.Critics())
	assert.ErrorIs(t, err, context.Canceled)
}
