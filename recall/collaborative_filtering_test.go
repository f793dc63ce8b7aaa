package recall

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/dataset"
	"github.com/rushteam/reckit-cf/similarity"
)

const cfTestEpsilon = 1e-6

func assertPredictions(t *testing.T, want, got []core.Prediction) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ItemID, got[i].ItemID, "position %d", i)
		assert.InDelta(t, want[i].Score, got[i].Score, cfTestEpsilon, "position %d", i)
	}
}

func TestUserBasedCF_Critics(t *testing.T) {
	ctx := context.Background()
	critics := dataset.Critics()

	recs, err := (&UserBasedCF{}).Recommend(ctx, critics, "Toby")
	require.NoError(t, err)
	assertPredictions(t, []core.Prediction{
		{ItemID: "The Night Listener", Score: 3.347789526},
		{ItemID: "Lady in the Water", Score: 2.832549918},
		{ItemID: "Just My Luck", Score: 2.530980703},
	}, recs)

	recs, err = (&UserBasedCF{Metric: similarity.DistanceMetric{}}).Recommend(ctx, critics, "Toby")
	require.NoError(t, err)
	assertPredictions(t, []core.Prediction{
		{ItemID: "The Night Listener", Score: 3.457128694},
		{ItemID: "Lady in the Water", Score: 2.778584003},
		{ItemID: "Just My Luck", Score: 2.422482042},
	}, recs)

	// item orientation on the transposed matrix
	recs, err = (&UserBasedCF{}).Recommend(ctx, critics.Transpose(), "Just My Luck")
	require.NoError(t, err)
	assertPredictions(t, []core.Prediction{
		{ItemID: "Michael Phillips", Score: 4},
		{ItemID: "Jack Matthews", Score: 3},
	}, recs)

	recs, err = (&UserBasedCF{TopK: 1}).Recommend(ctx, critics, "Toby")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "The Night Listener", recs[0].ItemID)
}

func TestUserBasedCF_EndToEnd(t *testing.T) {
	m := core.RatingMatrix{
		"A": {"x": 1, "y": 2, "z": 3},
		"B": {"x": 2, "y": 4, "z": 5},
		"C": {"x": 1, "y": 2},
	}
	for _, metric := range []similarity.Metric{similarity.PearsonMetric{}, similarity.DistanceMetric{}} {
		t.Run(metric.Name(), func(t *testing.T) {
			recs, err := (&UserBasedCF{Metric: metric}).Recommend(context.Background(), m, "C")
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, "z", recs[0].ItemID)
			assert.GreaterOrEqual(t, recs[0].Score, 3.0)
			assert.LessOrEqual(t, recs[0].Score, 5.0)
		})
	}
}

func TestUserBasedCF_ZeroRatingIsUnseen(t *testing.T) {
	m := core.RatingMatrix{
		"A": {"x": 1, "y": 2, "z": 3},
		"C": {"x": 1, "y": 2, "z": 0},
	}
	recs, err := (&UserBasedCF{Metric: similarity.DistanceMetric{}}).Recommend(context.Background(), m, "C")
	require.NoError(t, err)
	assertPredictions(t, []core.Prediction{{ItemID: "z", Score: 3}}, recs)
}

func TestUserBasedCF_NonPositiveSimilarityIgnored(t *testing.T) {
	m := core.RatingMatrix{
		"target":   {"a": 1, "b": 2, "c": 3},
		"opposite": {"a": 3, "b": 2, "c": 1, "d": 5},
		"flat":     {"a": 2, "b": 2, "c": 2, "d": 1},
		"alike":    {"a": 1, "b": 2, "c": 4, "d": 2},
	}
	recs, err := (&UserBasedCF{}).Recommend(context.Background(), m, "target")
	require.NoError(t, err)
	// only "alike" contributes
	assertPredictions(t, []core.Prediction{{ItemID: "d", Score: 2}}, recs)

	// nobody positively correlated
	delete(m, "alike")
	recs, err = (&UserBasedCF{}).Recommend(context.Background(), m, "target")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestUserBasedCF_WeightsArePositive(t *testing.T) {
	critics := dataset.Critics()
	for _, m := range []core.RatingMatrix{critics, critics.Transpose()} {
		for _, target := range m.Entities() {
			for _, metric := range []similarity.Metric{similarity.PearsonMetric{}, similarity.DistanceMetric{}} {
				acc, err := (&UserBasedCF{Metric: metric}).accumulate(context.Background(), m, target)
				require.NoError(t, err)
				for item, w := range acc.weight {
					assert.Greater(t, w, 0.0, "%s/%s/%s", metric.Name(), target, item)
				}
				assert.Equal(t, len(acc.total), len(acc.predictions(0)))
			}
		}
	}
}

func TestUserBasedCF_UnknownTarget(t *testing.T) {
	_, err := (&UserBasedCF{}).Recommend(context.Background(), dataset.Critics(), "Nobody")
	assert.True(t, core.IsNotFound(err))
}

func TestItemBasedCF_Critics(t *testing.T) {
	ctx := context.Background()
	critics := dataset.Critics()
	table, err := (&ItemSimilarityBuilder{}).Build(ctx, critics)
	require.NoError(t, err)

	recs, err := (&ItemBasedCF{Table: table}).Recommend(ctx, critics, "Toby")
	require.NoError(t, err)
	assertPredictions(t, []core.Prediction{
		{ItemID: "The Night Listener", Score: 3.166742523},
		{ItemID: "Just My Luck", Score: 2.936629402},
		{ItemID: "Lady in the Water", Score: 2.868767392},
	}, recs)

	// legacy weighting gives the same answer when all similarities are positive
	legacy, err := (&ItemBasedCF{Table: table, AllowNegative: true}).Recommend(ctx, critics, "Toby")
	require.NoError(t, err)
	assert.Equal(t, recs, legacy)

	_, err = (&ItemBasedCF{Table: table}).Recommend(ctx, critics, "Nobody")
	assert.True(t, core.IsNotFound(err))
}

func TestItemBasedCF_MixedSigns(t *testing.T) {
	table := core.SimilarityTable{
		"a": {{ID: "b", Score: 0.5}, {ID: "c", Score: -0.5}},
		"d": {{ID: "c", Score: 0.5}, {ID: "e", Score: -0.25}},
		"b": {{ID: "a", Score: 0.5}},
	}
	ratings := map[string]float64{"a": 4, "d": 2}

	recs, err := (&ItemBasedCF{Table: table}).RecommendFor(context.Background(), ratings)
	require.NoError(t, err)
	assertPredictions(t, []core.Prediction{
		{ItemID: "b", Score: 4},
		{ItemID: "c", Score: 2},
	}, recs)

	// negative weights cancel out for "c" and it is omitted instead of divided by zero
	recs, err = (&ItemBasedCF{Table: table, AllowNegative: true}).RecommendFor(context.Background(), ratings)
	require.NoError(t, err)
	assertPredictions(t, []core.Prediction{
		{ItemID: "b", Score: 4},
		{ItemID: "e", Score: 2},
	}, recs)
}

func TestItemBasedCF_Errors(t *testing.T) {
	_, err := (&ItemBasedCF{}).RecommendFor(context.Background(), map[string]float64{"a": 1})
	assert.True(t, core.IsInvalidInput(err))

	table := core.SimilarityTable{"a": nil}
	_, err = (&ItemBasedCF{Table: table}).RecommendFor(context.Background(), map[string]float64{"a": 1, "z": 2})
	assert.True(t, core.IsNotFound(err))

	recs, err := (&ItemBasedCF{Table: table}).RecommendFor(context.Background(), map[string]float64{"a": 1})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestAccumulator(t *testing.T) {
	acc := newAccumulator()
	acc.add("x", 4, 0.5)
	acc.add("x", 2, 0.5)
	acc.add("y", 5, 1)
	acc.add("zero", 3, 0.5)
	acc.add("zero", 3, -0.5)
	assertPredictions(t, []core.Prediction{
		{ItemID: "y", Score: 5},
		{ItemID: "x", Score: 3},
	}, acc.predictions(0))
	assert.Len(t, acc.predictions(1), 1)
}
