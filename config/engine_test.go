package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/reckit-cf/config"
	_ "github.com/rushteam/reckit-cf/config/builders"
	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/dataset"
	"github.com/rushteam/reckit-cf/pipeline"
	"github.com/rushteam/reckit-cf/store"
)

func TestEngine(t *testing.T) {
	ctx := context.Background()
	eng, err := config.NewEngine(ctx, config.Default())
	require.NoError(t, err)

	ranker, err := eng.Ranker("")
	require.NoError(t, err)
	matches, err := ranker.TopMatches(ctx, eng.Matrix, "Toby")
	require.NoError(t, err)
	require.Len(t, matches, 5)
	assert.Equal(t, "Lisa Rose", matches[0].ID)
	assert.InDelta(t, 0.99124, matches[0].Score, 1e-5)

	_, err = eng.Ranker("cosine")
	assert.Error(t, err)

	recs, err := eng.UserBased().Recommend(ctx, eng.Matrix, "Toby")
	require.NoError(t, err)
	assert.Equal(t, "The Night Listener", recs[0].ItemID)

	table, err := eng.BuildItemTable(ctx, nil)
	require.NoError(t, err)
	recs, err = eng.ItemBased(table).Recommend(ctx, eng.Matrix, "Toby")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.InDelta(t, 3.166742523, recs[0].Score, 1e-6)
}

func TestEnginePipeline(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "filter.blacklist", Config: map[string]interface{}{"item_ids": []interface{}{"The Night Listener"}}},
		{Type: "filter.expr", Config: map[string]interface{}{"expr": "item.score >= 2.6"}},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 1}},
	}
	require.NoError(t, cfg.Validate())

	eng, err := config.NewEngineWithMatrix(cfg, dataset.Critics())
	require.NoError(t, err)
	p, err := eng.Pipeline(eng.UserBased(), nil)
	require.NoError(t, err)
	require.Len(t, p.Nodes, 4)

	recs, err := p.Run(context.Background(), &core.RecommendContext{Target: "Toby"}, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Lady in the Water", recs[0].ItemID)

	// item orientation
	p, err = eng.Pipeline(eng.UserBased(), eng.Matrix.Transpose())
	require.NoError(t, err)
	recs, err = p.Run(context.Background(), &core.RecommendContext{Target: "Just My Luck"}, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Michael Phillips", recs[0].ItemID)
}

func TestEngineRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rs, err := store.NewRedisStore(addr, 0)
	require.NoError(t, err)
	defer rs.Close()
	require.NoError(t, dataset.NewStoreSource(rs, "cf-engine-test").Save(ctx, dataset.Critics()))

	cfg := config.Default()
	cfg.Dataset = config.DatasetConfig{Source: config.SourceRedis, Addr: addr, KeyPrefix: "cf-engine-test"}
	eng, err := config.NewEngine(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, eng.Matrix.Equal(dataset.Critics()))
}
