package config

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/dataset"
	"github.com/rushteam/reckit-cf/pipeline"
	"github.com/rushteam/reckit-cf/pkg/log"
	"github.com/rushteam/reckit-cf/recall"
	"github.com/rushteam/reckit-cf/similarity"
	"github.com/rushteam/reckit-cf/store"
)

// LoadMatrix 按数据源配置加载评分矩阵。
func LoadMatrix(ctx context.Context, cfg DatasetConfig) (core.RatingMatrix, error) {
	switch cfg.Source {
	case SourceCritics, "":
		return dataset.Critics(), nil
	case SourceMovieLens:
		return dataset.LoadMovieLens(cfg.Dir)
	case SourceRedis:
		rs, err := store.NewRedisStore(cfg.Addr, cfg.DB)
		if err != nil {
			return nil, err
		}
		defer rs.Close()
		return dataset.NewStoreSource(rs, cfg.KeyPrefix).Load(ctx)
	default:
		return nil, errors.Errorf("unknown dataset source %q", cfg.Source)
	}
}

// Engine 按配置组装 CF 组件：评分矩阵、Ranker、两种 Recommender 以及后处理 pipeline。
type Engine struct {
	Config *Config
	Matrix core.RatingMatrix

	userMetric similarity.Metric
	itemMetric similarity.Metric
}

// NewEngine 校验配置并加载评分矩阵。
func NewEngine(ctx context.Context, cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := LoadMatrix(ctx, cfg.Dataset)
	if err != nil {
		return nil, errors.Wrap(err, "load dataset")
	}
	return NewEngineWithMatrix(cfg, m)
}

// NewEngineWithMatrix 使用已有的评分矩阵创建 Engine，忽略 Dataset 配置。
func NewEngineWithMatrix(cfg *Config, m core.RatingMatrix) (*Engine, error) {
	userMetric, err := similarity.ByName(cfg.Engine.UserMetric)
	if err != nil {
		return nil, err
	}
	itemMetric, err := similarity.ByName(cfg.Engine.ItemMetric)
	if err != nil {
		return nil, err
	}
	log.Logger().Info("engine ready",
		zap.String("source", cfg.Dataset.Source),
		zap.Int("n_entities", m.Len()),
		zap.String("user_metric", userMetric.Name()),
		zap.String("item_metric", itemMetric.Name()))
	return &Engine{
		Config:     cfg,
		Matrix:     m,
		userMetric: userMetric,
		itemMetric: itemMetric,
	}, nil
}

// Ranker 返回 TopMatches 使用的 Ranker；metric 为空时使用 engine.user_metric。
func (e *Engine) Ranker(metric string) (*recall.Ranker, error) {
	m := e.userMetric
	if metric != "" {
		var err error
		if m, err = similarity.ByName(metric); err != nil {
			return nil, err
		}
	}
	return &recall.Ranker{Metric: m, N: e.Config.Engine.TopMatches, Workers: e.Config.Engine.Workers}, nil
}

// UserBased 返回 user-based CF。TopK 交给 pipeline 截断时传 0。
func (e *Engine) UserBased() *recall.UserBasedCF {
	return &recall.UserBasedCF{Metric: e.userMetric, TopK: e.Config.Engine.TopK, Workers: e.Config.Engine.Workers}
}

// BuildItemTable 在当前矩阵上构建物品相似表。
func (e *Engine) BuildItemTable(ctx context.Context, onProgress func(done, total int)) (core.SimilarityTable, error) {
	b := &recall.ItemSimilarityBuilder{
		N:          e.Config.Engine.SimilarItems,
		Metric:     e.itemMetric,
		Workers:    e.Config.Engine.Workers,
		OnProgress: onProgress,
	}
	return b.Build(ctx, e.Matrix)
}

// ItemBased 返回基于 table 的 item-based CF。
func (e *Engine) ItemBased(table core.SimilarityTable) *recall.ItemBasedCF {
	return &recall.ItemBasedCF{Table: table, TopK: e.Config.Engine.TopK, AllowNegative: e.Config.Engine.AllowNegative}
}

// Pipeline 以 rec 为召回 Node，拼接配置中的后处理 Node。
// m 为 nil 时使用 Engine 的矩阵（转置推荐时传入转置矩阵）。
func (e *Engine) Pipeline(rec recall.Recommender, m core.RatingMatrix) (*pipeline.Pipeline, error) {
	if m == nil {
		m = e.Matrix
	}
	return e.Config.BuildPipeline(DefaultFactory(), &recall.RecallNode{Recommender: rec, Matrix: m})
}
