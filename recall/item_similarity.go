package recall

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pkg/log"
	"github.com/rushteam/reckit-cf/similarity"
)

const progressInterval = 100

// ItemSimilarityBuilder 预计算物品相似表（item → TopN 相似物品）。
//
// 先转置评分矩阵，再对每个物品在转置矩阵上执行 Ranker.TopMatches。
// 最坏 O(items²)，适合离线/启动时执行一次；之后 ItemBasedCF 的每次
// 请求只需查表。相似表只在内存中，不做持久化。
type ItemSimilarityBuilder struct {
	// N 每个物品保留的相似物品数量，<= 0 时使用默认值 10
	N int

	// Metric 相似度度量，默认 Distance（稀疏的共同评分用户下比 Pearson 更稳定）
	Metric similarity.Metric

	// Workers 按物品并发的 goroutine 数，<= 1 时顺序计算
	Workers int

	// OnProgress 每完成 100 个物品及全部完成时回调，串行调用
	OnProgress func(done, total int)
}

func (b *ItemSimilarityBuilder) metric() similarity.Metric {
	if b.Metric == nil {
		return similarity.DistanceMetric{}
	}
	return b.Metric
}

func (b *ItemSimilarityBuilder) n() int {
	if b.N <= 0 {
		return defaultConfig.DefaultSimilarItems()
	}
	return b.N
}

// Build 基于 entity → item 评分矩阵构建物品相似表。
func (b *ItemSimilarityBuilder) Build(ctx context.Context, m core.RatingMatrix) (core.SimilarityTable, error) {
	start := time.Now()
	itemPrefs := m.Transpose()
	items := itemPrefs.Entities()
	ranker := &Ranker{Metric: b.metric(), N: b.n()}
	log.Logger().Debug("start building item similarity table",
		zap.Int("n_items", len(items)),
		zap.Int("n_neighbors", ranker.N),
		zap.String("metric", ranker.Metric.Name()))

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		if done%progressInterval != 0 && done != len(items) {
			return
		}
		log.Logger().Debug("building item similarity table",
			zap.Int("done", done), zap.Int("total", len(items)))
		if b.OnProgress != nil {
			b.OnProgress(done, len(items))
		}
	}

	neighbors := make([][]core.SimilarityScore, len(items))
	err := parallelFor(ctx, len(items), b.Workers, func(i int) error {
		scores, err := ranker.TopMatches(ctx, itemPrefs, items[i])
		if err != nil {
			return err
		}
		neighbors[i] = scores
		report()
		return nil
	})
	if err != nil {
		return nil, err
	}

	table := make(core.SimilarityTable, len(items))
	for i, item := range items {
		table[item] = neighbors[i]
	}
	log.Logger().Debug("complete building item similarity table",
		zap.Int("n_items", len(items)),
		zap.Duration("used_time", time.Since(start)))
	return table, nil
}
