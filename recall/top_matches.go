package recall

import (
	"context"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/similarity"
)

var defaultConfig core.RecallConfig = &core.DefaultRecallConfig{}

// Ranker 找出与某个 entity 最相似的 TopN 个 entity（topMatches）。
//
// 同一个算法服务两个方向：
//   - 在原矩阵上：相似用户（u2u）
//   - 在转置矩阵上：相似物品（i2i），ItemSimilarityBuilder 即基于此
type Ranker struct {
	// Metric 相似度度量，默认 Pearson
	Metric similarity.Metric

	// N 返回的相似 entity 数量，<= 0 时使用默认值 5
	N int

	// Workers 并发计算相似度的 goroutine 数，<= 1 时顺序计算。
	// 结果按统一规则排序，与并发度无关。
	Workers int
}

func (r *Ranker) Name() string {
	return "recall.u2u"
}

func (r *Ranker) metric() similarity.Metric {
	if r.Metric == nil {
		return similarity.PearsonMetric{}
	}
	return r.Metric
}

func (r *Ranker) n() int {
	if r.N <= 0 {
		return defaultConfig.DefaultTopMatches()
	}
	return r.N
}

// TopMatches 计算 pivot 与矩阵中其他每个 entity 的相似度，按分数降序返回前 N 个。
// 结果不包含 pivot 自身；entity 不足 N 个时返回全部。pivot 不存在时返回 NOT_FOUND。
func (r *Ranker) TopMatches(ctx context.Context, m core.RatingMatrix, pivot string) ([]core.SimilarityScore, error) {
	scores, err := r.scoreAll(ctx, m, pivot)
	if err != nil {
		return nil, err
	}
	core.SortScores(scores)
	if n := r.n(); len(scores) > n {
		scores = scores[:n]
	}
	return scores, nil
}

// scoreAll 返回 pivot 与所有其他 entity 的相似度（未排序、未截断）。
func (r *Ranker) scoreAll(ctx context.Context, m core.RatingMatrix, pivot string) ([]core.SimilarityScore, error) {
	if !m.Has(pivot) {
		return nil, core.ErrEntityNotFound(pivot)
	}

	others := make([]string, 0, m.Len())
	for _, entity := range m.Entities() {
		if entity != pivot {
			others = append(others, entity)
		}
	}

	metric := r.metric()
	scores := make([]core.SimilarityScore, len(others))
	err := parallelFor(ctx, len(others), r.Workers, func(i int) error {
		sim, err := metric.Similarity(m, pivot, others[i])
		if err != nil {
			return err
		}
		scores[i] = core.SimilarityScore{ID: others[i], Score: sim}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}
