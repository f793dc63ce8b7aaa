package recall

import (
	"context"
	"sort"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/similarity"
)

// Recommender 是两种 CF 推荐方式的统一抽象，供 pipeline / cmd 使用。
type Recommender interface {
	Name() string
	Recommend(ctx context.Context, m core.RatingMatrix, target string) ([]core.Prediction, error)
}

// UserBasedCF 是基于用户的协同过滤（User-based Collaborative Filtering, User-CF）。
//
// 核心思想："兴趣相似的用户，喜欢相似的物品"
//
// 算法流程：
//  1. 计算目标 entity 与其他每个 entity 的相似度 sim
//  2. 跳过 sim <= 0 的 entity（负相关不参与加权，也不进入分母）
//  3. 对目标未评分（或评分为 0）的物品累加 total += rating * sim，weight += sim
//  4. 预测分 = total / weight，按分数降序
//
// 由于只累加正相似度，结果中每个物品的 weight 都严格大于 0。
// 在转置矩阵上调用即得到"物品视角"的推荐（为物品推荐潜在用户）。
type UserBasedCF struct {
	// Metric 相似度度量，默认 Pearson
	Metric similarity.Metric

	// TopK 最终返回的物品数量，<= 0 时返回全部
	TopK int

	// Workers 并发计算相似度的 goroutine 数
	Workers int
}

func (r *UserBasedCF) Name() string {
	return "recall.u2i" // u2i (User-to-Item)
}

func (r *UserBasedCF) Recommend(ctx context.Context, m core.RatingMatrix, target string) ([]core.Prediction, error) {
	acc, err := r.accumulate(ctx, m, target)
	if err != nil {
		return nil, err
	}
	return acc.predictions(r.TopK), nil
}

func (r *UserBasedCF) accumulate(ctx context.Context, m core.RatingMatrix, target string) (*accumulator, error) {
	ranker := &Ranker{Metric: r.Metric, Workers: r.Workers}
	scores, err := ranker.scoreAll(ctx, m, target)
	if err != nil {
		return nil, err
	}

	seen := m[target]
	acc := newAccumulator()
	// scoreAll 按 entity 排序返回，累加顺序固定
	for _, s := range scores {
		if s.Score <= 0 {
			continue
		}
		for item, rating := range m[s.ID] {
			// 评分为 0 视为"未看过"
			if v, ok := seen[item]; ok && v != 0 {
				continue
			}
			acc.add(item, rating, s.Score)
		}
	}
	return acc, nil
}

// ItemBasedCF 是基于物品的协同过滤（Item-based Collaborative Filtering, Item-CF）。
//
// 核心思想："被同一批用户喜欢的物品，相互相似"
//
// 依赖离线预计算的 core.SimilarityTable（见 ItemSimilarityBuilder），
// 在线只需 O(已评分物品数 × N)：
//  1. 遍历目标已评分的物品 item 及评分 rating
//  2. 遍历 item 的相似物品 candidate（目标已评分的跳过）
//  3. score += sim * rating，weight += sim
//  4. 预测分 = score / weight
//
// 相似度符号策略与 UserBasedCF 一致：默认忽略 sim <= 0。
// AllowNegative 为 true 时负相似度也参与加权；此时正负可能抵消导致
// weight 恰好为 0，这样的候选物品会被丢弃而不是做除法。
type ItemBasedCF struct {
	// Table 预计算的物品相似表
	Table core.SimilarityTable

	// TopK 最终返回的物品数量，<= 0 时返回全部
	TopK int

	// AllowNegative 让负相似度参与加权
	AllowNegative bool
}

func (r *ItemBasedCF) Name() string {
	return "recall.i2i" // i2i (Item-to-Item)
}

func (r *ItemBasedCF) Recommend(ctx context.Context, m core.RatingMatrix, target string) ([]core.Prediction, error) {
	ratings, err := m.Row(target)
	if err != nil {
		return nil, err
	}
	return r.RecommendFor(ctx, ratings)
}

// RecommendFor 直接基于目标的评分行推荐，无需完整矩阵。
// 评分行中的物品必须都在相似表中，否则返回 NOT_FOUND。
func (r *ItemBasedCF) RecommendFor(ctx context.Context, ratings map[string]float64) ([]core.Prediction, error) {
	acc, err := r.accumulate(ctx, ratings)
	if err != nil {
		return nil, err
	}
	return acc.predictions(r.TopK), nil
}

func (r *ItemBasedCF) accumulate(ctx context.Context, ratings map[string]float64) (*accumulator, error) {
	if r.Table == nil {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeInvalidInput, "recall: item similarity table is nil")
	}

	rated := make([]string, 0, len(ratings))
	for item := range ratings {
		rated = append(rated, item)
	}
	sort.Strings(rated)

	acc := newAccumulator()
	for _, item := range rated {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		neighbors, err := r.Table.Neighbors(item)
		if err != nil {
			return nil, err
		}
		rating := ratings[item]
		for _, n := range neighbors {
			if _, ok := ratings[n.ID]; ok {
				continue
			}
			if n.Score <= 0 && !r.AllowNegative {
				continue
			}
			acc.add(n.ID, rating, n.Score)
		}
	}
	return acc, nil
}

// U2IRecall 是 UserBasedCF 的类型别名，提供更符合工业习惯的命名。
type U2IRecall = UserBasedCF

// I2IRecall 是 ItemBasedCF 的类型别名，提供更符合工业习惯的命名。
type I2IRecall = ItemBasedCF

var (
	_ Recommender = (*UserBasedCF)(nil)
	_ Recommender = (*ItemBasedCF)(nil)
)

// accumulator 是加权平均的累加器：total[item] = Σ rating*sim，weight[item] = Σ sim。
type accumulator struct {
	total  map[string]float64
	weight map[string]float64
}

func newAccumulator() *accumulator {
	return &accumulator{
		total:  make(map[string]float64),
		weight: make(map[string]float64),
	}
}

func (a *accumulator) add(item string, rating, sim float64) {
	a.total[item] += rating * sim
	a.weight[item] += sim
}

// predictions 归一化并排序；weight 为 0 的物品被丢弃。
func (a *accumulator) predictions(topK int) []core.Prediction {
	out := make([]core.Prediction, 0, len(a.total))
	for item, total := range a.total {
		w := a.weight[item]
		if w == 0 {
			continue
		}
		out = append(out, core.Prediction{ItemID: item, Score: total / w})
	}
	core.SortPredictions(out)
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}
