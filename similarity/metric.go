// Package similarity 提供两个 entity 评分行之间的相似度度量。
//
// 两种度量都只看共同评分的 item（shared items）：
//   - Distance：基于欧氏距离，1/(1+sqrt(Σdiff²))，范围 (0, 1]
//   - Pearson：皮尔逊相关系数，范围 [-1, 1]
//
// 没有共同 item 时两者都返回 0，表示"无可度量的相似度"，不是错误。
package similarity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rushteam/reckit-cf/core"
)

// Metric 是相似度度量的抽象，由调用方显式选择实现。
type Metric interface {
	// Name 返回度量名称（用于配置与日志）
	Name() string

	// Similarity 计算矩阵中 entity a 与 b 的相似度；未知 entity 返回 NOT_FOUND
	Similarity(m core.RatingMatrix, a, b string) (float64, error)
}

const (
	NameDistance = "distance"
	NamePearson  = "pearson"
)

// DistanceMetric 是基于欧氏距离的相似度。
type DistanceMetric struct{}

func (DistanceMetric) Name() string { return NameDistance }

func (DistanceMetric) Similarity(m core.RatingMatrix, a, b string) (float64, error) {
	x, y, err := rows(m, a, b)
	if err != nil {
		return 0, err
	}
	return Distance(x, y), nil
}

// PearsonMetric 是皮尔逊相关系数。
type PearsonMetric struct{}

func (PearsonMetric) Name() string { return NamePearson }

func (PearsonMetric) Similarity(m core.RatingMatrix, a, b string) (float64, error) {
	x, y, err := rows(m, a, b)
	if err != nil {
		return 0, err
	}
	return Pearson(x, y), nil
}

var (
	_ Metric = DistanceMetric{}
	_ Metric = PearsonMetric{}
)

// ByName 按名称解析度量，供配置驱动使用。
func ByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameDistance, "euclidean":
		return DistanceMetric{}, nil
	case NamePearson:
		return PearsonMetric{}, nil
	default:
		return nil, core.NewDomainError(core.ModuleSimilarity, core.ErrorCodeInvalidInput,
			fmt.Sprintf("similarity: unknown metric %q (supported: %s, %s)", name, NameDistance, NamePearson))
	}
}

func rows(m core.RatingMatrix, a, b string) (map[string]float64, map[string]float64, error) {
	x, err := m.Row(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := m.Row(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// sharedItems 返回两行共同评分的 item，按字典序排列，保证浮点累加顺序固定。
func sharedItems(x, y map[string]float64) []string {
	if len(y) < len(x) {
		x, y = y, x
	}
	shared := make([]string, 0, len(x))
	for item := range x {
		if _, ok := y[item]; ok {
			shared = append(shared, item)
		}
	}
	sort.Strings(shared)
	return shared
}

// Distance 计算两个评分行的欧氏距离相似度。
func Distance(x, y map[string]float64) float64 {
	shared := sharedItems(x, y)
	if len(shared) == 0 {
		return 0
	}
	var sumSquares float64
	for _, item := range shared {
		d := x[item] - y[item]
		sumSquares += d * d
	}
	return 1 / (1 + math.Sqrt(sumSquares))
}

// Pearson 计算两个评分行在共同 item 上的皮尔逊相关系数。
// 任一方在共同 item 上评分恒定（方差为 0）时分母为 0，返回 0。
func Pearson(x, y map[string]float64) float64 {
	shared := sharedItems(x, y)
	if len(shared) == 0 {
		return 0
	}

	var sum1, sum2, sum1Sq, sum2Sq, pSum float64
	for _, item := range shared {
		r1, r2 := x[item], y[item]
		sum1 += r1
		sum2 += r2
		sum1Sq += r1 * r1
		sum2Sq += r2 * r2
		pSum += r1 * r2
	}
	n := float64(len(shared))

	num := pSum - sum1*sum2/n
	// 舍入误差可能让方差出现极小的负数，按 0 处理
	var1 := sum1Sq - sum1*sum1/n
	var2 := sum2Sq - sum2*sum2/n
	if var1 <= 0 || var2 <= 0 {
		return 0
	}
	den := math.Sqrt(var1 * var2)
	if den == 0 {
		return 0
	}
	r := num / den
	return math.Max(-1, math.Min(1, r))
}
