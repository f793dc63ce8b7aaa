// Package reckit 是一个协同过滤推荐工具包（reckit-cf）。
//
// 设计要点：
// - Matrix-first: 所有算法都作用于 entity → item 的稀疏评分矩阵，转置即可切换用户/物品视角
// - Metric 可插拔: Distance / Pearson 实现同一 similarity.Metric 接口
// - Pipeline 后处理: CF 召回结果经 Filter（CEL 表达式、黑名单）与 ReRank（TopN）串联输出
package reckit

import (
	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pipeline"
	"github.com/rushteam/reckit-cf/recall"
)

// 轻量 facade：便于用户直接 import "reckit" 使用核心抽象。
type (
	RatingMatrix    = core.RatingMatrix
	SimilarityScore = core.SimilarityScore
	Prediction      = core.Prediction
	SimilarityTable = core.SimilarityTable

	Pipeline = pipeline.Pipeline
	Node     = pipeline.Node
	Kind     = pipeline.Kind

	Ranker                = recall.Ranker
	UserBasedCF           = recall.UserBasedCF
	ItemBasedCF           = recall.ItemBasedCF
	ItemSimilarityBuilder = recall.ItemSimilarityBuilder
)

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
