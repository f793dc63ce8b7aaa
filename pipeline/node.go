package pipeline

import (
	"context"

	"github.com/rushteam/reckit-cf/core"
)

// Kind 用于标记 Node 类型，方便观测/编排。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：CF 生成带预测分的候选
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合约束的候选
	KindReRank Kind = "rerank" // 重排阶段：截断等结果调整
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 predictions -> 输出 predictions"的形态。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		preds []core.Prediction,
	) ([]core.Prediction, error)
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(map[string]interface{}) (Node, error)
