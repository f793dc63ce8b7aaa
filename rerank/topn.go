package rerank

import (
	"context"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，在过滤之后截取前 N 个候选。
// 过滤会移除候选，所以召回阶段通常取全量（TopK <= 0），由这里统一截断。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.RecallNode{...},  // 召回
//	        &filter.FilterNode{...},  // 过滤
//	        &rerank.TopNNode{N: 10},  // 截取 Top 10
//	    },
//	}
type TopNNode struct {
	// N 要保留的数量，<= 0 时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	preds []core.Prediction,
) ([]core.Prediction, error) {
	if n.N <= 0 || len(preds) <= n.N {
		return preds, nil
	}
	return preds[:n.N], nil
}
