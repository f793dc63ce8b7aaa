package recall

import (
	"context"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pipeline"
)

// RecallNode 把 Recommender 接入 Pipeline，作为第一个 Node 产生候选。
// 输入的 predictions 被忽略，目标取自 rctx.Target。
type RecallNode struct {
	Recommender Recommender
	Matrix      core.RatingMatrix
}

func (n *RecallNode) Name() string {
	return n.Recommender.Name()
}

func (n *RecallNode) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

func (n *RecallNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []core.Prediction,
) ([]core.Prediction, error) {
	if rctx == nil || rctx.Target == "" {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeInvalidInput, "recall: empty target")
	}
	return n.Recommender.Recommend(ctx, n.Matrix, rctx.Target)
}

var _ pipeline.Node = (*RecallNode)(nil)
