package filter

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pipeline"
	"github.com/rushteam/reckit-cf/pkg/log"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该候选就会被过滤掉；保留的候选维持原有顺序。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	preds []core.Prediction,
) ([]core.Prediction, error) {
	if len(n.Filters) == 0 || len(preds) == 0 {
		return preds, nil
	}

	out := make([]core.Prediction, 0, len(preds))
	for _, pred := range preds {
		filtered := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, pred)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: item %q", f.Name(), pred.ItemID)
			}
			if ok {
				filtered = true
				log.Logger().Debug("item filtered",
					zap.String("item", pred.ItemID),
					zap.String("filter", f.Name()))
				break
			}
		}
		if !filtered {
			out = append(out, pred)
		}
	}
	return out, nil
}
