package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pkg/log"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链：Recall → Filter → ReRank。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	preds []core.Prediction,
) ([]core.Prediction, error) {
	cur := preds
	for _, node := range p.Nodes {
		start := time.Now()
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, errors.Wrapf(err, "node %s", node.Name())
		}
		log.Logger().Debug("pipeline node done",
			zap.String("node", node.Name()),
			zap.String("kind", string(node.Kind())),
			zap.Int("n_in", len(cur)),
			zap.Int("n_out", len(next)),
			zap.Duration("used_time", time.Since(start)))
		cur = next
	}
	return cur, nil
}
