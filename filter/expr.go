package filter

import (
	"context"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pkg/dsl"
)

// ExprFilter 用 CEL 表达式描述"保留条件"：表达式为 false 的候选被过滤。
//
// 例如 `item.score >= 3.0 && !item.id.startsWith("Snakes")`。
type ExprFilter struct {
	prg *dsl.Program
}

// NewExprFilter 编译表达式；编译失败立即返回错误，而不是在请求时才暴露。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{prg: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	pred core.Prediction,
) (bool, error) {
	keep, err := f.prg.Evaluate(pred, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
