package dsl

import (
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"

	"github.com/rushteam/reckit-cf/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境，定义变量
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.MapType(cel.StringType, cel.DynType)),
			cel.Variable("rctx", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的布尔表达式，使用 CEL (Common Expression Language) 实现。
// 编译一次后可并发地多次 Evaluate。
//
// 可用变量：
//   - item.id / item.score：候选物品 ID 与预测分
//   - rctx.target / rctx.scene / rctx.params：请求上下文
//
// 示例：
//   - `item.score >= 3.0`
//   - `!item.id.startsWith("Snakes")`
//   - `item.score > double(rctx.params.min_score)`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式；表达式必须返回 bool。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, errors.Wrap(err, "init cel env")
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrapf(issues.Err(), "compile %q", expr)
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, errors.Errorf("expression %q must return bool, got %s", expr, out)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, errors.Wrapf(err, "program %q", expr)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// Evaluate 对一个候选执行表达式。
func (p *Program) Evaluate(pred core.Prediction, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(pred, rctx))
	if err != nil {
		return false, errors.Wrapf(err, "eval %q", p.expr)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, errors.Errorf("expression %q must return bool, got %T", p.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(pred core.Prediction, rctx *core.RecommendContext) map[string]interface{} {
	ctxMap := map[string]interface{}{
		"target": "",
		"scene":  "",
		"params": map[string]interface{}{},
	}
	if rctx != nil {
		ctxMap["target"] = rctx.Target
		ctxMap["scene"] = rctx.Scene
		if rctx.Params != nil {
			ctxMap["params"] = rctx.Params
		}
	}
	return map[string]interface{}{
		"item": map[string]interface{}{
			"id":    pred.ItemID,
			"score": pred.Score,
		},
		"rctx": ctxMap,
	}
}
