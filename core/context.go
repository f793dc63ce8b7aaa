package core

// RecommendContext 承载一次推荐请求的目标与场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// Target 推荐目标 entity（user-based 为用户；转置后为物品）
	Target string

	Scene string

	// Params 请求级参数，可在 filter 表达式中通过 rctx.params 访问
	Params map[string]any
}
