package core

// RecallConfig 是 CF 相关的配置接口，用于提供默认值。
type RecallConfig interface {
	// DefaultTopMatches 返回 TopMatches 默认返回的相似 entity 数
	DefaultTopMatches() int

	// DefaultSimilarItems 返回相似表中每个物品默认保留的相似物品数
	DefaultSimilarItems() int

	// DefaultUserMetric 返回 user-based 默认相似度度量名称
	DefaultUserMetric() string

	// DefaultItemMetric 返回构建物品相似表时默认的相似度度量名称
	DefaultItemMetric() string
}

// DefaultRecallConfig 是默认的配置实现。
type DefaultRecallConfig struct{}

func (c *DefaultRecallConfig) DefaultTopMatches() int {
	return 5
}

func (c *DefaultRecallConfig) DefaultSimilarItems() int {
	return 10
}

func (c *DefaultRecallConfig) DefaultUserMetric() string {
	return "pearson"
}

func (c *DefaultRecallConfig) DefaultItemMetric() string {
	return "distance"
}
