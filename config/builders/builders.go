package builders

import (
	"github.com/pkg/errors"

	"github.com/rushteam/reckit-cf/config"
	"github.com/rushteam/reckit-cf/filter"
	"github.com/rushteam/reckit-cf/pipeline"
	"github.com/rushteam/reckit-cf/pkg/conv"
	"github.com/rushteam/reckit-cf/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("filter.expr", BuildExprFilterNode)
	config.Register("filter.blacklist", BuildBlacklistFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildFilterNode 构建组合过滤 Node：
//
//	type: filter
//	config:
//	  filters:
//	    - type: blacklist
//	      item_ids: [a, b]
//	    - type: expr
//	      expr: item.score >= 3.0
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, errors.New("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		f, err := buildFilter(conv.ConfigGet(filterMap, "type", ""), filterMap)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildExprFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	f, err := buildFilter("expr", cfg)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

func BuildBlacklistFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	f, err := buildFilter("blacklist", cfg)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

func buildFilter(filterType string, cfg map[string]interface{}) (filter.Filter, error) {
	switch filterType {
	case "blacklist":
		return filter.NewBlacklistFilter(conv.SliceAnyToString(cfg["item_ids"])), nil
	case "expr":
		expr := conv.ConfigGet(cfg, "expr", "")
		if expr == "" {
			return nil, errors.New("expr not found")
		}
		return filter.NewExprFilter(expr)
	default:
		return nil, errors.Errorf("unknown filter type: %s", filterType)
	}
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt(cfg, "n", 0)
	if n < 0 {
		return nil, errors.Errorf("invalid n: %d", n)
	}
	return &rerank.TopNNode{N: n}, nil
}
