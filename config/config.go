package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pipeline"
	"github.com/rushteam/reckit-cf/similarity"
)

// 数据源类型
const (
	SourceCritics   = "critics"
	SourceMovieLens = "movielens"
	SourceRedis     = "redis"
)

// Config 是 reckit-cf 的完整配置：引擎参数、数据源以及后处理 pipeline。
//
//	engine:
//	  user_metric: pearson
//	  item_metric: distance
//	  top_matches: 5
//	  similar_items: 10
//	  workers: 4
//	dataset:
//	  source: movielens
//	  dir: ./ml-latest-small
//	pipeline:
//	  name: default
//	  nodes:
//	    - type: filter.expr
//	      config:
//	        expr: item.score >= 3.0
//	    - type: rerank.topn
//	      config:
//	        n: 10
type Config struct {
	Engine          EngineConfig  `yaml:"engine" json:"engine"`
	Dataset         DatasetConfig `yaml:"dataset" json:"dataset"`
	pipeline.Config `yaml:",inline"`
}

// EngineConfig 是 CF 计算相关的参数。
type EngineConfig struct {
	UserMetric    string `yaml:"user_metric" json:"user_metric"`
	ItemMetric    string `yaml:"item_metric" json:"item_metric"`
	TopMatches    int    `yaml:"top_matches" json:"top_matches"`
	SimilarItems  int    `yaml:"similar_items" json:"similar_items"`
	TopK          int    `yaml:"top_k" json:"top_k"`
	Workers       int    `yaml:"workers" json:"workers"`
	AllowNegative bool   `yaml:"allow_negative" json:"allow_negative"`
}

// DatasetConfig 描述评分矩阵从哪里来。
type DatasetConfig struct {
	Source    string `yaml:"source" json:"source"`         // critics / movielens / redis
	Dir       string `yaml:"dir" json:"dir"`               // movielens 目录
	Addr      string `yaml:"addr" json:"addr"`             // redis 地址
	DB        int    `yaml:"db" json:"db"`                 // redis db
	KeyPrefix string `yaml:"key_prefix" json:"key_prefix"` // redis key 前缀
}

// Default 返回全部取默认值的配置：critics 数据集、Pearson/Distance。
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// Load 根据扩展名（.yaml/.yml/.json）加载配置，并填充默认值、校验。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "parse yaml")
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "parse json")
		}
	default:
		return nil, errors.Errorf("unsupported config format %q", ext)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults 用 core.DefaultRecallConfig 填充未设置的字段。
func (c *Config) SetDefaults() {
	var defaults core.RecallConfig = &core.DefaultRecallConfig{}
	if c.Engine.UserMetric == "" {
		c.Engine.UserMetric = defaults.DefaultUserMetric()
	}
	if c.Engine.ItemMetric == "" {
		c.Engine.ItemMetric = defaults.DefaultItemMetric()
	}
	if c.Engine.TopMatches <= 0 {
		c.Engine.TopMatches = defaults.DefaultTopMatches()
	}
	if c.Engine.SimilarItems <= 0 {
		c.Engine.SimilarItems = defaults.DefaultSimilarItems()
	}
	if c.Dataset.Source == "" {
		c.Dataset.Source = SourceCritics
	}
	if c.Dataset.Source == SourceRedis && c.Dataset.KeyPrefix == "" {
		c.Dataset.KeyPrefix = "cf"
	}
}

// Validate 校验度量名称、数据源以及 pipeline 中的 node 类型。
func (c *Config) Validate() error {
	if _, err := similarity.ByName(c.Engine.UserMetric); err != nil {
		return errors.Wrap(err, "engine.user_metric")
	}
	if _, err := similarity.ByName(c.Engine.ItemMetric); err != nil {
		return errors.Wrap(err, "engine.item_metric")
	}
	switch c.Dataset.Source {
	case SourceCritics:
	case SourceMovieLens:
		if c.Dataset.Dir == "" {
			return errors.New("dataset.dir is required for movielens")
		}
	case SourceRedis:
		if c.Dataset.Addr == "" {
			return errors.New("dataset.addr is required for redis")
		}
	default:
		return errors.Errorf("unknown dataset source %q", c.Dataset.Source)
	}
	return ValidatePipelineConfig(&c.Config)
}
