package dataset

import (
	"context"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pkg/log"
)

// StoreSource 从 core.KeyValueStore（Memory/Redis）读写评分矩阵。
//
// Key 布局：
//   - entity 列表：{KeyPrefix}:entities（JSON 数组）
//   - entity 评分：{KeyPrefix}:entity:{entityID}（Hash，field 为 item，value 为评分）
type StoreSource struct {
	store     core.KeyValueStore
	KeyPrefix string
}

// NewStoreSource 创建一个基于 core.KeyValueStore 的评分数据源。
func NewStoreSource(s core.KeyValueStore, keyPrefix string) *StoreSource {
	if keyPrefix == "" {
		keyPrefix = "cf"
	}
	return &StoreSource{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (s *StoreSource) entitiesKey() string {
	return s.KeyPrefix + ":entities"
}

func (s *StoreSource) entityKey(entity string) string {
	return s.KeyPrefix + ":entity:" + entity
}

// Save 把矩阵写入 Store，覆盖同名 entity 已有的评分。
func (s *StoreSource) Save(ctx context.Context, m core.RatingMatrix) error {
	entities := m.Entities()
	for _, entity := range entities {
		key := s.entityKey(entity)
		if err := s.store.Delete(ctx, key); err != nil {
			return errors.Wrapf(err, "delete %s", key)
		}
		for item, rating := range m[entity] {
			value := []byte(strconv.FormatFloat(rating, 'g', -1, 64))
			if err := s.store.HSet(ctx, key, item, value); err != nil {
				return errors.Wrapf(err, "hset %s", key)
			}
		}
	}

	data, err := json.Marshal(entities)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := s.store.Set(ctx, s.entitiesKey(), data); err != nil {
		return errors.Wrapf(err, "set %s", s.entitiesKey())
	}
	log.Logger().Debug("save rating matrix",
		zap.String("store", s.store.Name()),
		zap.Int("n_entities", len(entities)))
	return nil
}

// Load 从 Store 读取完整的评分矩阵。entity 列表不存在时返回空矩阵。
func (s *StoreSource) Load(ctx context.Context) (core.RatingMatrix, error) {
	m := core.NewRatingMatrix()
	data, err := s.store.Get(ctx, s.entitiesKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return m, nil
		}
		return nil, errors.Wrapf(err, "get %s", s.entitiesKey())
	}

	var entities []string
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.entitiesKey())
	}

	for _, entity := range entities {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := s.entityKey(entity)
		fields, err := s.store.HGetAll(ctx, key)
		if err != nil {
			return nil, errors.Wrapf(err, "hgetall %s", key)
		}
		row := make(map[string]float64, len(fields))
		for item, raw := range fields {
			rating, err := strconv.ParseFloat(string(raw), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parse rating %s/%s", key, item)
			}
			row[item] = rating
		}
		m[entity] = row
	}
	log.Logger().Debug("load rating matrix",
		zap.String("store", s.store.Name()),
		zap.Int("n_entities", m.Len()))
	return m, nil
}
