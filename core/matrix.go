package core

import "sort"

// RatingMatrix 是稀疏评分矩阵：entity → item → rating。
//
// user-based 时 entity 是用户、item 是物品；Transpose 之后角色互换，
// 同一套算法即可用于 item-based。
//
// 约定：
//   - 缺失的 key 表示"未评分"，与评分为 0 不同，读取请用 Rating
//   - 引擎只读，不会修改调用方传入的矩阵
type RatingMatrix map[string]map[string]float64

// NewRatingMatrix 创建一个空矩阵。
func NewRatingMatrix() RatingMatrix {
	return make(RatingMatrix)
}

// Set 写入一条评分，供 loader 构建矩阵使用。
func (m RatingMatrix) Set(entity, item string, rating float64) {
	row, ok := m[entity]
	if !ok {
		row = make(map[string]float64)
		m[entity] = row
	}
	row[item] = rating
}

// Rating 返回 entity 对 item 的评分；第二个返回值区分"未评分"与"评分为 0"。
func (m RatingMatrix) Rating(entity, item string) (float64, bool) {
	row, ok := m[entity]
	if !ok {
		return 0, false
	}
	r, ok := row[item]
	return r, ok
}

// Has 判断 entity 是否存在。
func (m RatingMatrix) Has(entity string) bool {
	_, ok := m[entity]
	return ok
}

// Row 返回 entity 的评分行；未知 entity 返回 NOT_FOUND。
// 返回的 map 与矩阵共享，调用方不得修改。
func (m RatingMatrix) Row(entity string) (map[string]float64, error) {
	row, ok := m[entity]
	if !ok {
		return nil, ErrEntityNotFound(entity)
	}
	return row, nil
}

// Entities 返回排序后的 entity 列表。
func (m RatingMatrix) Entities() []string {
	out := make([]string, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Len 返回 entity 数量。
func (m RatingMatrix) Len() int { return len(m) }

// Transpose 返回 entity 与 item 互换后的新矩阵：T[item][entity] = M[entity][item]。
// 纯函数，结果与输入不共享任何 map。没有任何评分的 entity 不会出现在结果中。
func (m RatingMatrix) Transpose() RatingMatrix {
	out := make(RatingMatrix)
	for entity, row := range m {
		for item, rating := range row {
			out.Set(item, entity, rating)
		}
	}
	return out
}

// Clone 深拷贝。
func (m RatingMatrix) Clone() RatingMatrix {
	out := make(RatingMatrix, len(m))
	for entity, row := range m {
		cp := make(map[string]float64, len(row))
		for item, rating := range row {
			cp[item] = rating
		}
		out[entity] = cp
	}
	return out
}

// Equal 判断两个矩阵的 key 与评分完全一致。
func (m RatingMatrix) Equal(other RatingMatrix) bool {
	if len(m) != len(other) {
		return false
	}
	for entity, row := range m {
		otherRow, ok := other[entity]
		if !ok || len(row) != len(otherRow) {
			return false
		}
		for item, rating := range row {
			r, ok := otherRow[item]
			if !ok || r != rating {
				return false
			}
		}
	}
	return true
}
