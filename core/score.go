package core

import "sort"

// SimilarityScore 是 (相似度, 对端 ID) 二元组，TopMatches 与相似表共用。
type SimilarityScore struct {
	ID    string  `json:"id" yaml:"id"`
	Score float64 `json:"score" yaml:"score"`
}

// Prediction 是推荐结果：预测评分 + 物品 ID。
type Prediction struct {
	ItemID string  `json:"item_id" yaml:"item_id"`
	Score  float64 `json:"score" yaml:"score"`
}

// ranksBefore 定义统一的排序规则：分数降序，分数相同时 ID 降序。
// 次序只用于保证结果稳定，没有业务含义。
func ranksBefore(scoreA float64, idA string, scoreB float64, idB string) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	return idA > idB
}

// SortScores 原地排序 SimilarityScore。
func SortScores(scores []SimilarityScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return ranksBefore(scores[i].Score, scores[i].ID, scores[j].Score, scores[j].ID)
	})
}

// SortPredictions 原地排序 Prediction，规则同 SortScores。
func SortPredictions(preds []Prediction) {
	sort.SliceStable(preds, func(i, j int) bool {
		return ranksBefore(preds[i].Score, preds[i].ItemID, preds[j].Score, preds[j].ItemID)
	})
}

// SimilarityTable 是预计算的物品相似表：item → 按分数降序的至多 N 个相似物品。
// 构建后只读，可被多次推荐请求复用。
type SimilarityTable map[string][]SimilarityScore

// Neighbors 返回 item 的相似物品列表；缺失时返回 NOT_FOUND。
func (t SimilarityTable) Neighbors(item string) ([]SimilarityScore, error) {
	scores, ok := t[item]
	if !ok {
		return nil, ErrItemNotFound(item)
	}
	return scores, nil
}
