// Package dataset 负责把外部评分数据装载成 core.RatingMatrix。
//
// 引擎本身只认 RatingMatrix，数据从哪里来（内置样例、MovieLens CSV、
// Store 中的 Hash）由这里的 loader 决定。
package dataset

import "github.com/rushteam/reckit-cf/core"

// Critics 返回内置的影评人样例数据：7 位影评人对 6 部电影的评分。
// 每次调用返回新的副本，调用方可以随意修改。
func Critics() core.RatingMatrix {
	return core.RatingMatrix{
		"Lisa Rose": {
			"Lady in the Water": 2.5, "Snakes on a Plane": 3.5, "Just My Luck": 3.0,
			"Superman Returns": 3.5, "You, Me and Dupree": 2.5, "The Night Listener": 3.0,
		},
		"Gene Seymour": {
			"Lady in the Water": 3.0, "Snakes on a Plane": 3.5, "Just My Luck": 1.5,
			"Superman Returns": 5.0, "The Night Listener": 3.0, "You, Me and Dupree": 3.5,
		},
		"Michael Phillips": {
			"Lady in the Water": 2.5, "Snakes on a Plane": 3.0,
			"Superman Returns": 3.5, "The Night Listener": 4.0,
		},
		"Claudia Puig": {
			"Snakes on a Plane": 3.5, "Just My Luck": 3.0, "The Night Listener": 4.5,
			"Superman Returns": 4.0, "You, Me and Dupree": 2.5,
		},
		"Mick LaSalle": {
			"Lady in the Water": 3.0, "Snakes on a Plane": 4.0, "Just My Luck": 2.0,
			"Superman Returns": 3.0, "The Night Listener": 3.0, "You, Me and Dupree": 2.0,
		},
		"Jack Matthews": {
			"Lady in the Water": 3.0, "Snakes on a Plane": 4.0, "The Night Listener": 3.0,
			"Superman Returns": 5.0, "You, Me and Dupree": 3.5,
		},
		"Toby": {
			"Snakes on a Plane": 4.5, "You, Me and Dupree": 1.0, "Superman Returns": 4.0,
		},
	}
}
