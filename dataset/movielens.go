package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/pkg/log"
)

const (
	MovieLensMoviesFile  = "movies.csv"
	MovieLensRatingsFile = "ratings.csv"
)

// LoadMovieLens 读取 MovieLens 目录（ml-latest-small 格式）下的
// movies.csv 与 ratings.csv，返回 userId → 电影标题 → 评分。
func LoadMovieLens(dir string) (core.RatingMatrix, error) {
	movies, err := os.Open(filepath.Join(dir, MovieLensMoviesFile))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer movies.Close()

	ratings, err := os.Open(filepath.Join(dir, MovieLensRatingsFile))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer ratings.Close()

	m, err := ReadMovieLens(movies, ratings)
	if err != nil {
		return nil, errors.Wrapf(err, "load movielens from %s", dir)
	}
	return m, nil
}

// ReadMovieLens 从两个 CSV 流构建评分矩阵。首行表头被跳过；
// 电影的 genres 与评分的 timestamp 被忽略。
func ReadMovieLens(movies, ratings io.Reader) (core.RatingMatrix, error) {
	titles, err := readMovieTitles(movies)
	if err != nil {
		return nil, err
	}

	r := newCSVReader(ratings)
	if _, err := r.Read(); err != nil {
		return nil, errors.Wrap(err, "read ratings header")
	}
	m := core.NewRatingMatrix()
	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read ratings")
		}
		if len(record) < 3 {
			line, _ := r.FieldPos(0)
			return nil, errors.Errorf("ratings line %d: expect at least 3 fields, got %d", line, len(record))
		}
		userID, movieID := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		title, ok := titles[movieID]
		if !ok {
			line, _ := r.FieldPos(0)
			return nil, errors.Errorf("ratings line %d: unknown movie id %q", line, movieID)
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, errors.Wrapf(err, "ratings line %d: parse rating", line)
		}
		m.Set(userID, title, rating)
		count++
	}
	log.Logger().Debug("load movielens ratings",
		zap.Int("n_users", m.Len()),
		zap.Int("n_movies", len(titles)),
		zap.Int("n_ratings", count))
	return m, nil
}

func readMovieTitles(movies io.Reader) (map[string]string, error) {
	r := newCSVReader(movies)
	if _, err := r.Read(); err != nil {
		return nil, errors.Wrap(err, "read movies header")
	}
	titles := make(map[string]string)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read movies")
		}
		if len(record) < 2 {
			line, _ := r.FieldPos(0)
			return nil, errors.Errorf("movies line %d: expect at least 2 fields, got %d", line, len(record))
		}
		titles[strings.TrimSpace(record[0])] = record[1]
	}
	return titles, nil
}

func newCSVReader(in io.Reader) *csv.Reader {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true
	return r
}
