package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rushteam/reckit-cf/config"
	_ "github.com/rushteam/reckit-cf/config/builders"
	"github.com/rushteam/reckit-cf/core"
	"github.com/rushteam/reckit-cf/dataset"
	"github.com/rushteam/reckit-cf/pkg/log"
	"github.com/rushteam/reckit-cf/recall"
	"github.com/rushteam/reckit-cf/similarity"
	"github.com/rushteam/reckit-cf/store"
)

var rootCmd = &cobra.Command{
	Use:   "reckit-cf",
	Short: "reckit-cf: collaborative filtering over a rating matrix",
	Long: "reckit-cf computes entity similarity, similar entities and user-based / item-based " +
		"recommendations over a sparse entity → item rating matrix.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLogger(cmd.Flags())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.CloseLogger()
	},
}

var similarityCmd = &cobra.Command{
	Use:   "similarity <a> <b>",
	Short: "Similarity score between two entities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, m, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("metric")
		if name == "" {
			name = eng.Config.Engine.UserMetric
		}
		metric, err := similarity.ByName(name)
		if err != nil {
			return err
		}
		score, err := metric.Similarity(m, args[0], args[1])
		if err != nil {
			return err
		}
		return output(cmd, core.SimilarityScore{ID: args[1], Score: score})
	},
}

var topCmd = &cobra.Command{
	Use:   "top <entity>",
	Short: "Entities most similar to the given one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, m, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		metric, _ := cmd.Flags().GetString("metric")
		ranker, err := eng.Ranker(metric)
		if err != nil {
			return err
		}
		if n, _ := cmd.Flags().GetInt("n"); n > 0 {
			ranker.N = n
		}
		scores, err := ranker.TopMatches(cmd.Context(), m, args[0])
		if err != nil {
			return err
		}
		return output(cmd, scores)
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <target>",
	Short: "User-based recommendations for the target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, m, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		return runPipeline(cmd, eng, eng.UserBased(), m, args[0])
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items <target>",
	Short: "Item-based recommendations using a precomputed item similarity table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		var bar *progressbar.ProgressBar
		table, err := eng.BuildItemTable(cmd.Context(), func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("item similarity"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish())
			}
			_ = bar.Set(done)
		})
		if err != nil {
			return err
		}
		return runPipeline(cmd, eng, eng.ItemBased(table), eng.Matrix, args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import <redis-addr>",
	Short: "Write the configured dataset into Redis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		db, _ := cmd.Flags().GetInt("db")
		prefix, _ := cmd.Flags().GetString("prefix")
		rs, err := store.NewRedisStore(args[0], db)
		if err != nil {
			return err
		}
		defer rs.Close()
		if err := dataset.NewStoreSource(rs, prefix).Save(cmd.Context(), eng.Matrix); err != nil {
			return err
		}
		log.Logger().Info("dataset imported",
			zap.String("addr", args[0]),
			zap.Int("n_entities", eng.Matrix.Len()))
		return nil
	},
}

// loadEngine 读取配置文件并用命令行参数覆盖，返回 Engine 以及本次命令使用的矩阵（--transpose 时为转置矩阵）。
func loadEngine(cmd *cobra.Command) (*config.Engine, core.RatingMatrix, error) {
	flags := cmd.Flags()
	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, nil, errors.Wrapf(err, "load config %s", path)
		}
	}
	if flags.Changed("source") {
		cfg.Dataset.Source, _ = flags.GetString("source")
	}
	if flags.Changed("dir") {
		cfg.Dataset.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("workers") {
		cfg.Engine.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("top-k") {
		cfg.Engine.TopK, _ = flags.GetInt("top-k")
	}
	cfg.SetDefaults()

	eng, err := config.NewEngine(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	m := eng.Matrix
	if transpose, _ := flags.GetBool("transpose"); transpose {
		m = m.Transpose()
	}
	return eng, m, nil
}

func runPipeline(cmd *cobra.Command, eng *config.Engine, rec recall.Recommender, m core.RatingMatrix, target string) error {
	p, err := eng.Pipeline(rec, m)
	if err != nil {
		return err
	}
	preds, err := p.Run(cmd.Context(), &core.RecommendContext{Target: target, Scene: cmd.Name()}, nil)
	if err != nil {
		return err
	}
	return output(cmd, preds)
}

func output(cmd *cobra.Command, v any) error {
	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return printText(w, v)
}

func printText(w io.Writer, v any) error {
	var err error
	switch val := v.(type) {
	case core.SimilarityScore:
		_, err = fmt.Fprintf(w, "%.6f\n", val.Score)
	case []core.SimilarityScore:
		for _, s := range val {
			if _, err = fmt.Fprintf(w, "%.6f\t%s\n", s.Score, s.ID); err != nil {
				return err
			}
		}
	case []core.Prediction:
		for _, p := range val {
			if _, err = fmt.Fprintf(w, "%.6f\t%s\n", p.Score, p.ItemID); err != nil {
				return err
			}
		}
	default:
		_, err = fmt.Fprintln(w, val)
	}
	return err
}

func init() {
	log.AddFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file path (yaml or json)")
	rootCmd.PersistentFlags().String("source", "", "dataset source: critics, movielens or redis")
	rootCmd.PersistentFlags().String("dir", "", "movielens dataset directory")
	rootCmd.PersistentFlags().Int("workers", 1, "number of goroutines computing similarities")
	rootCmd.PersistentFlags().Int("top-k", 0, "maximum number of recommendations before post-processing")
	rootCmd.PersistentFlags().Bool("json", false, "print results as json")

	for _, cmd := range []*cobra.Command{similarityCmd, topCmd, recommendCmd} {
		cmd.Flags().Bool("transpose", false, "work on the item → entity matrix")
	}
	similarityCmd.Flags().String("metric", "", "similarity metric: pearson or distance")
	topCmd.Flags().String("metric", "", "similarity metric: pearson or distance")
	topCmd.Flags().IntP("n", "n", 0, "number of similar entities")
	importCmd.Flags().Int("db", 0, "redis database")
	importCmd.Flags().String("prefix", "cf", "redis key prefix")

	rootCmd.AddCommand(similarityCmd, topCmd, recommendCmd, itemsCmd, importCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
