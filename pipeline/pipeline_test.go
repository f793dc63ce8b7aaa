package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/reckit-cf/core"
)

// scaleNode 把每个分数乘以 factor，便于观察 Node 的执行顺序。
type scaleNode struct {
	factor float64
	err    error
}

func (n *scaleNode) Name() string { return "test.scale" }
func (n *scaleNode) Kind() Kind   { return KindReRank }

func (n *scaleNode) Process(_ context.Context, _ *core.RecommendContext, preds []core.Prediction) ([]core.Prediction, error) {
	if n.err != nil {
		return nil, n.err
	}
	out := make([]core.Prediction, len(preds))
	for i, p := range preds {
		out[i] = core.Prediction{ItemID: p.ItemID, Score: p.Score * n.factor}
	}
	return out, nil
}

func newTestFactory() *NodeFactory {
	f := NewNodeFactory()
	f.Register("test.scale", func(cfg map[string]interface{}) (Node, error) {
		factor, ok := cfg["factor"].(float64)
		if !ok {
			return nil, errors.New("factor not found")
		}
		return &scaleNode{factor: factor}, nil
	})
	return f
}

func TestPipelineRun(t *testing.T) {
	p := &Pipeline{Nodes: []Node{&scaleNode{factor: 2}, &scaleNode{factor: 3}}}
	out, err := p.Run(context.Background(), nil, []core.Prediction{{ItemID: "a", Score: 1}})
	require.NoError(t, err)
	assert.Equal(t, []core.Prediction{{ItemID: "a", Score: 6}}, out)

	out, err = (&Pipeline{}).Run(context.Background(), nil, []core.Prediction{{ItemID: "a", Score: 1}})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestPipelineRunError(t *testing.T) {
	cause := core.ErrItemNotFound("x")
	p := &Pipeline{Nodes: []Node{&scaleNode{factor: 2}, &scaleNode{err: cause}}}
	_, err := p.Run(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node test.scale")
	assert.True(t, core.IsNotFound(err))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "p.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
pipeline:
  name: demo
  nodes:
    - type: test.scale
      config:
        factor: 0.5
`), 0o644))
	jsonPath := filepath.Join(dir, "p.json")
	require.NoError(t, os.WriteFile(jsonPath,
		[]byte(`{"pipeline":{"name":"demo","nodes":[{"type":"test.scale","config":{"factor":0.5}}]}}`), 0o644))

	tests := []struct {
		load func(string) (*Config, error)
		path string
	}{
		{load: LoadFromYAML, path: yamlPath},
		{load: LoadFromJSON, path: jsonPath},
	}
	for _, tt := range tests {
		cfg, err := tt.load(tt.path)
		require.NoError(t, err)
		assert.Equal(t, "demo", cfg.Pipeline.Name)

		p, err := cfg.BuildPipeline(newTestFactory(), &scaleNode{factor: 4})
		require.NoError(t, err)
		require.Len(t, p.Nodes, 2)
		out, err := p.Run(context.Background(), nil, []core.Prediction{{ItemID: "a", Score: 1}})
		require.NoError(t, err)
		assert.Equal(t, 2.0, out[0].Score)
	}

	_, err := LoadFromYAML(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildPipelineErrors(t *testing.T) {
	var cfg Config
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "test.unknown"}}
	_, err := cfg.BuildPipeline(newTestFactory())
	assert.Error(t, err)

	cfg.Pipeline.Nodes = []NodeConfig{{Type: "test.scale", Config: map[string]interface{}{}}}
	_, err = cfg.BuildPipeline(newTestFactory())
	assert.Error(t, err)
}
