package main

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/reckit-cf/core"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestCommands(t *testing.T) {
	assert.Equal(t, "0.991241\tLisa Rose\n0.924473\tMick LaSalle\n0.893405\tClaudia Puig\n",
		execute(t, "top", "Toby", "-n", "3", "--json=false"))

	assert.Equal(t, "0.294298\n",
		execute(t, "similarity", "Lisa Rose", "Gene Seymour", "--metric", "distance", "--json=false"))

	assert.Equal(t, "4.000000\tMichael Phillips\n3.000000\tJack Matthews\n",
		execute(t, "recommend", "Just My Luck", "--transpose", "--json=false"))

	var preds []core.Prediction
	require.NoError(t, json.Unmarshal([]byte(execute(t, "items", "Toby", "--json", "--workers", "2")), &preds))
	require.Len(t, preds, 3)
	assert.Equal(t, "The Night Listener", preds[0].ItemID)
	assert.InDelta(t, 3.166742523, preds[0].Score, 1e-6)
}

func TestCommandErrors(t *testing.T) {
	rootCmd.SetArgs([]string{"top", "Nobody", "--json=false"})
	assert.Error(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"similarity", "Toby", "Lisa Rose", "--metric", "cosine"})
	assert.Error(t, rootCmd.Execute())
}
