package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/textclean/cmd/textclean/opts"
	"github.com/walteh/textclean/pkg/config"
	"github.com/walteh/textclean/pkg/history"
	"github.com/walteh/textclean/pkg/status"
)

func setupTestOpts(t *testing.T, documents string) (context.Context, *opts.RootOpts, string) {
	t.Helper()

	logger := zerolog.New(zerolog.TestWriter{T: t})
	ctx := logger.WithContext(context.Background())

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "docs.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte(documents), 0644))

	cfg := config.Default()
	cfg.HistoryPath = filepath.Join(dir, ".textclean.json")

	return ctx, &opts.RootOpts{
		Config:     cfg,
		Store:      history.NewStore(cfg.HistoryPath),
		UserLogger: status.NewUserLogger(ctx),
		InputPath:  inputPath,
	}, dir
}

func TestReplaceCmd(t *testing.T) {
	t.Run("applies_and_persists", func(t *testing.T) {
		ctx, rootOpts, dir := setupTestOpts(t, "Hello  world\nCafé\n   \n")
		outPath := filepath.Join(dir, "out.txt")

		cmd := NewReplaceCmd(rootOpts)
		cmd.SetArgs([]string{"--find", "world", "--replace", "there", "--output", outPath})
		require.NoError(t, cmd.ExecuteContext(ctx))

		out, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Equal(t, "Hello there\nCafé\n", string(out))

		h, err := rootOpts.Store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, h.Len())
		assert.Equal(t, history.KindRegexReplace, h.Operations()[0].Kind)
		assert.Equal(t, "world", h.Operations()[0].Pattern)
	})

	t.Run("invalid_pattern_leaves_history_untouched", func(t *testing.T) {
		ctx, rootOpts, _ := setupTestOpts(t, "Hello world\n")

		cmd := NewReplaceCmd(rootOpts)
		cmd.SetArgs([]string{"--find", "[unclosed"})
		require.Error(t, cmd.ExecuteContext(ctx))

		h, err := rootOpts.Store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, h.Len())
	})

	t.Run("applies_config_rules_in_order", func(t *testing.T) {
		ctx, rootOpts, _ := setupTestOpts(t, "one two\n")
		rootOpts.Config.Rules = []config.ReplaceRule{
			{Find: "one", Replace: "1"},
			{Find: "two", Replace: "2"},
		}

		cmd := NewReplaceCmd(rootOpts)
		cmd.SetArgs([]string{"--output", "-"})
		require.NoError(t, cmd.ExecuteContext(ctx))

		h, err := rootOpts.Store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, h.Len())
		assert.Equal(t, "one", h.Operations()[0].Pattern)
		assert.Equal(t, "two", h.Operations()[1].Pattern)
	})
}

func TestPreviewCmd(t *testing.T) {
	t.Run("preview_does_not_modify_history", func(t *testing.T) {
		ctx, rootOpts, _ := setupTestOpts(t, "Time 10:30 now\n")

		cmd := NewPreviewCmd(rootOpts)
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--find", `([0-9]+):([0-9]+)`, "--replace", "$1 $2"})
		require.NoError(t, cmd.ExecuteContext(ctx))

		assert.Contains(t, buf.String(), "10:30")
		assert.Contains(t, buf.String(), "10 30")

		h, err := rootOpts.Store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, h.Len())
	})

	t.Run("apply_records_the_operation", func(t *testing.T) {
		ctx, rootOpts, dir := setupTestOpts(t, "Time 10:30 now\n")
		outPath := filepath.Join(dir, "out.txt")

		cmd := NewPreviewCmd(rootOpts)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--find", `([0-9]+):([0-9]+)`, "--replace", "$1 $2", "--apply", "--output", outPath})
		require.NoError(t, cmd.ExecuteContext(ctx))

		out, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Equal(t, "Time 10 30 now\n", string(out))

		h, err := rootOpts.Store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, h.Len())
	})
}

func TestReplayCmd(t *testing.T) {
	t.Run("replay_matches_previously_written_output", func(t *testing.T) {
		ctx, rootOpts, dir := setupTestOpts(t, "Hello  world\nCafé\n")
		outPath := filepath.Join(dir, "out.txt")

		replaceCmd := NewReplaceCmd(rootOpts)
		replaceCmd.SetArgs([]string{"--find", "world", "--replace", "there", "--output", outPath})
		require.NoError(t, replaceCmd.ExecuteContext(ctx))

		replayCmd := NewReplayCmd(rootOpts)
		replayCmd.SetArgs([]string{"--expect", outPath})
		require.NoError(t, replayCmd.ExecuteContext(ctx))
	})

	t.Run("replay_detects_tampered_output", func(t *testing.T) {
		ctx, rootOpts, dir := setupTestOpts(t, "Hello world\n")
		outPath := filepath.Join(dir, "out.txt")

		replaceCmd := NewReplaceCmd(rootOpts)
		replaceCmd.SetArgs([]string{"--find", "world", "--replace", "there", "--output", outPath})
		require.NoError(t, replaceCmd.ExecuteContext(ctx))

		require.NoError(t, os.WriteFile(outPath, []byte("tampered\n"), 0644))

		replayCmd := NewReplayCmd(rootOpts)
		replayCmd.SetArgs([]string{"--expect", outPath})
		require.Error(t, replayCmd.ExecuteContext(ctx))
	})
}
