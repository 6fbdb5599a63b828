package input

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/avkitchen/averror"
)

func TestOpenEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "", Config{})
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.NotFound))
}

func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does-not-exist.mp4")
	_, err := Open(context.Background(), path, Config{})
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.NotFound))
}

func TestOpenUnknownFormatName(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "whatever.bin", Config{FormatName: "no-such-format"})
	require.Error(t, err)
	require.True(t, errors.Is(err, averror.UnknownFormat))
}
