package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	fserrors "github.com/rawbytedev/fstruct/errors"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestCalcSize(t *testing.T) {
	out, err := runCmd(t, "calcsize", "<3sbhilHIL")
	require.NoError(t, err)
	require.Equal(t, "32\n", out)

	_, err = runCmd(t, "calcsize", "<3q")
	require.ErrorIs(t, err, fserrors.ErrMalformedFormat)
}

func TestPackUnpack(t *testing.T) {
	out, err := runCmd(t, "pack", "<hb?x2s", "513", "7", "true", "hi")
	require.NoError(t, err)
	require.Equal(t, "01020701006869\n", out)

	out, err = runCmd(t, "--", "pack", "<HB", "-2", "-1")
	require.NoError(t, err)
	require.Equal(t, "feffff\n", out)

	out, err = runCmd(t, "--", "pack", "<h", "-1")
	require.NoError(t, err)
	require.Equal(t, "ffff\n", out)

	out, err = runCmd(t, "--", "pack", ">i", "-2")
	require.NoError(t, err)
	require.Equal(t, "fffffffe\n", out)

	out, err = runCmd(t, "unpack", "<hb?x2s", "01020701006869")
	require.NoError(t, err)
	require.Equal(t, "513\n7\ntrue\n\"hi\"\n", out)

	_, err = runCmd(t, "pack", "<hh", "1")
	require.ErrorIs(t, err, fserrors.ErrMissingValue)

	_, err = runCmd(t, "pack", "<h", "one")
	require.Error(t, err)

	_, err = runCmd(t, "unpack", "<h", "zz")
	require.Error(t, err)

	_, err = runCmd(t, "unpack", "<h", "01")
	require.ErrorIs(t, err, fserrors.ErrBufferTooSmall)
}

func TestLayoutCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pair:\n  a: u8\n  b: u32\nwide:\n  p: ptr\n"), 0o644))

	out, err := runCmd(t, "layout", "--file", path, "--name", "pair")
	require.NoError(t, err)
	require.Contains(t, out, "size 8, align 4")

	out, err = runCmd(t, "-v", "layout", "-f", path)
	require.NoError(t, err)
	require.Contains(t, out, "pair:")
	require.Contains(t, out, "wide:")

	_, err = runCmd(t, "layout", "--file", path, "--name", "nope")
	require.Error(t, err)

	_, err = runCmd(t, "layout")
	require.Error(t, err)
}

func TestUsage(t *testing.T) {
	out, err := runCmd(t, "--help")
	require.NoError(t, err)
	require.Contains(t, out, "Usage:")

	_, err = runCmd(t)
	require.Error(t, err)

	_, err = runCmd(t, "frobnicate")
	require.Error(t, err)
}
