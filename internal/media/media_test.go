// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesNestedFile(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, "/media")

	url, err := store.Write(t.Context(), "voiceovers/abc.mp3", []byte("mp3"))
	require.NoError(t, err)
	assert.Equal(t, "/media/voiceovers/abc.mp3", url)

	data, err := os.ReadFile(filepath.Join(root, "voiceovers", "abc.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), data)
}

func TestWriteSanitizesPathTraversal(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, "/media")

	url, err := store.Write(t.Context(), "../../etc/passwd", []byte("nope"))
	require.NoError(t, err)
	assert.Equal(t, "/media/etc/passwd", url)

	// The file stays under the root.
	_, err = os.Stat(filepath.Join(root, "etc", "passwd"))
	assert.NoError(t, err)
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	store := NewStore(t.TempDir(), "/media/")

	url, err := store.Write(t.Context(), "a.mp3", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/media/a.mp3", url)
}
