package utils

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGbkRoundTrip(t *testing.T) {
	src := "影像,经度,纬度"
	gbk, err := Utf8ToGbk([]byte(src))
	require.NoError(t, err)
	assert.NotEqual(t, src, string(gbk))

	back, err := GbkToUtf8(gbk)
	require.NoError(t, err)
	assert.Equal(t, src, string(back))
}

func TestNewDecodingReaderPassThrough(t *testing.T) {
	b, err := io.ReadAll(NewDecodingReader(strings.NewReader("abc"), "utf-8"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(b))
}

func TestGetFilenameWithoutExt(t *testing.T) {
	assert.Equal(t, "dji_0649", GetFilenameWithoutExt("/data/image/dji_0649.jpg"))
	assert.Equal(t, "mosaic", GetFilenameWithoutExt("mosaic"))
}

func TestRemoveIfExists(t *testing.T) {
	assert.NoError(t, RemoveIfExists(t.TempDir()+"/missing.tif"))
}
