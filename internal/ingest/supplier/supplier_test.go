package supplier

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openString(content string) OpenFunc {
	return func(ctx context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}
}

func TestTextSupplierHashesContent(t *testing.T) {
	pair := NewPair(openString("hi"))

	result, err := pair.Text(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "hi", result.Text)
	assert.Equal(t, "c22b5f9178342609428d6f51b2c5af4c0bde6a42", result.Hash)
}

func TestBinarySupplierHashMatchesTextSupplierHash(t *testing.T) {
	pair := NewPair(openString("hi"))

	binResult, err := pair.Binary(context.Background())
	require.NoError(t, err)
	textResult, err := pair.Text(context.Background())
	require.NoError(t, err)

	assert.Equal(t, textResult.Hash, binResult.Hash)
	assert.Equal(t, []byte("hi"), binResult.Binary)
}

func TestFrontmatterSupplierDelegatesToExtract(t *testing.T) {
	pair := NewPair(openString("---\nnature: text/plain\n---\nbody"))

	result, err := pair.Frontmatter(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "text/plain", result.NatureTag)
	assert.Equal(t, "body", result.Body)
}
