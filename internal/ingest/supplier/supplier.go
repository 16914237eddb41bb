// Package supplier builds the lazy, repeatable content-reading closures a
// ContentResource carries once CONTENT_ACQUIRABLE is set. Each supplier
// re-opens and re-reads its source on every invocation; callers that want
// caching layer it on top.
package supplier

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/ternarybob/surveilr/internal/ingest/frontmatter"
)

// BinaryResult is what the binary supplier returns: the raw bytes plus
// their SHA-1 hex digest.
type BinaryResult struct {
	Hash   string
	Binary []byte
}

// TextResult is what the text supplier returns: the decoded UTF-8 text
// plus the SHA-1 hex digest of its underlying bytes.
type TextResult struct {
	Hash string
	Text string
}

// OpenFunc opens the underlying source for one read. Implementations own
// a clone of whatever handle they need (path, VFS mount, script body) so
// the originating enumerator is free to move on.
type OpenFunc func(ctx context.Context) (io.ReadCloser, error)

// BinarySupplier reads and hashes a source's raw bytes.
type BinarySupplier func(ctx context.Context) (BinaryResult, error)

// TextSupplier reads and hashes a source as UTF-8 text.
type TextSupplier func(ctx context.Context) (TextResult, error)

// FrontmatterSupplier invokes the frontmatter collaborator against a
// text supplier's output.
type FrontmatterSupplier func(ctx context.Context) (frontmatter.Result, error)

// Pair is the binary/text/frontmatter supplier trio a ContentResource
// carries. Both functions are nil when CONTENT_ACQUIRABLE is not set.
type Pair struct {
	Binary      BinarySupplier
	Text        TextSupplier
	Frontmatter FrontmatterSupplier
}

// NewPair builds a Pair of suppliers around an OpenFunc. Each call to
// Binary or Text independently opens the source via open, so the two are
// safe to call in either order or repeatedly.
func NewPair(open OpenFunc) Pair {
	binary := func(ctx context.Context) (BinaryResult, error) {
		rc, err := open(ctx)
		if err != nil {
			return BinaryResult{}, fmt.Errorf("surveilr/supplier: open for binary read: %w", err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return BinaryResult{}, fmt.Errorf("surveilr/supplier: read binary content: %w", err)
		}

		sum := sha1.Sum(data)
		return BinaryResult{Hash: hex.EncodeToString(sum[:]), Binary: data}, nil
	}

	text := func(ctx context.Context) (TextResult, error) {
		rc, err := open(ctx)
		if err != nil {
			return TextResult{}, fmt.Errorf("surveilr/supplier: open for text read: %w", err)
		}
		defer rc.Close()

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, rc); err != nil {
			return TextResult{}, fmt.Errorf("surveilr/supplier: read text content: %w", err)
		}

		sum := sha1.Sum(buf.Bytes())
		return TextResult{Hash: hex.EncodeToString(sum[:]), Text: buf.String()}, nil
	}

	fm := func(ctx context.Context) (frontmatter.Result, error) {
		t, err := text(ctx)
		if err != nil {
			return frontmatter.Result{}, err
		}
		return frontmatter.Extract(t.Text), nil
	}

	return Pair{Binary: binary, Text: text, Frontmatter: fm}
}
