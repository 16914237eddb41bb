package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/surveilr/internal/ingest/flags"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
	"github.com/ternarybob/surveilr/internal/ingest/rules"
)

func newDefaultClassifier() *Classifier {
	return New(rules.Default())
}

func TestClassifyIgnoresGitAndNodeModules(t *testing.T) {
	c := newDefaultClassifier()

	var class resource.Class
	matched := c.Classify("project/.git/HEAD", &class, nil)

	require.True(t, matched)
	assert.True(t, class.Flags.Has(flags.IgnoreResource))
}

func TestClassifyAcquiresMarkdownWithNature(t *testing.T) {
	c := newDefaultClassifier()

	var class resource.Class
	matched := c.Classify("docs/readme.md", &class, nil)

	require.True(t, matched)
	assert.True(t, class.Flags.Has(flags.ContentAcquirable))
	require.NotNil(t, class.Nature)
	assert.Equal(t, "md", *class.Nature)
}

func TestClassifyRewritesTapToPlainText(t *testing.T) {
	c := newDefaultClassifier()

	var class resource.Class
	var log []rules.RewriteLogEntry
	matched := c.Classify("suite/results.tap", &class, &log)

	require.True(t, matched)
	require.NotNil(t, class.Nature)
	assert.Equal(t, "text/plain", *class.Nature)
	require.Len(t, log, 1)
	assert.Equal(t, "tap", log[0].Original)
	assert.Equal(t, "text/plain", log[0].Rewritten)
}

func TestClassifyCapturableMarkerSetsNature(t *testing.T) {
	c := newDefaultClassifier()

	var class resource.Class
	matched := c.Classify("bin/report.surveilr[application/json]", &class, nil)

	require.True(t, matched)
	assert.True(t, class.Flags.Has(flags.CapturableExecutable))
	require.NotNil(t, class.Nature)
	assert.Equal(t, "application/json", *class.Nature)
}

func TestClassifyBatchSQLSetsBothBits(t *testing.T) {
	c := newDefaultClassifier()

	var class resource.Class
	matched := c.Classify("bin/surveilr-SQL-report.sh", &class, nil)

	require.True(t, matched)
	assert.True(t, class.Flags.Has(flags.CapturableExecutable))
	assert.True(t, class.Flags.Has(flags.CapturableSQL))
}

func TestClassifyReturnsFalseWhenNoRuleMatches(t *testing.T) {
	c := newDefaultClassifier()

	var class resource.Class
	matched := c.Classify("bin/opaque.bin", &class, nil)

	assert.False(t, matched)
	assert.Equal(t, flags.Set(0), class.Flags)
}

func TestClassifyShortCircuitsOnIgnoreBeforeAcquire(t *testing.T) {
	c := newDefaultClassifier()

	var class resource.Class
	matched := c.Classify("project/node_modules/pkg/readme.md", &class, nil)

	require.True(t, matched)
	assert.True(t, class.Flags.Has(flags.IgnoreResource))
	assert.False(t, class.Flags.Has(flags.ContentAcquirable))
}
