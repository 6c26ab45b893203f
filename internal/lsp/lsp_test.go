package lsp

import (
	"context"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/emblem/pkg/frontend"
	"github.com/yaklabco/emblem/pkg/source"
)

func pos(line, char protocol.UInteger) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func TestConvertOffset(t *testing.T) {
	t.Parallel()

	file := source.NewFile("t.em", "ab\nhé𝄞x\n")

	tests := []struct {
		name   string
		offset int
		want   protocol.Position
	}{
		{"start", 0, pos(0, 0)},
		{"end of line", 2, pos(0, 2)},
		{"second line", 3, pos(1, 0)},
		{"after two byte rune", 6, pos(1, 2)},
		{"after surrogate pair", 10, pos(1, 4)},
		{"last rune", 11, pos(1, 5)},
		{"negative", -1, pos(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, convertOffset(file, tt.offset))
		})
	}
}

func TestDiagnostics_Lints(t *testing.T) {
	t.Parallel()

	ls := New("test", frontend.NewCompiler(frontend.Options{}), nil)
	uri := protocol.DocumentUri("file:///work/doc.em")

	diags, err := ls.Diagnostics(context.Background(), uri, ".p[x,x]{y}\n")
	require.NoError(t, err)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, protocol.Range{Start: pos(0, 0), End: pos(0, 10)}, d.Range)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
	require.NotNil(t, d.Code)
	assert.Equal(t, "duplicate-attrs", d.Code.Value)
	assert.Equal(t, "duplicate attributes\nhelp: remove multiple occurrences of the same attribute", d.Message)

	require.Len(t, d.RelatedInformation, 2)
	assert.Equal(t, "found duplicate 'x' here", d.RelatedInformation[0].Message)
	assert.Equal(t, protocol.Range{Start: pos(0, 5), End: pos(0, 6)}, d.RelatedInformation[0].Location.Range)
	assert.Equal(t, uri, d.RelatedInformation[0].Location.URI)
	assert.Equal(t, protocol.Range{Start: pos(0, 3), End: pos(0, 4)}, d.RelatedInformation[1].Location.Range)
}

func TestDiagnostics_Fatal(t *testing.T) {
	t.Parallel()

	ls := New("test", frontend.NewCompiler(frontend.Options{}), nil)

	diags, err := ls.Diagnostics(context.Background(), "file:///work/doc.em", "a */")
	require.NoError(t, err)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Nil(t, d.Code)
	assert.Contains(t, d.Message, "unbalanced comment")
	assert.Equal(t, protocol.Range{Start: pos(0, 2), End: pos(0, 4)}, d.Range)
}

func TestDiagnostics_Clean(t *testing.T) {
	t.Parallel()

	ls := New("test", frontend.NewCompiler(frontend.Options{}), nil)

	diags, err := ls.Diagnostics(context.Background(), "untitled:1", "**hello**\n")
	require.NoError(t, err)
	assert.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestDiagnostics_Cancelled(t *testing.T) {
	t.Parallel()

	ls := New("test", frontend.NewCompiler(frontend.Options{}), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ls.Diagnostics(ctx, "untitled:1", "x")
	require.ErrorIs(t, err, context.Canceled)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	ls := New("test", frontend.NewCompiler(frontend.Options{}), nil)
	uri := protocol.DocumentUri("file:///work/doc.em")

	var sent []protocol.PublishDiagnosticsParams
	notify := func(method string, params any) {
		assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, method)
		sent = append(sent, params.(protocol.PublishDiagnosticsParams))
	}

	ls.publish(notify, uri)
	assert.Empty(t, sent, "unknown documents are not published")

	ls.store(uri, ".p[]\n")
	ls.publish(notify, uri)
	require.Len(t, sent, 1)
	assert.Equal(t, uri, sent[0].URI)
	require.Len(t, sent[0].Diagnostics, 1)
	assert.Equal(t, "empty-attrs", sent[0].Diagnostics[0].Code.Value)
}

func TestDocumentName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/work/a b.em", documentName("file:///work/a%20b.em"))
	assert.Equal(t, "untitled:1", documentName("untitled:1"))
}
