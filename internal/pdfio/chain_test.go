package pdfio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clindex/internal/port"
)

type stubBackend struct {
	name    string
	content *port.PDFContent
	err     error
	calls   int
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Extract(ctx context.Context, data []byte) (*port.PDFContent, error) {
	s.calls++
	return s.content, s.err
}

func textContent(text string) *port.PDFContent {
	return &port.PDFContent{
		PageCount: 1,
		Pages:     []port.PageText{{Page: 1, Text: text}},
	}
}

func TestChainExtractor_FirstBackendSucceeds(t *testing.T) {
	primary := &stubBackend{name: "primary", content: textContent("hello")}
	secondary := &stubBackend{name: "secondary", content: textContent("unused")}
	chain := NewChainExtractor(primary, secondary)

	content, err := chain.Extract(context.Background(), []byte("%PDF"))

	require.NoError(t, err)
	assert.Equal(t, "hello", content.Pages[0].Text)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, secondary.calls)
}

func TestChainExtractor_FallsBackOnError(t *testing.T) {
	primary := &stubBackend{name: "primary", err: errors.New("corrupt xref")}
	secondary := &stubBackend{name: "secondary", content: textContent("recovered")}
	chain := NewChainExtractor(primary, secondary)

	content, err := chain.Extract(context.Background(), []byte("%PDF"))

	require.NoError(t, err)
	assert.Equal(t, "recovered", content.Pages[0].Text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestChainExtractor_FallsBackOnEmptyText(t *testing.T) {
	primary := &stubBackend{name: "primary", content: textContent("")}
	secondary := &stubBackend{name: "secondary", content: textContent("recovered")}
	chain := NewChainExtractor(primary, secondary)

	content, err := chain.Extract(context.Background(), []byte("%PDF"))

	require.NoError(t, err)
	assert.Equal(t, "recovered", content.Pages[0].Text)
}

func TestChainExtractor_AllBackendsFail(t *testing.T) {
	primary := &stubBackend{name: "primary", err: errors.New("corrupt xref")}
	secondary := &stubBackend{name: "secondary", err: errors.New("not a pdf")}
	chain := NewChainExtractor(primary, secondary)

	_, err := chain.Extract(context.Background(), []byte("junk"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all pdf backends failed")
}

func TestChainExtractor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chain := NewChainExtractor(&stubBackend{name: "primary", content: textContent("x")})
	_, err := chain.Extract(ctx, []byte("%PDF"))

	assert.ErrorIs(t, err, context.Canceled)
}
