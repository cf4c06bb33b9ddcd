package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEscapesLinks(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, PageView, ViewPage{
		Page: Page{Title: "View Data", Path: "/view"},
		Table: Table{
			Columns: []string{"Title", "Link"},
			Rows: [][]Cell{
				{{Text: "<b>Guernica</b>"}, {Text: "wiki", Link: "https://en.wikipedia.org/wiki/Guernica_(Picasso)"}},
				{{Text: "Bad"}, {Text: "evil", Link: "javascript:alert(1)"}},
			},
		},
	}, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "&lt;b&gt;Guernica&lt;/b&gt;")
	assert.Contains(t, out, `href="https://en.wikipedia.org/wiki/Guernica_`)
	assert.NotContains(t, out, "javascript:alert")
	assert.Contains(t, out, `class="active"`)
}

func TestRenderEmptyTable(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageSearch, SearchPage{Page: Page{Title: "Advanced Search"}}, nil))
	assert.Contains(t, buf.String(), "No results.")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "missing", nil, nil))
}
