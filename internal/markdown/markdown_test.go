package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsHTML(t *testing.T) {
	assert.True(t, ContainsHTML("<p>hello</p>"))
	assert.True(t, ContainsHTML("text with <strong>bold</strong> words"))
	assert.True(t, ContainsHTML("<H1>Shouting</H1>"))
	assert.False(t, ContainsHTML("plain text"))
	assert.False(t, ContainsHTML("markdown with **bold** and _italics_"))
	assert.False(t, ContainsHTML("a < b and b > c"))
}

func TestNormalize(t *testing.T) {
	t.Run("converts html to markdown", func(t *testing.T) {
		got := Normalize("<p>Hello <strong>world</strong></p>")
		assert.Equal(t, "Hello **world**", got)
	})

	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "just words", Normalize("just words"))
	})

	t.Run("existing markdown passes through", func(t *testing.T) {
		in := "# Title\n\nSome **bold** text."
		assert.Equal(t, in, Normalize(in))
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Empty(t, Normalize(""))
	})
}
