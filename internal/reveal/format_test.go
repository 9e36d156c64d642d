package reveal_test

import (
	"testing"

	"github.com/genieai/genie-web/internal/reveal"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain text", raw: "hello there", want: "hello there"},
		{name: "paired emphasis", raw: "a **b** c", want: "a <b>b</b> c"},
		{name: "unpaired trailing delimiter", raw: "x**y", want: "x<b>y</b>"},
		{name: "single asterisk", raw: "line1*line2", want: "line1<br/>line2"},
		{name: "several emphasized segments", raw: "**one** and **two**", want: "<b>one</b> and <b>two</b>"},
		{name: "emphasis and line breaks", raw: "**Wish:** granted*Next", want: "<b>Wish:</b> granted<br/>Next"},
		{name: "triple asterisk", raw: "a***b", want: "a<b><br/>b</b>"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, reveal.Format(tt.raw))
		})
	}
}

func TestFragments(t *testing.T) {
	fragments := reveal.Fragments(reveal.Format("a **b** c"))

	require.Equal(t, []string{"a ", "<b>b</b> ", "c "}, fragments)
	require.Equal(t, "a <b>b</b> c ", reveal.Join(fragments))
}

func TestFragmentsKeepEmptyWords(t *testing.T) {
	require.Equal(t, []string{"a ", " ", "b "}, reveal.Fragments("a  b"))
	require.Equal(t, []string{" "}, reveal.Fragments(""))
}
