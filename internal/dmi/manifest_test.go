package dmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminator stops parsing",
			text: "state = \"a\"\nstate = \"b\"\n# END DMI\nstate = \"c\"\n",
			want: []string{"a", "b"},
		},
		{
			name: "typical manifest",
			text: "# BEGIN DMI\nversion = 4.0\n\twidth = 32\n\theight = 32\nstate = \"idle\"\n\tdirs = 4\n\tframes = 1\nstate = \"run\"\n\tdirs = 4\n\tframes = 2\n\tdelay = 1,1\n# END DMI\n",
			want: []string{"idle", "run"},
		},
		{
			name: "order and duplicates preserved",
			text: "state = \"z\"\nstate = \"a\"\nstate = \"z\"\n",
			want: []string{"z", "a", "z"},
		},
		{
			name: "no terminator reads to the end",
			text: "state = \"one\"\nstate = \"two\"",
			want: []string{"one", "two"},
		},
		{
			name: "crlf line endings and surrounding whitespace",
			text: "state = \"a\"\r\n  \tstate = \"b\"  \r\n# END DMI\r\n",
			want: []string{"a", "b"},
		},
		{
			name: "marker inside a longer line still terminates",
			text: "state = \"a\"\nfoo # END DMI bar\nstate = \"b\"\n",
			want: []string{"a"},
		},
		{
			name: "name taken verbatim with embedded quotes",
			text: "state = \"say \\\"hi\\\"\"\nstate = \"a\"b\"\n",
			want: []string{`say \"hi\"`, `a"b`},
		},
		{
			name: "lines not matching the exact shape are ignored",
			text: "state=\"a\"\nstate = 'b'\nState = \"c\"\nstate = \"d\n x state = \"e\"\nstate = \"f\" # comment\n",
			want: nil,
		},
		{
			name: "bare opening quote is not a name",
			text: "state = \"\n",
			want: nil,
		},
		{
			name: "empty name",
			text: "state = \"\"\nstate = \"x\"\n",
			want: []string{"", "x"},
		},
		{
			name: "latin-1 no-break space is not trimmed",
			text: "\u00a0state = \"a\"\nstate = \"b\"\u00a0\n",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseManifest(tt.text))
		})
	}
}
