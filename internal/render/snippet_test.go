package render

import (
	"testing"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs",
			html: "<html><body><p>Thanks for applying.</p><p>We will be in touch.</p></body></html>",
			want: "Thanks for applying. We will be in touch.",
		},
		{
			name: "style and script stripped",
			html: "<style>p{color:red}</style><script>alert(1)</script><p>Visible</p>",
			want: "Visible",
		},
		{
			name: "nested markup",
			html: "<div>Your interview is <b>confirmed</b> for <i>Friday</i>.</div>",
			want: "Your interview is confirmed for Friday.",
		},
		{
			name: "empty",
			html: "",
			want: "",
		},
		{
			name: "unclosed tags",
			html: "<div><p>Hello<br>world",
			want: "Hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.html))
		})
	}
}

func TestSnippet(t *testing.T) {
	htmlMail := model.EmailRecord{
		Body:     "plain fallback",
		HTMLBody: "<p>Rich   body   text</p>",
	}
	assert.Equal(t, "Rich body text", Snippet(htmlMail, 0))

	plainMail := model.EmailRecord{Body: "Just   plain\ntext"}
	assert.Equal(t, "Just plain text", Snippet(plainMail, 0))

	empty := model.EmailRecord{}
	assert.Equal(t, "", Snippet(empty, 40))
}

func TestSnippetTruncatesToWidth(t *testing.T) {
	e := model.EmailRecord{Body: "The quick brown fox jumps over the lazy dog"}
	got := Snippet(e, 16)
	assert.LessOrEqual(t, len([]rune(got)), 16)
	assert.Contains(t, got, "…")
}
