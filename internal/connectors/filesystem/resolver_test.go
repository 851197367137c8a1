package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "file:// URI is converted to local path",
			uri:  "file:///Users/test/documents/notes.md",
			want: "/Users/test/documents/notes.md",
		},
		{
			name: "file:// URI with spaces",
			uri:  "file:///Users/test/my documents/notes.md",
			want: "/Users/test/my documents/notes.md",
		},
		{
			name: "bare path passes through unchanged",
			uri:  "/Users/test/documents/notes.md",
			want: "/Users/test/documents/notes.md",
		},
		{
			name: "relative path passes through unchanged",
			uri:  "drafts/notes.md",
			want: "drafts/notes.md",
		},
		{
			name: "empty string",
			uri:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}
