package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHTML(t *testing.T) {
	t.Parallel()

	doc := "<!DOCTYPE html>\n<html><body>hi</body></html>"

	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "html fence",
			content: "Here is the app:\n```html\n" + doc + "\n```\nEnjoy!",
			want:    doc,
		},
		{
			name:    "plain fence",
			content: "```\n" + doc + "\n```",
			want:    doc,
		},
		{
			name:    "fence with language tag on plain marker",
			content: "```html\n" + doc + "\n```",
			want:    doc,
		},
		{
			name:    "unterminated fence",
			content: "```html\n" + doc,
			want:    doc,
		},
		{
			name:    "raw doctype sentinel",
			content: "Sure! " + doc,
			want:    doc,
		},
		{
			name:    "raw html tag sentinel",
			content: "response: <html><body>x</body></html>",
			want:    "<html><body>x</body></html>",
		},
		{
			name:    "no code at all",
			content: "I could not generate the application, sorry.",
			wantErr: true,
		},
		{
			name:    "empty input",
			content: "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractHTML(tc.content)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrNoCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
