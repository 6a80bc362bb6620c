package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractSpaceID(t *testing.T) {
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://chat.google.com/room/AAQA5Go_5yw?cls=7", "AAQA5Go_5yw", true},
		{"https://chat.google.com/room/AAQA5Go_5yw", "AAQA5Go_5yw", true},
		{"https://chat.google.com/room/AAQA5Go_5yw/", "AAQA5Go_5yw", true},
		{"https://chat.google.com/u/0/room/AAQA#frag", "AAQA", true},
		{"https://chat.example.com/notroom/xyz", "", false},
		{"https://chat.google.com/room/?cls=7", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := extractSpaceID(tc.url)
		require.Equal(t, tc.ok, ok, "url=%q", tc.url)
		require.Equal(t, tc.want, got, "url=%q", tc.url)
	}
}
