package usecase

import "strings"

const roomMarker = "/room/"

// extractSpaceID pulls the space identifier out of a chat room URL such as
// https://chat.google.com/room/AAQA5Go_5yw?cls=7.
func extractSpaceID(chatSpaceURL string) (string, bool) {
	_, rest, found := strings.Cut(chatSpaceURL, roomMarker)
	if !found {
		return "", false
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	id, _, _ := strings.Cut(rest, "/")
	id = strings.TrimSpace(id)
	return id, id != ""
}
