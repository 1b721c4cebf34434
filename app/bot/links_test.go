package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDeepLink(t *testing.T) {
	got := BuildDeepLink("filebot", "ab12cd34")
	assert.Equal(t, "https://t.me/filebot?start=cat_ab12cd34", got)
}

func TestParseStartPayload(t *testing.T) {
	cases := []struct {
		payload string
		wantID  string
		wantOK  bool
	}{
		{"cat_ab12cd34", "ab12cd34", true},
		{"  cat_ab12cd34  ", "ab12cd34", true},
		{"cat_", "", false},
		{"", "", false},
		{"ab12cd34", "", false},
		{"category_x", "", false},
	}
	for _, tc := range cases {
		id, ok := ParseStartPayload(tc.payload)
		assert.Equal(t, tc.wantOK, ok, tc.payload)
		assert.Equal(t, tc.wantID, id, tc.payload)
	}
}

func TestDeepLinkRoundTrip(t *testing.T) {
	link := BuildDeepLink("filebot", "ffee0011")
	// the payload is everything after "?start="
	payload := link[len("https://t.me/filebot?start="):]
	id, ok := ParseStartPayload(payload)
	assert.True(t, ok)
	assert.Equal(t, "ffee0011", id)
}
