package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannelRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    ChannelRef
		wantErr bool
	}{
		{"channel id", "UCBJycsmduvYEL83R_U4JriQ", ChannelRef{Kind: RefID, Value: "UCBJycsmduvYEL83R_U4JriQ"}, false},
		{"handle", "@mkbhd", ChannelRef{Kind: RefHandle, Value: "@mkbhd"}, false},
		{"handle url", "https://www.youtube.com/@mkbhd/videos", ChannelRef{Kind: RefHandle, Value: "@mkbhd"}, false},
		{"handle url without scheme", "youtube.com/@mkbhd", ChannelRef{Kind: RefHandle, Value: "@mkbhd"}, false},
		{"channel url", "https://youtube.com/channel/UCBJycsmduvYEL83R_U4JriQ", ChannelRef{Kind: RefID, Value: "UCBJycsmduvYEL83R_U4JriQ"}, false},
		{"user url", "https://www.youtube.com/user/marquesbrownlee", ChannelRef{Kind: RefUsername, Value: "marquesbrownlee"}, false},
		{"custom url", "https://www.youtube.com/c/mkbhd", ChannelRef{Kind: RefHandle, Value: "@mkbhd"}, false},
		{"demo id", "demo", ChannelRef{Kind: RefID, Value: "demo"}, false},
		{"padded", "  @mkbhd ", ChannelRef{Kind: RefHandle, Value: "@mkbhd"}, false},
		{"empty", "", ChannelRef{}, true},
		{"bare at", "@", ChannelRef{}, true},
		{"video url", "https://www.youtube.com/watch?v=abc", ChannelRef{}, true},
		{"path junk", "foo/bar", ChannelRef{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChannelRef(tt.ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChannelRef_String(t *testing.T) {
	assert.Equal(t, "handle:@mkbhd", ChannelRef{Kind: RefHandle, Value: "@MKBHD"}.String())
	assert.Equal(t, "id:UC123", ChannelRef{Kind: RefID, Value: "UC123"}.String())
	assert.Equal(t, "user:name", ChannelRef{Kind: RefUsername, Value: "Name"}.String())
}

