package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuffixKeyer(t *testing.T) {
	k := SuffixKeyer{}

	key, err := k.Key("channel 2", "campaign 10", "creative 4")
	require.NoError(t, err)
	assert.Equal(t, "2-10-4", key)
}

func TestSuffixKeyerMalformedLabels(t *testing.T) {
	k := SuffixKeyer{}

	cases := []struct {
		name                        string
		channel, campaign, creative string
	}{
		{"missing token", "channel", "campaign 1", "creative 1"},
		{"non-numeric suffix", "channel 1", "campaign A1", "creative 1"},
		{"empty label", "channel 1", "campaign 1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := k.Key(tc.channel, tc.campaign, tc.creative)
			require.Error(t, err)
			var ke *KeyError
			assert.True(t, errors.As(err, &ke))
		})
	}
}

func TestMapKeyer(t *testing.T) {
	k := MapKeyer{Keys: map[string]string{
		"organic|brand launch|video A": "7-1-3",
	}}

	key, err := k.Key("organic", "brand launch", "video A")
	require.NoError(t, err)
	assert.Equal(t, "7-1-3", key)

	_, err = k.Key("organic", "unmapped", "video A")
	var ke *KeyError
	require.True(t, errors.As(err, &ke))
}
