package pipeline

import (
	"strconv"
	"strings"
)

// Keyer builds the composite cohort identifier from the three
// attribution labels. The join and allocation stages depend only on this
// interface, so the strategy can be swapped (e.g. for a mapping table)
// without touching downstream code.
type Keyer interface {
	Key(channel, campaign, creative string) (string, error)
}

// SuffixKeyer extracts the trailing numeric token of each label
// ("channel 1" -> "1") and joins them as "<ch>-<camp>-<cr>".
//
// Known limitation: distinct campaigns whose labels share numeric
// suffixes collide and aggregate together. The suffix scheme is what the
// ad network exports today; use MapKeyer when labels drift.
type SuffixKeyer struct{}

func (SuffixKeyer) Key(channel, campaign, creative string) (string, error) {
	ch, err := suffixID("channel", channel)
	if err != nil {
		return "", err
	}
	camp, err := suffixID("campaign", campaign)
	if err != nil {
		return "", err
	}
	cr, err := suffixID("creative", creative)
	if err != nil {
		return "", err
	}
	return ch + "-" + camp + "-" + cr, nil
}

func suffixID(field, label string) (string, error) {
	parts := strings.Fields(label)
	if len(parts) < 2 {
		return "", &KeyError{Field: field, Label: label}
	}
	tok := parts[len(parts)-1]
	if _, err := strconv.Atoi(tok); err != nil {
		return "", &KeyError{Field: field, Label: label}
	}
	return tok, nil
}

// MapKeyer resolves keys through a provided mapping table keyed by the
// raw "channel|campaign|creative" triple. Alternate strategy for label
// formats the suffix scheme cannot parse.
type MapKeyer struct {
	Keys map[string]string
}

func (m MapKeyer) Key(channel, campaign, creative string) (string, error) {
	k, ok := m.Keys[channel+"|"+campaign+"|"+creative]
	if !ok {
		return "", &KeyError{Field: "mapping", Label: channel + "|" + campaign + "|" + creative}
	}
	return k, nil
}
