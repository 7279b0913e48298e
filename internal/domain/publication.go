package domain

import "strings"

// DecodePublicationID decodes the on-chain project identifier into the
// canonical "profile-post" project key.
//
// The vote event packs two hex-encoded halves into one 32-byte word:
// characters [2:34) carry the profile id and [34:66) the post id, each
// right-padded with a "1" marker nibble. Both halves are trimmed at their
// last marker and rejoined as "0x<profile>-0x<post>".
//
// Decoding fails closed: any malformed input yields an empty key and the
// caller is expected to skip the event.
func DecodePublicationID(encoded string) string {
	if len(encoded) < 66 || !strings.HasPrefix(encoded, "0x") {
		return ""
	}

	profile := trimAtMarker(encoded[2:34])
	post := trimAtMarker(encoded[34:66])
	if profile == "" || post == "" {
		return ""
	}

	return "0x" + profile + "-0x" + post
}

func trimAtMarker(half string) string {
	idx := strings.LastIndex(half, "1")
	if idx <= 0 {
		return ""
	}
	return half[:idx]
}
