// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pathparser

import (
	"net/url"
	"strings"
)

// Encoding selects how URL parameter values are percent-encoded when
// building and decoded when matching. It is a call-time option; the same
// compiled Parser serves every encoding.
type Encoding uint8

const (
	// EncodingDefault escapes values as URL path segments (RFC 3986),
	// leaving segment-safe characters such as sub-delimiters intact.
	EncodingDefault Encoding = iota

	// EncodingURI escapes only characters that are illegal anywhere in a
	// URI, preserving reserved characters like "/", "?", and "&".
	EncodingURI

	// EncodingURIComponent escapes every reserved character, keeping only
	// unreserved characters and "!", "~", "*", "'", "(", ")".
	EncodingURIComponent

	// EncodingNone disables encoding and decoding entirely; values pass
	// through verbatim in both directions.
	EncodingNone
)

// String returns the option-style name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingDefault:
		return "default"
	case EncodingURI:
		return "uri"
	case EncodingURIComponent:
		return "uriComponent"
	case EncodingNone:
		return "none"
	default:
		return "unknown"
	}
}

const upperhex = "0123456789ABCDEF"

// encodeParam percent-encodes a single URL parameter value.
func encodeParam(s string, enc Encoding) string {
	switch enc {
	case EncodingNone:
		return s
	case EncodingURI:
		return escapeWith(s, shouldEscapeURI)
	case EncodingURIComponent:
		return escapeWith(s, shouldEscapeURIComponent)
	default:
		return url.PathEscape(s)
	}
}

// encodeSplat encodes a splat value segment by segment so declared "/"
// separators survive the round trip.
func encodeSplat(s string, enc Encoding) string {
	if enc == EncodingNone || enc == EncodingURI {
		// Both leave "/" intact; encode the value as a whole.
		return encodeParam(s, enc)
	}
	parts := strings.Split(s, "/")
	for i, part := range parts {
		parts[i] = encodeParam(part, enc)
	}
	return strings.Join(parts, "/")
}

// decodeParam reverses percent-encoding on an extracted parameter value.
// All encodings except EncodingNone decode the same way: "%XX" sequences
// are resolved and "+" is left untouched.
func decodeParam(s string, enc Encoding) (string, error) {
	if enc == EncodingNone || !strings.ContainsRune(s, '%') {
		return s, nil
	}
	return url.PathUnescape(s)
}

func escapeWith(s string, shouldEscape func(byte) bool) string {
	hexCount := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 2*hexCount)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&0xf])
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func shouldEscapeURIComponent(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return false
	}
	return true
}

func shouldEscapeURI(c byte) bool {
	if !shouldEscapeURIComponent(c) {
		return false
	}
	switch c {
	case ';', ',', '/', '?', ':', '@', '&', '=', '+', '$', '#':
		return false
	}
	return true
}
