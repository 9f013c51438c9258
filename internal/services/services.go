// Package services holds the per-domain facades. Each facade maps a small
// set of gateway operations onto downstream paths through one dispatch
// client; everything else (tokens, error translation, envelopes) lives in
// the layers around it.
package services

import "net/url"

// escape keeps user-supplied path segments from breaking downstream paths.
func escape(segment string) string {
	return url.PathEscape(segment)
}
