// Package initdata verifies signed init-data payloads from the host
// messaging client.
//
// Mini-apps embedded in the messaging client receive an opaque string of
// URL-encoded key=value pairs plus an HMAC-SHA256 signature. The platform
// derives a secondary key from the bot token with the fixed "WebAppData"
// domain separator, then signs the lexicographically sorted pairs joined
// as newline-separated key=value lines.
//
// # Verification
//
//	valid, claims, err := initdata.Verify(raw, botToken)
//	if err != nil {
//	    // payload was not even parseable
//	}
//	if !valid {
//	    // signature mismatch; claims must not be trusted
//	}
//
// Verify is a pure function over its inputs and performs no I/O, so it is
// safe to call from any goroutine.
package initdata
