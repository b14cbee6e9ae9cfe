package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

var (
	// ErrMalformed indicates the payload could not be parsed at all, as
	// opposed to a well-formed payload whose signature does not match.
	ErrMalformed = errors.New("malformed init data payload")
)

// hashField is the pair carrying the signature inside the payload.
const hashField = "hash"

// secretKeyPrefix is the domain separator the messaging platform uses to
// derive the signing key from the bot token.
const secretKeyPrefix = "WebAppData"

// Verify checks a signed init-data payload against the bot token.
//
// The payload is an ampersand-separated list of key=value pairs with
// percent-encoded values, one of which is the hex HMAC-SHA256 signature
// under the "hash" key. Verify returns the validity of that signature and
// the decoded claims with the hash pair stripped. Claims are returned even
// when valid is false so callers can decide what to log, but they must not
// be trusted in that case.
//
// A payload that cannot be parsed (a pair without '=', an invalid percent
// escape) returns ErrMalformed rather than valid=false.
func Verify(raw, botToken string) (valid bool, claims map[string]string, err error) {
	claims, err = parse(raw)
	if err != nil {
		return false, nil, err
	}

	supplied, ok := claims[hashField]
	delete(claims, hashField)
	if !ok {
		return false, claims, nil
	}

	expected := Sign(claims, botToken)
	return hmac.Equal([]byte(expected), []byte(supplied)), claims, nil
}

// Sign computes the hex signature of the given claims under the bot token.
// The "hash" key, if present, is excluded. The data-check string is the
// claims sorted by key and joined as key=value lines.
func Sign(claims map[string]string, botToken string) string {
	keys := make([]string, 0, len(claims))
	for k := range claims {
		if k == hashField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+claims[k])
	}
	checkString := strings.Join(lines, "\n")

	secret := hmac.New(sha256.New, []byte(secretKeyPrefix))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	return hex.EncodeToString(mac.Sum(nil))
}

func parse(raw string) (map[string]string, error) {
	claims := make(map[string]string)
	for _, pair := range strings.Split(raw, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: pair %q has no '='", ErrMalformed, pair)
		}
		decoded, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformed, err)
		}
		claims[key] = decoded
	}
	return claims, nil
}
