package initdata

import (
	"errors"
	"net/url"
	"sort"
	"strings"
	"testing"
)

const testBotToken = "7083114519:AAF0Zq9y3cb6i1example-bot-token"

// ============================================================================
// Test Helpers
// ============================================================================

// signedPayload builds a raw payload with a valid hash pair appended.
func signedPayload(claims map[string]string, botToken string) string {
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		pairs = append(pairs, k+"="+url.QueryEscape(claims[k]))
	}
	pairs = append(pairs, "hash="+Sign(claims, botToken))
	return strings.Join(pairs, "&")
}

func testClaims() map[string]string {
	return map[string]string{
		"auth_date": "1719430205",
		"query_id":  "AAHdF6IQAAAAAN0XohDhrOrc",
		"user":      `{"id":279058397,"first_name":"Vladislav","username":"vdkfrost"}`,
	}
}

// ============================================================================
// Verify Tests
// ============================================================================

func TestVerify_ValidPayload_ReturnsTrue(t *testing.T) {
	t.Parallel()

	raw := signedPayload(testClaims(), testBotToken)

	valid, _, err := Verify(raw, testBotToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Error("expected valid signature")
	}
}

func TestVerify_ValidPayload_ClaimsEqualInputMinusHash(t *testing.T) {
	t.Parallel()

	want := testClaims()
	raw := signedPayload(want, testBotToken)

	valid, claims, err := Verify(raw, testBotToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Fatal("expected valid signature")
	}

	if len(claims) != len(want) {
		t.Fatalf("expected %d claims, got %d", len(want), len(claims))
	}
	for k, v := range want {
		if claims[k] != v {
			t.Errorf("claim %q: expected %q, got %q", k, v, claims[k])
		}
	}
	if _, ok := claims["hash"]; ok {
		t.Error("hash field must be stripped from returned claims")
	}
}

func TestVerify_SingleCharacterMutation_ReturnsFalse(t *testing.T) {
	t.Parallel()

	// Escape-free claims so every mutated byte still parses.
	claims := map[string]string{
		"auth_date": "1719430205",
		"user_id":   "279058397",
		"username":  "vdkfrost",
	}
	raw := signedPayload(claims, testBotToken)
	hashStart := strings.Index(raw, "hash=")

	for i := 0; i < hashStart; i++ {
		c := raw[i]
		if c == '=' || c == '&' {
			continue
		}
		replacement := byte('x')
		if c == 'x' {
			replacement = 'y'
		}
		mutated := raw[:i] + string(replacement) + raw[i+1:]

		valid, _, err := Verify(mutated, testBotToken)
		if err != nil {
			t.Fatalf("offset %d: unexpected error: %v", i, err)
		}
		if valid {
			t.Errorf("offset %d: mutation %q accepted as valid", i, mutated)
		}
	}
}

func TestVerify_WrongToken_ReturnsFalse(t *testing.T) {
	t.Parallel()

	raw := signedPayload(testClaims(), testBotToken)

	valid, claims, err := Verify(raw, "another-bot-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid {
		t.Error("expected invalid signature under a different token")
	}
	if len(claims) == 0 {
		t.Error("claims should be returned even when invalid")
	}
}

func TestVerify_MissingHash_ReturnsFalseWithoutError(t *testing.T) {
	t.Parallel()

	valid, claims, err := Verify("auth_date=1719430205&user_id=7", testBotToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid {
		t.Error("payload without a hash pair must not validate")
	}
	if claims["user_id"] != "7" {
		t.Errorf("expected claims to be parsed, got %v", claims)
	}
}

func TestVerify_PairWithoutEquals_ReturnsErrMalformed(t *testing.T) {
	t.Parallel()

	valid, _, err := Verify("auth_date=1719430205&garbage", testBotToken)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if valid {
		t.Error("malformed payload must not validate")
	}
}

func TestVerify_InvalidPercentEscape_ReturnsErrMalformed(t *testing.T) {
	t.Parallel()

	_, _, err := Verify("user=%zz&hash=deadbeef", testBotToken)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestVerify_PercentEncodedValues_AreDecoded(t *testing.T) {
	t.Parallel()

	claims := map[string]string{
		"user": `{"id":7,"first_name":"Ana","username":"ana"}`,
	}
	raw := signedPayload(claims, testBotToken)

	valid, got, err := Verify(raw, testBotToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Fatal("expected valid signature")
	}
	if got["user"] != claims["user"] {
		t.Errorf("expected decoded user claim %q, got %q", claims["user"], got["user"])
	}
}

// ============================================================================
// Sign Tests
// ============================================================================

func TestSign_IgnoresHashKey(t *testing.T) {
	t.Parallel()

	claims := testClaims()
	without := Sign(claims, testBotToken)

	claims["hash"] = "should-not-matter"
	with := Sign(claims, testBotToken)

	if without != with {
		t.Error("Sign must exclude the hash pair from the data-check string")
	}
}

func TestSign_Deterministic(t *testing.T) {
	t.Parallel()

	a := Sign(testClaims(), testBotToken)
	b := Sign(testClaims(), testBotToken)
	if a != b {
		t.Errorf("expected deterministic signature, got %q and %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}
