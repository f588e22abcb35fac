package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
)

func newEdKeys(t testing.TB) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519 key: %v", err)
	}
	return pub, priv
}

func bearerRequest(header, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.Header.Set(header, value)
	}
	return req
}

func TestIssueExtractRoundTrip(t *testing.T) {
	pub, priv := newEdKeys(t)
	m, err := NewManager(Config{TTL: time.Minute, SigningMethod: MethodEd25519, PrivateKey: priv, PublicKey: pub})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	token, err := m.Issue("sid-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	sid, ok := m.Extract(bearerRequest("Authorization", "Bearer "+token))
	if !ok || sid != "sid-123" {
		t.Fatalf("expected sid-123, got %q ok=%v", sid, ok)
	}
	if _, ok := m.Extract(bearerRequest("Authorization", "bearer "+token)); !ok {
		t.Fatal("scheme match must be case-insensitive")
	}

	for _, bad := range []string{"", "Bearer", "Bearer ", "Token " + token, "Bearer " + token + "x", token} {
		if _, ok := m.Extract(bearerRequest("Authorization", bad)); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
	if _, err := m.Issue(""); err == nil {
		t.Fatal("expected empty sid to be rejected")
	}
}

func TestExtractCustomHeaderAndHS256(t *testing.T) {
	m, err := NewManager(Config{
		TTL:           time.Minute,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("secret-secret-secret-secret-1234"),
		Header:        "X-Session",
		Scheme:        "JWT",
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	token, err := m.Issue("s-hs")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, ok := m.Extract(bearerRequest("Authorization", "JWT "+token)); ok {
		t.Fatal("must only read the configured header")
	}
	if sid, ok := m.Extract(bearerRequest("X-Session", "JWT "+token)); !ok || sid != "s-hs" {
		t.Fatalf("expected s-hs, got %q ok=%v", sid, ok)
	}
}

func TestParseRejectsWrongAlgorithm(t *testing.T) {
	pub, _ := newEdKeys(t)
	m, err := NewManager(Config{TTL: time.Minute, SigningMethod: MethodEd25519, PublicKey: pub})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	claims := SessionClaims{SID: "s1", RegisteredClaims: gjwt.RegisteredClaims{ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute))}}
	tok := gjwt.NewWithClaims(gjwt.SigningMethodHS256, claims)
	token, err := tok.SignedString([]byte("secret-secret-secret-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected wrong algorithm to be rejected")
	}
}

func TestParseRequiresSIDAndExpiry(t *testing.T) {
	pub, priv := newEdKeys(t)
	m, err := NewManager(Config{TTL: time.Minute, SigningMethod: MethodEd25519, PrivateKey: priv, PublicKey: pub})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	noSID := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, SessionClaims{RegisteredClaims: gjwt.RegisteredClaims{
		ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute)),
	}})
	signed, _ := noSID.SignedString(priv)
	if _, err := m.Parse(signed); err == nil {
		t.Fatal("expected token without sid to fail")
	}

	noExp := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, SessionClaims{SID: "s1"})
	signed, _ = noExp.SignedString(priv)
	if _, err := m.Parse(signed); err == nil {
		t.Fatal("expected token without exp to fail")
	}
}

func TestParseIssuerAudienceAndLeeway(t *testing.T) {
	_, priv := newEdKeys(t)
	m, err := NewManager(Config{
		TTL:           time.Minute,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv,
		PublicKey:     priv.Public().(ed25519.PublicKey),
		Issuer:        "cookieless",
		Audience:      "api",
		Leeway:        30 * time.Second,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	token, err := m.Issue("s1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Parse(token); err != nil {
		t.Fatalf("expected valid token to parse: %v", err)
	}

	sign := func(c SessionClaims) string {
		s, err := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, c).SignedString(priv)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	claims := func(iss, aud string, exp, iat time.Duration) SessionClaims {
		return SessionClaims{SID: "s1", RegisteredClaims: gjwt.RegisteredClaims{
			Issuer:    iss,
			Audience:  gjwt.ClaimStrings{aud},
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(exp)),
			IssuedAt:  gjwt.NewNumericDate(time.Now().Add(iat)),
		}}
	}

	if _, err := m.Parse(sign(claims("other", "api", time.Minute, 0))); err == nil {
		t.Fatal("expected wrong issuer to fail")
	}
	if _, err := m.Parse(sign(claims("cookieless", "other-api", time.Minute, 0))); err == nil {
		t.Fatal("expected wrong audience to fail")
	}
	if _, err := m.Parse(sign(claims("cookieless", "api", -15*time.Second, -time.Minute))); err != nil {
		t.Fatalf("expected token within leeway to pass: %v", err)
	}
	if _, err := m.Parse(sign(claims("cookieless", "api", -2*time.Minute, -3*time.Minute))); err == nil {
		t.Fatal("expected expired token to fail")
	}
	if _, err := m.Parse(sign(claims("cookieless", "api", 2*time.Hour, time.Hour))); err == nil {
		t.Fatal("expected far-future iat to fail")
	}
}

func TestParseUnknownKidFails(t *testing.T) {
	pub1, priv1 := newEdKeys(t)
	pub2, _ := newEdKeys(t)
	m, err := NewManager(Config{
		TTL:           time.Minute,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv1,
		PublicKey:     pub1,
		KeyID:         "k1",
		VerifyKeys: map[string][]byte{
			"k1": pub1,
		},
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	claims := SessionClaims{SID: "s1", RegisteredClaims: gjwt.RegisteredClaims{ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute))}}
	tok := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, claims)
	tok.Header["kid"] = "k2"
	token, err := tok.SignedString(priv1)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected unknown kid failure")
	}

	good, err := m.Issue("s1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Parse(good); err != nil {
		t.Fatalf("expected known kid token to pass: %v", err)
	}

	m2, _ := NewManager(Config{TTL: time.Minute, SigningMethod: MethodEd25519, PublicKey: pub2, VerifyKeys: map[string][]byte{"k2": pub2}})
	if _, err := m2.Parse(good); err == nil {
		t.Fatal("expected parse failure with mismatched key set")
	}
}

func TestNewManagerRejectsBadConfig(t *testing.T) {
	pub, _ := newEdKeys(t)
	cases := map[string]Config{
		"ttl":        {SigningMethod: MethodEd25519, PublicKey: pub},
		"leeway":     {TTL: time.Minute, SigningMethod: MethodEd25519, PublicKey: pub, Leeway: time.Hour},
		"hs256 key":  {TTL: time.Minute, SigningMethod: MethodHS256},
		"ed25519":    {TTL: time.Minute, SigningMethod: MethodEd25519},
		"method":     {TTL: time.Minute, SigningMethod: "rs256", PrivateKey: []byte("k")},
		"bad pub":    {TTL: time.Minute, SigningMethod: MethodEd25519, PublicKey: []byte("nope")},
		"kid absent": {TTL: time.Minute, SigningMethod: MethodEd25519, KeyID: "k9", VerifyKeys: map[string][]byte{"k1": pub}},
	}
	for name, cfg := range cases {
		if _, err := NewManager(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
