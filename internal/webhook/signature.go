// Package webhook authenticates and decodes inbound contract event deliveries.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries the delivery signature.
const SignatureHeader = "X-Hook0-Signature"

// DefaultMaxAge is the signature window applied when none is configured.
const DefaultMaxAge = 5 * time.Minute

var (
	// ErrUnauthenticated wraps every signature rejection.
	ErrUnauthenticated = errors.New("unauthenticated webhook")

	ErrMalformedSignature = errors.New("malformed signature header")
	ErrSignatureMismatch  = errors.New("signature mismatch")
	ErrSignatureExpired   = errors.New("signature outside replay window")
)

// HeaderGetter looks up a request header value by name. http.Header satisfies it.
type HeaderGetter interface {
	Get(key string) string
}

// Signature is a parsed signature header.
type Signature struct {
	Timestamp   int64
	rawTime     string
	HeaderNames []string
	V1          []byte
	V0          []byte
}

// ParseSignature parses `t=<unix>,h=<names>,v1=<hex>`. A legacy `v0=<hex>`
// entry is accepted in place of v1.
func ParseSignature(header string) (Signature, error) {
	var sig Signature
	if strings.TrimSpace(header) == "" {
		return sig, fmt.Errorf("%w: empty", ErrMalformedSignature)
	}

	var seenT, seenH bool
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return sig, fmt.Errorf("%w: %q", ErrMalformedSignature, part)
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return sig, fmt.Errorf("%w: timestamp %q", ErrMalformedSignature, value)
			}
			sig.Timestamp, sig.rawTime, seenT = ts, value, true
		case "h":
			sig.HeaderNames = strings.Fields(value)
			seenH = true
		case "v1":
			digest, err := hex.DecodeString(value)
			if err != nil || len(digest) != sha256.Size {
				return sig, fmt.Errorf("%w: v1 digest", ErrMalformedSignature)
			}
			sig.V1 = digest
		case "v0":
			digest, err := hex.DecodeString(value)
			if err != nil || len(digest) != sha256.Size {
				return sig, fmt.Errorf("%w: v0 digest", ErrMalformedSignature)
			}
			sig.V0 = digest
		}
	}

	switch {
	case !seenT:
		return sig, fmt.Errorf("%w: missing t", ErrMalformedSignature)
	case sig.V1 != nil && !seenH:
		return sig, fmt.Errorf("%w: missing h", ErrMalformedSignature)
	case sig.V1 == nil && sig.V0 == nil:
		return sig, fmt.Errorf("%w: missing digest", ErrMalformedSignature)
	}
	return sig, nil
}

// Verifier checks delivery signatures against a shared secret.
type Verifier struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewVerifier builds a Verifier. A non-positive maxAge falls back to DefaultMaxAge.
func NewVerifier(secret []byte, maxAge time.Duration) *Verifier {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Verifier{secret: secret, maxAge: maxAge, now: time.Now}
}

// Check authenticates body against header. Every failure wraps ErrUnauthenticated
// together with the specific reason.
func (v *Verifier) Check(body []byte, header string, headers HeaderGetter) error {
	sig, err := ParseSignature(header)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	age := v.now().Sub(time.Unix(sig.Timestamp, 0))
	if age < 0 {
		age = -age
	}
	if age > v.maxAge {
		return fmt.Errorf("%w: %w: age %s", ErrUnauthenticated, ErrSignatureExpired, age.Truncate(time.Second))
	}

	var expected, provided []byte
	if sig.V1 != nil {
		expected = v1Digest(v.secret, sig.rawTime, sig.HeaderNames, headers, body)
		provided = sig.V1
	} else {
		expected = v0Digest(v.secret, sig.rawTime, body)
		provided = sig.V0
	}
	if !hmac.Equal(expected, provided) {
		return fmt.Errorf("%w: %w", ErrUnauthenticated, ErrSignatureMismatch)
	}
	return nil
}

// Verify reports whether Check passes.
func (v *Verifier) Verify(body []byte, header string, headers HeaderGetter) bool {
	return v.Check(body, header, headers) == nil
}

// Verify authenticates a single delivery without constructing a Verifier.
func Verify(body []byte, header string, secret []byte, headers HeaderGetter, maxAge time.Duration) bool {
	return NewVerifier(secret, maxAge).Verify(body, header, headers)
}

// Sign produces a v1 signature header for body. Used by tooling and tests.
func Sign(secret []byte, at time.Time, headerNames []string, headers HeaderGetter, body []byte) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	digest := v1Digest(secret, ts, headerNames, headers, body)
	return fmt.Sprintf("t=%s,h=%s,v1=%s", ts, strings.Join(headerNames, " "), hex.EncodeToString(digest))
}

func v1Digest(secret []byte, ts string, names []string, headers HeaderGetter, body []byte) []byte {
	values := make([]string, len(names))
	for i, name := range names {
		if headers != nil {
			values[i] = headers.Get(name)
		}
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write([]byte(strings.Join(names, " ")))
	mac.Write([]byte("."))
	mac.Write([]byte(strings.Join(values, ".")))
	mac.Write([]byte("."))
	mac.Write(body)
	return mac.Sum(nil)
}

func v0Digest(secret []byte, ts string, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(body)
	return mac.Sum(nil)
}
