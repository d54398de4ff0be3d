// Package token issues the opaque signed tokens carried by amend and
// delete links. A token binds an expense id to an issue time and is
// verifiable without any server-side state, so the links survive a
// restart and can be replayed safely.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidToken covers forged, malformed and expired tokens alike.
// Callers show the one generic "invalid link" message for all of them.
var ErrInvalidToken = errors.New("invalid token")

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a URL-safe token encoding the id and the issue time,
// signed with HMAC-SHA256.
func (i *Issuer) Issue(id int64) string {
	payload := fmt.Sprintf("%d.%d", id, i.now().Unix())
	signature := i.sign(payload)

	return base64.RawURLEncoding.EncodeToString([]byte(payload + "." + signature))
}

// Resolve verifies the signature and TTL and returns the embedded id.
func (i *Issuer) Resolve(token string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ".")
	if len(parts) != 3 {
		return 0, ErrInvalidToken
	}

	payload := parts[0] + "." + parts[1]
	expected := i.sign(payload)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(parts[2])) != 1 {
		return 0, ErrInvalidToken
	}

	issuedAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if i.ttl > 0 && i.now().After(time.Unix(issuedAt, 0).Add(i.ttl)) {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return id, nil
}

func (i *Issuer) sign(payload string) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
