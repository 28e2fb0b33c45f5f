// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package signature

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
)

// DefaultPublicKey is the platform's published webhook signing key.
// It can be overridden with WEBHOOK_PUBLIC_KEY when the platform rotates keys.
const DefaultPublicKey = `-----BEGIN PUBLIC KEY-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAq/+l1WnlRrGSolDMA+A8
6rAhMbQGmQ2SapVcGM3zq8ANXjnhDWocMqfWcTd95btDydITa10kDvHzw9WQOqp2
MZI7ZyrfzJuz5nhTPCiJwTwnEtWft7nV14BYRDHvlfqPUaZ+1KR4OCaO/wWIk/rQ
L/TjY0M70gse8rlBkbo2a8rKhu69RQTRsoaf4DVhDPEeSeI5jVrRDGAMGL3cGuyY
6CLKGdjVEM78g3JfYOvDU/RvfqD7L89TZ3iN94jrmWdGz34JNlEI5hqK8dd7C5EF
BEbZ5jgB8s8ReQV8H+MkuffjdAj3ajDDX3DOJMIut1lBrUVD1AaSrGCKHooWoL2e
twIDAQAB
-----END PUBLIC KEY-----`

var ErrNotRSAKey = errors.New("public key is not an RSA key")

// Verifier checks that webhook deliveries were signed by the platform.
// The zero value is not usable; construct with New.
type Verifier struct {
	pub  *rsa.PublicKey
	skip bool
}

// New parses the PEM public key and returns a Verifier. An empty pemKey
// selects DefaultPublicKey. When skip is true Verify always succeeds;
// that bypass is for local development against unsigned requests and
// must never be enabled in production.
func New(pemKey string, skip bool) (*Verifier, error) {
	if pemKey == "" {
		pemKey = DefaultPublicKey
	}

	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, errors.New("no PEM block in public key")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, ErrNotRSAKey
	}

	return &Verifier{pub: pub, skip: skip}, nil
}

// Skip reports whether verification is bypassed.
func (v *Verifier) Skip() bool {
	return v.skip
}

// Verify checks signatureB64 against the payload "messageID.timestamp.body"
// using RSA-SHA256 (PKCS#1 v1.5). It returns false on any decoding or
// cryptographic failure; a bad delivery must never take the handler down.
func (v *Verifier) Verify(messageID, timestamp string, body []byte, signatureB64 string) bool {
	if v.skip {
		return true
	}

	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}

	payload := make([]byte, 0, len(messageID)+len(timestamp)+len(body)+2)
	payload = append(payload, messageID...)
	payload = append(payload, '.')
	payload = append(payload, timestamp...)
	payload = append(payload, '.')
	payload = append(payload, body...)

	digest := sha256.Sum256(payload)
	return rsa.VerifyPKCS1v15(v.pub, crypto.SHA256, digest[:], sig) == nil
}
