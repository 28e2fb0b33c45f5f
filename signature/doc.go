// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package signature verifies that webhook deliveries originated from the
streaming platform.

The platform signs every delivery with RSA-SHA256 over the byte sequence

	messageId + "." + timestamp + "." + rawBody

and sends the signature base64-encoded in a header. Verify recomputes the
payload and checks it against the platform's published public key:

	v, err := signature.New("", false) // "" selects the built-in key
	ok := v.Verify(msgID, ts, body, sigHeader)

Verify never panics and never returns an error; any malformed input or
cryptographic mismatch is simply false. The skip flag built at construction
time bypasses verification for local development and is off by default.
*/
package signature
