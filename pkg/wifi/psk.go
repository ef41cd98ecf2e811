// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"crypto/sha1"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// PSK expands a WPA passphrase into the 64 hex digit pre-shared key for
// ssid, the same derivation wpa_passphrase(1) performs, so the stored
// profile carries the derived key rather than the passphrase. A string
// that already is a raw 64 hex key passes through unchanged. Anything
// outside the 8 to 63 character passphrase range also passes through
// untouched, leaving nmcli to reject it with its own message.
func PSK(ssid, passphrase string) string {
	if len(passphrase) == 64 {
		if _, err := hex.DecodeString(passphrase); err == nil {
			return passphrase
		}
	}
	if len(passphrase) < 8 || len(passphrase) > 63 {
		return passphrase
	}
	key := pbkdf2.Key([]byte(passphrase), []byte(ssid), 4096, 32, sha1.New)
	return hex.EncodeToString(key)
}
