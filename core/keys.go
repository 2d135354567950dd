// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// CacheKey derives a deterministic key for one backend request using
// BLAKE2b hashing. Identical tokens sent to an identically configured
// backend produce identical keys.
func CacheKey(cfg *BackendConfig, tokens []string) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(cfg.APIType))
	h.Write([]byte{0})
	if cfg.APIType == APITypeWebAPI {
		h.Write([]byte(cfg.Endpoint))
	}
	h.Write([]byte{0})
	if cfg.SplitCompoundWords {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	for _, token := range tokens {
		h.Write([]byte{0})
		h.Write([]byte(token))
	}
	return hex.EncodeToString(h.Sum(nil))
}
