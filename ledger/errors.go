// Copyright 2025 Blink Labs Software
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

package ledger

import "errors"

// ErrUnauthorized is returned when the caller is not the configured
// authority. The authority check runs before any state mutation.
var ErrUnauthorized = errors.New("unauthorized: caller is not the authority")

// ErrOverflow is returned when a checked cumulative addition would exceed
// the maximum representable value. The operation applies no partial update.
var ErrOverflow = errors.New("arithmetic overflow when updating total")

// ErrInvalidTokenType is returned when a token kind selector is outside
// the valid range
var ErrInvalidTokenType = errors.New("invalid token type")

// ErrAlreadyInitialized is returned when initializing global state that
// already exists
var ErrAlreadyInitialized = errors.New("global state already initialized")

// ErrRecordExists is returned when initializing a record whose derived
// address is already occupied
var ErrRecordExists = errors.New("airdrop record already exists")

// ErrStateNotFound is returned when global state has not been initialized
var ErrStateNotFound = errors.New("global state not found")

// ErrRunNotFound is returned when the referenced run does not exist
var ErrRunNotFound = errors.New("airdrop run not found")

// ErrRecordNotFound is returned when the referenced record does not exist
var ErrRecordNotFound = errors.New("airdrop record not found")
