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

package types

// Blob keys are a single-byte kind prefix followed by the 32-byte derived
// account address. The prefix keeps the account kinds in separate key
// ranges so a prefix scan never crosses kinds.
const (
	StateBlobKeyPrefix  = "s"
	RunBlobKeyPrefix    = "r"
	RecordBlobKeyPrefix = "a"
)

func StateBlobKey(address []byte) []byte {
	key := []byte(StateBlobKeyPrefix)
	key = append(key, address...)
	return key
}

func RunBlobKey(address []byte) []byte {
	key := []byte(RunBlobKeyPrefix)
	key = append(key, address...)
	return key
}

func RecordBlobKey(address []byte) []byte {
	key := []byte(RecordBlobKeyPrefix)
	key = append(key, address...)
	return key
}
