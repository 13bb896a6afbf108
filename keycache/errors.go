// Copyright 2025 The Rivaas Authors
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

package keycache

import "errors"

var (
	// ErrInvalidCapacity is returned by New when maxSize is not a positive
	// integer.
	ErrInvalidCapacity = errors.New("cache capacity must be positive")

	// ErrDuplicateCache is returned by Registry.Register when a cache is
	// already registered under the same name.
	ErrDuplicateCache = errors.New("cache name already registered")
)
