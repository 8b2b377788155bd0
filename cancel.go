// Copyright 2024 The Marco Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package marco

import (
	"errors"
	"sync/atomic"
)

// ErrCancelled is returned by [Parse] when the supplied [CancelToken]
// was signaled before parsing completed. No partial Document is
// returned alongside it.
var ErrCancelled = errors.New("marco: parse cancelled")

// A CancelToken is a cooperative cancellation signal, polled by the
// parser at block boundaries (stage 1) and inline-block boundaries
// (stage 2). It contains no goroutines or channels: the core is
// single-threaded and never suspends on its own, so a simple atomic
// flag is sufficient and avoids giving the parser anything to block
// on.
//
// The zero CancelToken is never cancelled.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns a fresh, uncancelled token.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel marks the token cancelled. Safe to call from another
// goroutine than the one running [Parse]; the parser only polls the
// flag, it does not synchronize with the caller otherwise.
func (t *CancelToken) Cancel() {
	if t != nil {
		t.cancelled.Store(true)
	}
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}
