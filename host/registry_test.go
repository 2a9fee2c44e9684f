/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryStartAndCancel(t *testing.T) {
	r := NewRegistry()
	ctx, err := r.Start(context.Background(), "a")
	require.NoError(t, err)
	require.True(t, r.Active("a"))

	r.Cancel("a")
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestRegistryRejectsConcurrentStartForSameID(t *testing.T) {
	r := NewRegistry()
	_, err := r.Start(context.Background(), "a")
	require.NoError(t, err)

	_, err = r.Start(context.Background(), "a")
	require.Error(t, err)
}

func TestRegistryFinishReleasesSlot(t *testing.T) {
	r := NewRegistry()
	_, err := r.Start(context.Background(), "a")
	require.NoError(t, err)

	r.Finish("a")
	require.False(t, r.Active("a"))

	_, err = r.Start(context.Background(), "a")
	require.NoError(t, err)
}

func TestRegistryCancelUnknownIDIsNoOp(t *testing.T) {
	r := NewRegistry()
	require.NotPanics(t, func() { r.Cancel("missing") })
}
