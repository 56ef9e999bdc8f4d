// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Device errors.
var (
	// ErrReleased is returned when using a binding after Release.
	ErrReleased = errors.New("device: binding has been released")

	// ErrNilDescriptor is returned when binding a nil descriptor.
	ErrNilDescriptor = errors.New("device: descriptor is nil")

	// ErrNilAdapter is returned when binding without an adapter.
	ErrNilAdapter = errors.New("device: adapter is nil")

	// ErrUnknownBuffer is returned for buffer IDs an adapter did not create
	// or has already destroyed.
	ErrUnknownBuffer = errors.New("device: unknown buffer")

	// ErrWriteOutOfBounds is returned when a write does not fit the buffer.
	ErrWriteOutOfBounds = errors.New("device: write out of buffer bounds")

	// ErrNoHAL is returned when a provider does not expose HAL types.
	ErrNoHAL = errors.New("device: provider does not expose HAL types")
)

// BufferID is an opaque handle to a device buffer.
type BufferID uint64

// InvalidID is the zero value, representing no buffer.
const InvalidID BufferID = 0

// Adapter abstracts the device calls a Binding needs. Implementations
// must be safe for concurrent use, since one device usually serves many
// bindings.
//
// Resource lifecycle:
//   - Buffers are created via CreateBuffer
//   - Buffers must be explicitly destroyed via DestroyBuffer
//   - IDs become invalid after destruction and are never reused
type Adapter interface {
	// CreateBuffer creates a device buffer of at least size bytes.
	CreateBuffer(size int, usage gputypes.BufferUsage, label string) (BufferID, error)

	// DestroyBuffer releases a device buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// WriteBuffer copies data into the buffer starting at offset.
	WriteBuffer(id BufferID, offset uint64, data []byte) error
}

// copyBufferAlignment is the WebGPU alignment for buffer sizes and
// write lengths.
const copyBufferAlignment = 4

// alignSize rounds n up to the copy alignment.
func alignSize(n int) int {
	return (n + copyBufferAlignment - 1) &^ (copyBufferAlignment - 1)
}
