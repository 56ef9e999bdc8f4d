// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/buffer"
)

// Binding keeps one device buffer in step with a host buffer.
//
// The device buffer is created lazily on the first Sync and recreated when
// the host content outgrows it. Content is re-uploaded whenever the
// descriptor's Version differs from the version last uploaded.
//
// Binding is safe for concurrent use, but the descriptor it reads is not:
// callers must not mutate the host buffer while Sync runs.
type Binding struct {
	mu       sync.Mutex
	adapter  Adapter
	desc     buffer.Descriptor
	label    string
	id       BufferID
	size     int
	version  uint64
	synced   bool
	released bool
}

// NewBinding binds desc to a device buffer created through adapter.
// No device call is made until Sync.
func NewBinding(adapter Adapter, desc buffer.Descriptor, label string) (*Binding, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	return &Binding{adapter: adapter, desc: desc, label: label}, nil
}

// Usage returns the WebGPU usage flags derived from the descriptor target.
func (b *Binding) Usage() gputypes.BufferUsage {
	return b.desc.Target().BufferUsage()
}

// Synchronized reports whether the device buffer holds the current
// content of the descriptor.
func (b *Binding) Synchronized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.synced && !b.released && b.version == b.desc.Version()
}

// Size returns the allocated size of the device buffer in bytes, or 0
// before the first upload.
func (b *Binding) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// ID returns the device buffer handle, or InvalidID before the first
// upload.
func (b *Binding) ID() BufferID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id
}

// Invalidate forces the next Sync to upload even if the version is
// unchanged.
func (b *Binding) Invalidate() {
	b.mu.Lock()
	b.synced = false
	b.mu.Unlock()
}

// Sync uploads the content in use, [0, ByteLength), when it is out of date.
// An empty descriptor allocates nothing and is considered synchronized.
func (b *Binding) Sync() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return ErrReleased
	}
	version := b.desc.Version()
	if b.synced && b.version == version {
		return nil
	}

	n := b.desc.ByteLength()
	if n == 0 {
		b.version = version
		b.synced = true
		return nil
	}
	if n > b.size {
		if err := b.allocate(n); err != nil {
			return err
		}
	}
	if err := b.adapter.WriteBuffer(b.id, 0, b.desc.Bytes()[:n]); err != nil {
		return fmt.Errorf("upload %s: %w", b.label, err)
	}
	b.version = version
	b.synced = true
	buffer.Logger().Debug("device: buffer synced", "label", b.label, "bytes", n, "version", version)
	return nil
}

// allocate replaces the device buffer with one of n bytes.
func (b *Binding) allocate(n int) error {
	if b.id != InvalidID {
		b.adapter.DestroyBuffer(b.id)
		b.id, b.size = InvalidID, 0
	}
	id, err := b.adapter.CreateBuffer(n, b.desc.Target().BufferUsage(), b.label)
	if err != nil {
		return err
	}
	b.id, b.size = id, alignSize(n)
	return nil
}

// Release destroys the device buffer. Further Sync calls return
// ErrReleased; Release itself is idempotent.
func (b *Binding) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return
	}
	if b.id != InvalidID {
		b.adapter.DestroyBuffer(b.id)
	}
	b.id, b.size = InvalidID, 0
	b.synced = false
	b.released = true
}
