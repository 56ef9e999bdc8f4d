// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/buffer"
)

// HALAdapter is an Adapter backed by a gogpu/wgpu HAL device and queue.
// The adapter does not own the device: destroying it is up to the caller.
//
// HALAdapter is safe for concurrent use.
type HALAdapter struct {
	mu      sync.Mutex
	device  hal.Device
	queue   hal.Queue
	buffers map[BufferID]halBuffer
	nextID  BufferID
}

type halBuffer struct {
	buf  hal.Buffer
	size uint64
}

// NewHALAdapter wraps an open HAL device and its queue.
func NewHALAdapter(device hal.Device, queue hal.Queue) *HALAdapter {
	return &HALAdapter{
		device:  device,
		queue:   queue,
		buffers: make(map[BufferID]halBuffer),
	}
}

// FromProvider builds a HALAdapter from a host-provided device, such as a
// gogpu application context. The provider must also implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func FromProvider(provider gpucontext.DeviceProvider) (*HALAdapter, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := any(provider).(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewHALAdapter(device, queue), nil
}

// CreateBuffer implements Adapter. Sizes are aligned to 4 bytes.
func (a *HALAdapter) CreateBuffer(size int, usage gputypes.BufferUsage, label string) (BufferID, error) {
	if size < 0 {
		return InvalidID, fmt.Errorf("device: negative buffer size %d", size)
	}
	n := uint64(alignSize(size))
	buf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  n,
		Usage: usage,
	})
	if err != nil {
		return InvalidID, fmt.Errorf("create %s: %w", label, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	a.buffers[a.nextID] = halBuffer{buf: buf, size: n}
	buffer.Logger().Debug("device: buffer created", "label", label, "size", n)
	return a.nextID, nil
}

// DestroyBuffer implements Adapter.
func (a *HALAdapter) DestroyBuffer(id BufferID) {
	a.mu.Lock()
	b, ok := a.buffers[id]
	delete(a.buffers, id)
	a.mu.Unlock()
	if ok {
		a.device.DestroyBuffer(b.buf)
	}
}

// WriteBuffer implements Adapter. Data whose length is not a multiple of
// 4 is padded with zeros, as the queue requires aligned writes.
func (a *HALAdapter) WriteBuffer(id BufferID, offset uint64, data []byte) error {
	a.mu.Lock()
	b, ok := a.buffers[id]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	if n := alignSize(len(data)); n != len(data) {
		padded := make([]byte, n)
		copy(padded, data)
		data = padded
	}
	if offset+uint64(len(data)) > b.size {
		return fmt.Errorf("%w: %d bytes at %d into %d", ErrWriteOutOfBounds, len(data), offset, b.size)
	}
	a.queue.WriteBuffer(b.buf, offset, data)
	return nil
}

var _ Adapter = (*HALAdapter)(nil)
