// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"
)

// MemoryStats contains host-side allocation statistics of a MemoryAdapter.
type MemoryStats struct {
	// Buffers is the number of live buffers.
	Buffers int

	// Bytes is the total size of live buffers.
	Bytes uint64

	// Writes is the number of WriteBuffer calls served.
	Writes uint64

	// BytesWritten is the total number of bytes written.
	BytesWritten uint64
}

// String returns a human-readable string of memory stats.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%d buffers, %d bytes, %d writes, %d bytes written]",
		s.Buffers, s.Bytes, s.Writes, s.BytesWritten)
}

type memoryBuffer struct {
	data  []byte
	usage gputypes.BufferUsage
	label string
}

// MemoryAdapter is an Adapter that keeps buffers in host memory. It is
// useful for tests, tools and headless pipelines that only need the bytes
// a device would receive.
//
// MemoryAdapter is safe for concurrent use.
type MemoryAdapter struct {
	mu      sync.RWMutex
	buffers map[BufferID]*memoryBuffer
	nextID  BufferID
	stats   MemoryStats
}

// NewMemoryAdapter returns an empty MemoryAdapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{buffers: make(map[BufferID]*memoryBuffer)}
}

// CreateBuffer implements Adapter. Sizes are aligned to 4 bytes.
func (m *MemoryAdapter) CreateBuffer(size int, usage gputypes.BufferUsage, label string) (BufferID, error) {
	if size < 0 {
		return InvalidID, fmt.Errorf("device: negative buffer size %d", size)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	n := alignSize(size)
	m.buffers[id] = &memoryBuffer{data: make([]byte, n), usage: usage, label: label}
	m.stats.Buffers++
	m.stats.Bytes += uint64(n)
	return id, nil
}

// DestroyBuffer implements Adapter.
func (m *MemoryAdapter) DestroyBuffer(id BufferID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.buffers[id]
	if !ok {
		return
	}
	delete(m.buffers, id)
	m.stats.Buffers--
	m.stats.Bytes -= uint64(len(buf.data))
}

// WriteBuffer implements Adapter.
func (m *MemoryAdapter) WriteBuffer(id BufferID, offset uint64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.buffers[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	if offset+uint64(len(data)) > uint64(len(buf.data)) {
		return fmt.Errorf("%w: %d bytes at %d into %d", ErrWriteOutOfBounds, len(data), offset, len(buf.data))
	}
	copy(buf.data[offset:], data)
	m.stats.Writes++
	m.stats.BytesWritten += uint64(len(data))
	return nil
}

// ReadBuffer returns a copy of size bytes of the buffer starting at offset.
func (m *MemoryAdapter) ReadBuffer(id BufferID, offset, size uint64) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	if offset+size > uint64(len(buf.data)) {
		return nil, fmt.Errorf("%w: read of %d bytes at %d from %d", ErrWriteOutOfBounds, size, offset, len(buf.data))
	}
	return slices.Clone(buf.data[offset : offset+size]), nil
}

// BufferInfo returns the allocated size, usage and label of a buffer.
func (m *MemoryAdapter) BufferInfo(id BufferID) (size int, usage gputypes.BufferUsage, label string, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.buffers[id]
	if !ok {
		return 0, 0, "", fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	return len(buf.data), buf.usage, buf.label, nil
}

// Stats returns current statistics.
func (m *MemoryAdapter) Stats() MemoryStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

var _ Adapter = (*MemoryAdapter)(nil)
