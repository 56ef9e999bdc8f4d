// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device uploads host buffers to GPU device buffers.
//
// An [Adapter] is the small set of device calls needed to create, write
// and destroy buffers. Two implementations are provided:
//
//   - [HALAdapter] talks to a gogpu/wgpu HAL device and queue, either
//     passed directly or taken from a gpucontext.DeviceProvider.
//   - [MemoryAdapter] keeps buffers in host memory, for tests and tools.
//
// A [Binding] ties a [buffer.Descriptor] to one device buffer and
// re-uploads it when the descriptor's version changes:
//
//	adapter := device.NewMemoryAdapter()
//	vb, err := device.NewBinding(adapter, vertices, "vertices")
//	if err != nil {
//	    return err
//	}
//	defer vb.Release()
//	if err := vb.Sync(); err != nil {
//	    return err
//	}
package device
