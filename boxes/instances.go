// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	"fmt"
	"log/slog"

	"cogentcore.org/boxes/gpu"
)

// InstanceStore holds the boxes to draw and the instance buffer
// with their packed [BoxRaw] forms.
type InstanceStore struct {
	// Label is the label of the instance buffer.
	Label string

	boxes  []Box
	raw    []BoxRaw
	buffer gpu.Buffer
}

// NewInstanceStore returns an empty store.
func NewInstanceStore() *InstanceStore {
	return &InstanceStore{Label: "Instance Buffer"}
}

// Upload packs the boxes and writes them to the instance buffer.
// The buffer is rebuilt when the number of boxes changes, and is
// otherwise overwritten in place through the queue. An empty list
// releases the buffer. On error the previous boxes and buffer are
// kept. Upload must not be called while a frame
// using the buffer is being recorded.
func (is *InstanceStore) Upload(dev gpu.Device, queue gpu.Queue, bs []Box) error {
	raw := PackBoxes(bs)
	if len(raw) == 0 {
		is.releaseBuffer()
		is.boxes, is.raw = nil, nil
		return nil
	}
	data := BoxRawBytes(raw)
	if is.buffer != nil && len(raw) == len(is.raw) {
		if err := queue.WriteBuffer(is.buffer, 0, data); err != nil {
			return fmt.Errorf("boxes: writing %s: %w", is.Label, err)
		}
	} else {
		// the old buffer and boxes stay in use if creation fails
		buf, err := dev.CreateBufferInit(&gpu.BufferInitDescriptor{
			Label:    is.Label,
			Contents: data,
			Usage:    gpu.BufferUsageVertex | gpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("boxes: creating %s: %w", is.Label, err)
		}
		is.releaseBuffer()
		is.buffer = buf
		slog.Debug("boxes: instance buffer created", "count", len(raw), "bytes", len(data))
	}
	is.boxes = append(is.boxes[:0], bs...)
	is.raw = raw
	return nil
}

// Count returns the number of instances.
func (is *InstanceStore) Count() int {
	return len(is.raw)
}

// Buffer returns the instance buffer, nil if there are no instances.
func (is *InstanceStore) Buffer() gpu.Buffer {
	return is.buffer
}

// Boxes returns a copy of the current boxes.
func (is *InstanceStore) Boxes() []Box {
	return append([]Box(nil), is.boxes...)
}

// Raw returns the packed boxes, in buffer order.
func (is *InstanceStore) Raw() []BoxRaw {
	return is.raw
}

func (is *InstanceStore) releaseBuffer() {
	if is.buffer != nil {
		is.buffer.Release()
		is.buffer = nil
	}
}

// Release releases the instance buffer.
func (is *InstanceStore) Release() {
	is.releaseBuffer()
	is.boxes, is.raw = nil, nil
}
