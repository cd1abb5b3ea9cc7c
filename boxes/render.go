// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	"fmt"
	"log/slog"

	"cogentcore.org/boxes/gpu"
)

// Render draws one frame: it acquires the surface texture, clears it,
// draws all instances with one indexed draw call, submits and presents.
// An outdated or lost surface is reconfigured and the frame skipped,
// and a timeout just skips the frame; both return nil. An out of memory
// error is returned and is fatal. Nothing is drawn before the surface
// is first configured.
func (st *State) Render() error {
	if !st.ctx.Configured() {
		return nil
	}
	if err := st.Update(); err != nil {
		return err
	}
	tex, err := st.ctx.CurrentTexture()
	if err != nil {
		return st.surfaceError(err)
	}
	defer tex.Release()
	view, err := tex.CreateView()
	if err != nil {
		return fmt.Errorf("boxes: creating texture view: %w", err)
	}
	defer view.Release()

	enc, err := st.ctx.Device.CreateCommandEncoder("Render Encoder")
	if err != nil {
		return fmt.Errorf("boxes: creating command encoder: %w", err)
	}
	defer enc.Release()
	rp := enc.BeginRenderPass(&gpu.RenderPassDescriptor{
		Label: "Render Pass",
		ColorAttachments: []gpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gpu.LoadOpClear,
			StoreOp:    gpu.StoreOpStore,
			ClearValue: st.clearColor,
		}},
	})
	st.draw(rp)
	rp.End()
	rp.Release() // must happen before Finish

	cmd, err := enc.Finish()
	if err != nil {
		return fmt.Errorf("boxes: finishing commands: %w", err)
	}
	st.ctx.Queue.Submit(cmd)
	cmd.Release()
	st.ctx.Surface.Present()
	st.frameCount++
	return nil
}

// draw records the bindings and the draw call, if there is anything to draw.
func (st *State) draw(rp gpu.RenderPass) {
	n := st.instances.Count()
	if n == 0 {
		return
	}
	rp.SetPipeline(st.pipeline.Pipeline)
	rp.SetBindGroup(0, st.binding.Group)
	rp.SetVertexBuffer(0, st.geometry.Vertices)
	rp.SetVertexBuffer(1, st.instances.Buffer())
	rp.SetIndexBuffer(st.geometry.Indices, st.geometry.IndexFormat)
	rp.DrawIndexed(st.geometry.NumIndices, uint32(n), 0, 0, 0)
}

// surfaceError handles a texture acquisition error, returning
// it only if it is fatal.
func (st *State) surfaceError(err error) error {
	se := gpu.ClassifySurfaceError(err)
	switch {
	case se.Fatal():
		slog.Error("boxes: surface out of memory", "err", se.Err)
		return fmt.Errorf("boxes: render: %w", se)
	case se.NeedsReconfigure():
		slog.Warn("boxes: surface needs reconfiguring, frame skipped", "err", se)
		st.ctx.Reconfigure()
	default:
		slog.Warn("boxes: surface timeout, frame skipped", "err", se)
	}
	return nil
}
