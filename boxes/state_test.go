// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	"errors"
	"image"
	"strings"
	"testing"

	"cogentcore.org/boxes/gpu"
	"cogentcore.org/boxes/gpu/gputest"
	"cogentcore.org/boxes/math32"
	"cogentcore.org/boxes/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRig struct {
	inst *gputest.Instance
	sf   *gputest.Surface
	dev  *gputest.Device
	ctx  *gpu.Context
}

func newRig(t *testing.T, size image.Point) *testRig {
	t.Helper()
	inst, sf := gputest.NewInstance()
	ctx, err := gpu.NewContext(inst, sf, size, nil)
	require.NoError(t, err)
	return &testRig{inst: inst, sf: sf, dev: inst.Adapter.Device, ctx: ctx}
}

func newTestState(t *testing.T, opts *Options) (*State, *testRig) {
	t.Helper()
	rg := newRig(t, image.Point{800, 600})
	st, err := New(rg.ctx, opts)
	require.NoError(t, err)
	return st, rg
}

func (rg *testRig) buffer(label string) *gputest.Buffer {
	for _, b := range rg.dev.LiveBuffers() {
		if b.Label == label {
			return b
		}
	}
	return nil
}

func TestRenderSingleBox(t *testing.T) {
	st, rg := newTestState(t, nil)
	assert.Equal(t, 1, st.InstanceCount())
	require.NoError(t, st.Render())

	qu := rg.dev.QueueValue
	draws := qu.Draws()
	require.Len(t, draws, 1)
	dc := draws[0]
	assert.Equal(t, uint32(6), dc.IndexCount)
	assert.Equal(t, uint32(1), dc.InstanceCount)
	assert.Equal(t, uint32(0), dc.FirstIndex)
	assert.Equal(t, uint32(0), dc.FirstInstance)
	assert.Equal(t, gpu.IndexFormatUint16, dc.IndexFormat)
	assert.Equal(t, st.pipeline.Pipeline, dc.Pipeline)
	assert.Equal(t, st.binding.Group, dc.BindGroups[0])
	assert.Equal(t, st.geometry.Vertices, dc.VertexBuffers[0])
	assert.Equal(t, st.instances.Buffer(), dc.VertexBuffers[1])
	assert.Equal(t, st.geometry.Indices, dc.IndexBuffer)

	passes := qu.Passes()
	require.Len(t, passes, 1)
	rp := passes[0]
	assert.Equal(t, []string{"SetPipeline", "SetBindGroup", "SetVertexBuffer", "SetVertexBuffer", "SetIndexBuffer", "DrawIndexed", "End"}, rp.Commands)
	assert.True(t, rp.Released)
	require.Len(t, rp.Desc.ColorAttachments, 1)
	ca := rp.Desc.ColorAttachments[0]
	assert.Equal(t, gpu.LoadOpClear, ca.LoadOp)
	assert.Equal(t, gpu.StoreOpStore, ca.StoreOp)
	assert.InDelta(t, 0.01298, ca.ClearValue.R, 1e-4)
	assert.InDelta(t, 0.02732, ca.ClearValue.B, 1e-4)
	assert.Equal(t, 1.0, ca.ClearValue.A)

	// present only after submit
	lg := rg.inst.Log
	assert.Less(t, lg.Index("submit 1"), lg.Index("present"))
	assert.Equal(t, 1, rg.sf.Presented)
	assert.Equal(t, 1, st.FrameCount())
	require.Len(t, rg.sf.Textures, 1)
	assert.True(t, rg.sf.Textures[0].Released)
	assert.True(t, rg.sf.Textures[0].Views[0].Released)
	assert.True(t, rg.dev.Encoders[0].Finished)
	assert.True(t, rg.dev.Encoders[0].Released)
}

func TestNewResources(t *testing.T) {
	st, rg := newTestState(t, nil)

	vb := rg.buffer("Viewport Buffer")
	require.NotNil(t, vb)
	assert.Equal(t, gpu.BufferUsageUniform|gpu.BufferUsageCopyDst, vb.Usage)
	vu := st.Uniform()
	assert.Equal(t, vu.Bytes(), vb.Data)
	assert.InDelta(t, 800.0/600.0, st.Viewport().Aspect, 1e-6)

	ib := rg.buffer("Instance Buffer")
	require.NotNil(t, ib)
	assert.True(t, ib.Usage.Has(gpu.BufferUsageVertex))
	assert.Equal(t, uint64(BoxRawSize), ib.Size())
	assert.Equal(t, BoxRawBytes([]BoxRaw{DefaultBox().ToRaw()}), ib.Data)

	assert.Equal(t, VerticesBytes(QuadVertices), rg.buffer("Vertex Buffer").Data)
	assert.Equal(t, IndicesBytes(QuadIndices), rg.buffer("Index Buffer").Data)

	require.Len(t, rg.dev.BindGroupLayouts, 1)
	bgl := rg.dev.BindGroupLayouts[0].Desc
	assert.Equal(t, "viewport_bind_group_layout", bgl.Label)
	require.Len(t, bgl.Entries, 1)
	assert.Equal(t, gpu.ShaderStageVertex, bgl.Entries[0].Visibility)
	assert.Equal(t, gpu.BufferBindingTypeUniform, bgl.Entries[0].Buffer.Type)
	require.Len(t, rg.dev.BindGroups, 1)
	assert.Equal(t, "camera_bind_group", rg.dev.BindGroups[0].Desc.Label)

	require.Len(t, rg.dev.ShaderModules, 1)
	assert.Equal(t, ShaderSource, rg.dev.ShaderModules[0].Desc.WGSL)
	assert.Empty(t, rg.dev.ShaderModules[0].Desc.SPIRV)

	require.Len(t, rg.dev.Pipelines, 1)
	pd := rg.dev.Pipelines[0].Desc
	assert.Equal(t, "Render Pipeline", pd.Label)
	assert.Equal(t, VertexEntry, pd.Vertex.EntryPoint)
	assert.Equal(t, VertexBuffers(), pd.Vertex.Buffers)
	require.NotNil(t, pd.Fragment)
	assert.Equal(t, FragmentEntry, pd.Fragment.EntryPoint)
	require.Len(t, pd.Fragment.Targets, 1)
	assert.Equal(t, rg.ctx.Format(), pd.Fragment.Targets[0].Format)
	assert.Equal(t, gpu.BlendStateReplace, *pd.Fragment.Targets[0].Blend)
	assert.Equal(t, gpu.ColorWriteMaskAll, pd.Fragment.Targets[0].WriteMask)
	assert.Equal(t, gpu.PrimitiveState{Topology: gpu.PrimitiveTopologyTriangleList, FrontFace: gpu.FrontFaceCCW, CullMode: gpu.CullModeBack}, pd.Primitive)
	assert.Nil(t, pd.DepthStencil)
	assert.Equal(t, uint32(1), pd.Multisample.Count)
	assert.Equal(t, []gpu.BindGroupLayout{st.binding.Layout}, rg.dev.PipelineLayouts[0].Desc.BindGroupLayouts)
}

func TestResize(t *testing.T) {
	st, rg := newTestState(t, nil)
	sizes := []image.Point{{1024, 768}, {1, 1}, {1920, 1080}, {300, 900}}
	for _, sz := range sizes {
		require.True(t, st.Resize(sz.X, sz.Y))
		cfg := rg.ctx.Config()
		assert.Equal(t, uint32(sz.X), cfg.Width)
		assert.Equal(t, uint32(sz.Y), cfg.Height)
		assert.InDelta(t, float32(sz.X)/float32(sz.Y), st.Viewport().Aspect, 1e-6)
		assert.InDelta(t, rg.ctx.Aspect(), st.Viewport().Aspect, 1e-6)
		last, _ := rg.sf.LastConfig()
		assert.Equal(t, cfg, last)

		require.NoError(t, st.Update())
		vu := st.Uniform()
		assert.Equal(t, vu.Bytes(), rg.buffer("Viewport Buffer").Data)
	}
}

func TestResizeZero(t *testing.T) {
	st, rg := newTestState(t, nil)
	cfg := rg.ctx.Config()
	vp := st.Viewport()
	n := len(rg.sf.Configs)
	writes := len(rg.dev.QueueValue.Writes)

	assert.False(t, st.Resize(0, 600))
	assert.False(t, st.Resize(800, 0))
	assert.False(t, st.Resize(0, 0))
	assert.Equal(t, cfg, rg.ctx.Config())
	assert.Equal(t, vp, st.Viewport())
	assert.Len(t, rg.sf.Configs, n)
	require.NoError(t, st.Update())
	assert.Len(t, rg.dev.QueueValue.Writes, writes)
}

func TestDeferredConfigure(t *testing.T) {
	rg := newRig(t, image.Point{})
	st, err := New(rg.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, float32(1), st.Viewport().Aspect)

	require.NoError(t, st.Render())
	assert.Empty(t, rg.sf.Textures)
	assert.Equal(t, 0, st.FrameCount())

	require.True(t, st.Resize(400, 200))
	require.NoError(t, st.Render())
	assert.Equal(t, 1, st.FrameCount())
	assert.Equal(t, float32(2), st.Viewport().Aspect)
}

func TestSetViewport(t *testing.T) {
	st, rg := newTestState(t, nil)
	vp := st.Viewport()
	vp.Eye = math32.Vec3(3, 4, 10)
	require.NoError(t, st.SetViewport(vp))

	// uploaded before the next frame
	require.NoError(t, st.Render())
	want := vp.BuildViewProjectionMatrix()
	vu := st.Uniform()
	assert.Equal(t, want, vu.ViewProj)
	assert.Equal(t, vu.Bytes(), rg.buffer("Viewport Buffer").Data)
	writes := rg.dev.QueueValue.Writes
	require.NotEmpty(t, writes)
	assert.Equal(t, "Viewport Buffer", writes[len(writes)-1].Buffer.Label)

	// nothing to upload
	n := len(rg.dev.QueueValue.Writes)
	require.NoError(t, st.Update())
	assert.Len(t, rg.dev.QueueValue.Writes, n)

	bad := vp
	bad.Znear = -1
	assert.ErrorIs(t, st.SetViewport(bad), ErrInvalidViewport)
	assert.Equal(t, vp, st.Viewport())
}

func TestInstanceStore(t *testing.T) {
	st, rg := newTestState(t, nil)
	first := st.Instances().Buffer()
	assert.Equal(t, uint64(BoxRawSize), first.Size())

	// same count overwrites in place
	moved := DefaultBox()
	moved.Position = math32.Vec3(1, 0, 0)
	require.NoError(t, st.SetInstances([]Box{moved}))
	assert.Same(t, first, st.Instances().Buffer())
	assert.Equal(t, 1, st.InstanceCount())
	writes := rg.dev.QueueValue.Writes
	require.NotEmpty(t, writes)
	last := writes[len(writes)-1]
	assert.Equal(t, "Instance Buffer", last.Buffer.Label)
	assert.Equal(t, BoxRawBytes([]BoxRaw{moved.ToRaw()}), last.Data)
	require.NoError(t, st.SetInstances(st.Instances().Boxes()))
	assert.Same(t, first, st.Instances().Buffer())
	assert.Equal(t, []Box{moved}, st.Instances().Boxes())

	// count change rebuilds
	bs := []Box{DefaultBox(), moved, {Position: math32.Vec3(0, 1, 0), Rotation: math32.QuatIdentity(), CornerRadius: 0.1}}
	require.NoError(t, st.SetInstances(bs))
	assert.Equal(t, 3, st.InstanceCount())
	assert.True(t, first.(*gputest.Buffer).Released)
	assert.Equal(t, uint64(3*BoxRawSize), st.Instances().Buffer().Size())
	assert.Len(t, st.Instances().Raw(), 3)
	require.NoError(t, st.Render())
	draws := rg.dev.QueueValue.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, uint32(3), draws[0].InstanceCount)
	assert.Equal(t, st.Instances().Buffer(), draws[0].VertexBuffers[1])

	// re-uploading keeps the count
	require.NoError(t, st.SetInstances(bs))
	require.NoError(t, st.Render())
	draws = rg.dev.QueueValue.Draws()
	require.Len(t, draws, 2)
	assert.Equal(t, uint32(3), draws[1].InstanceCount)
	assert.Equal(t, uint64(st.InstanceCount()*BoxRawSize), st.Instances().Buffer().Size())

	// empty list skips the draw but still clears and presents
	require.NoError(t, st.SetInstances(nil))
	assert.Equal(t, 0, st.InstanceCount())
	assert.Nil(t, st.Instances().Buffer())
	require.NoError(t, st.Render())
	assert.Len(t, rg.dev.QueueValue.Draws(), 2)
	passes := rg.dev.QueueValue.Passes()
	assert.Equal(t, []string{"End"}, passes[len(passes)-1].Commands)
	assert.Equal(t, 3, rg.sf.Presented)
	assert.Empty(t, func() []string {
		var live []string
		for _, b := range rg.dev.LiveBuffers() {
			if b.Label == "Instance Buffer" {
				live = append(live, b.Label)
			}
		}
		return live
	}())
}

func TestInstanceStoreCreateError(t *testing.T) {
	st, rg := newTestState(t, nil)
	first := st.Instances().Buffer()
	rg.dev.BufferError = errors.New("out of memory")

	err := st.SetInstances([]Box{DefaultBox(), DefaultBox()})
	assert.ErrorContains(t, err, "out of memory")
	assert.Equal(t, 1, st.InstanceCount())
	assert.Same(t, first, st.Instances().Buffer())
	assert.False(t, first.(*gputest.Buffer).Released)
	assert.Equal(t, uint64(st.InstanceCount()*BoxRawSize), st.Instances().Buffer().Size())
	assert.Equal(t, []Box{DefaultBox()}, st.Instances().Boxes())

	require.NoError(t, st.Render())
	draws := rg.dev.QueueValue.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, uint32(1), draws[0].InstanceCount)
	assert.Same(t, first, draws[0].VertexBuffers[1])

	rg.dev.BufferError = nil
	require.NoError(t, st.SetInstances([]Box{DefaultBox(), DefaultBox()}))
	assert.Equal(t, 2, st.InstanceCount())
	assert.True(t, first.(*gputest.Buffer).Released)
}

func TestRenderSurfaceErrors(t *testing.T) {
	st, rg := newTestState(t, nil)
	n := len(rg.sf.Configs)
	rg.sf.AcquireErrors = []error{
		errors.New("Error getting current texture: Outdated"),
		errors.New("Error getting current texture: Lost"),
		errors.New("Error getting current texture: Timeout"),
		nil,
		errors.New("Error getting current texture: OutOfMemory"),
	}

	require.NoError(t, st.Render())
	assert.Len(t, rg.sf.Configs, n+1)
	require.NoError(t, st.Render())
	assert.Len(t, rg.sf.Configs, n+2)
	last, _ := rg.sf.LastConfig()
	assert.Equal(t, rg.ctx.Config(), last)

	require.NoError(t, st.Render())
	assert.Len(t, rg.sf.Configs, n+2)
	assert.Equal(t, 0, rg.sf.Presented)
	assert.Empty(t, rg.dev.QueueValue.Submitted)

	require.NoError(t, st.Render())
	assert.Equal(t, 1, rg.sf.Presented)

	err := st.Render()
	require.Error(t, err)
	assert.ErrorIs(t, err, gpu.ErrOutOfMemory)
	var se *gpu.SurfaceError
	require.ErrorAs(t, err, &se)
	assert.True(t, se.Fatal())
	assert.Equal(t, 1, rg.sf.Presented)
	assert.Equal(t, 1, st.FrameCount())
}

func TestNewErrors(t *testing.T) {
	rg := newRig(t, image.Point{800, 600})
	rg.dev.ShaderError = errors.New("bad shader")
	_, err := New(rg.ctx, nil)
	assert.ErrorContains(t, err, "bad shader")
	assert.Empty(t, rg.dev.LiveBuffers())
	assert.True(t, rg.dev.BindGroups[0].Released)
	assert.True(t, rg.dev.BindGroupLayouts[0].Released)
	assert.False(t, rg.dev.Released)

	rg = newRig(t, image.Point{800, 600})
	rg.dev.PipelineError = errors.New("validation")
	_, err = New(rg.ctx, nil)
	assert.ErrorContains(t, err, "validation")
	assert.True(t, rg.dev.ShaderModules[0].Released)
	assert.True(t, rg.dev.PipelineLayouts[0].Released)
	assert.Empty(t, rg.dev.LiveBuffers())

	rg = newRig(t, image.Point{800, 600})
	vp := DefaultViewport(1)
	vp.Zfar = 0.01
	_, err = New(rg.ctx, &Options{Viewport: &vp})
	assert.ErrorIs(t, err, ErrInvalidViewport)
	assert.Empty(t, rg.dev.Buffers)
}

func TestNewShaderMismatch(t *testing.T) {
	src := strings.Replace(ShaderSource, "@location(6) corner_radius: f32", "@location(6) corner_radius: vec2<f32>", 1)
	require.NotEqual(t, ShaderSource, src)
	assert.ErrorIs(t, CheckShader(src), shader.ErrLayoutMismatch)

	src = strings.Replace(ShaderSource, "fn fs_main", "fn fs_other", 1)
	assert.ErrorIs(t, CheckShader(src), shader.ErrEntryPointNotFound)

	rg := newRig(t, image.Point{8, 8})
	_, err := NewPipeline(rg.dev, strings.Replace(ShaderSource, "@location(2) model_0", "@location(7) model_0", 1), shader.Native, nil, rg.ctx.Format())
	assert.ErrorIs(t, err, shader.ErrLayoutMismatch)
	assert.Empty(t, rg.dev.ShaderModules)
}

func TestOptions(t *testing.T) {
	vp := DefaultViewport(3)
	vp.Fovy = 60
	clr := gpu.Color{R: 1, A: 1}
	bs := []Box{DefaultBox(), DefaultBox()}
	st, rg := newTestState(t, &Options{Viewport: &vp, Instances: bs, ClearColor: &clr})
	want := vp
	want.Aspect = 800.0 / 600.0
	assert.Equal(t, want, st.Viewport())
	assert.Equal(t, 2, st.InstanceCount())
	require.NoError(t, st.Render())
	assert.Equal(t, clr, rg.dev.QueueValue.Passes()[0].Desc.ColorAttachments[0].ClearValue)
	assert.False(t, st.Input(Event{Type: KeyEvent, Code: 32, Action: 1}))
	assert.False(t, st.Input(Event{Type: MouseMoveEvent, X: 10, Y: 20}))
}

func TestNewViewportAspect(t *testing.T) {
	rg := newRig(t, image.Point{1000, 500})
	vp := DefaultViewport(800.0 / 600.0)
	st, err := New(rg.ctx, &Options{Viewport: &vp})
	require.NoError(t, err)
	assert.Equal(t, rg.ctx.Aspect(), st.Viewport().Aspect)
	assert.Equal(t, float32(2), st.Viewport().Aspect)
	want := vp
	want.Aspect = 2
	assert.Equal(t, want.BuildViewProjectionMatrix(), st.Uniform().ViewProj)

	// an unconfigured surface keeps the given aspect until the first resize
	rg = newRig(t, image.Point{})
	st, err = New(rg.ctx, &Options{Viewport: &vp})
	require.NoError(t, err)
	assert.Equal(t, vp.Aspect, st.Viewport().Aspect)
	assert.True(t, st.Resize(300, 100))
	assert.Equal(t, float32(3), st.Viewport().Aspect)
}

func TestRelease(t *testing.T) {
	st, rg := newTestState(t, nil)
	require.NoError(t, st.Render())
	st.Release()
	assert.Empty(t, rg.dev.LiveBuffers())

	lg := rg.inst.Log
	order := []string{
		"release buffer Instance Buffer",
		"release buffer Index Buffer",
		"release buffer Vertex Buffer",
		"release pipeline Render Pipeline",
		"release pipeline layout Render Pipeline Layout",
		"release shader Shader",
		"release bind group camera_bind_group",
		"release bind group layout viewport_bind_group_layout",
		"release buffer Viewport Buffer",
		"release device",
		"release adapter",
		"release surface",
		"release instance",
	}
	prev := -1
	for _, ev := range order {
		i := lg.Index(ev)
		require.GreaterOrEqual(t, i, 0, ev)
		assert.Greater(t, i, prev, "%s out of order: %v", ev, lg.Events)
		prev = i
	}
	assert.Nil(t, st.Context())
}
