//go:build opencl

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jgillich/go-opencl/cl"

	"instaferogram/internal/raster"
	"instaferogram/internal/scene"
	"instaferogram/internal/wavefield"
)

// verifyTolerance allows for float32 evaluation on the device.
const verifyTolerance = 3

const interferenceKernelSource = `
float3 hsv_to_rgb(float h, float s, float v)
{
    float3 whole;
    float3 k = fabs(fract(h + (float3)(1.0f, 2.0f / 3.0f, 1.0f / 3.0f), &whole) * 6.0f - 3.0f) - 1.0f;
    return v * mix((float3)(1.0f), clamp(k, 0.0f, 1.0f), s);
}

__kernel void interference(
    __global const float4* points,
    __global const float4* source_pos,
    __global const float2* source_amp,
    const int count,
    const float k,
    const float omega_t,
    const int plot_mode,
    const float brightness,
    const float max_amplitude,
    const float max_intensity,
    const int sky,
    __global uchar4* out)
{
    int idx = get_global_id(0);
    float4 p = points[idx];
    if (p.w == 0.0f) {
        out[idx] = (uchar4)((uchar)(sky & 0xff), (uchar)((sky >> 8) & 0xff), (uchar)((sky >> 16) & 0xff), (uchar)255);
        return;
    }
    float2 sum = (float2)(0.0f);
    for (int i = 0; i < count; i++) {
        float d = distance(p.xyz, source_pos[i].xyz);
        float c;
        float s = sincos(k * d - omega_t, &c);
        float2 a = source_amp[i];
        sum += (float2)(a.x * c - a.y * s, a.x * s + a.y * c) / d;
    }
    float hue = 0.5f + atan2(sum.y, sum.x) / (2.0f * M_PI_F);
    float intensity = dot(sum, sum);
    float3 rgb;
    if (plot_mode == 3) {
        float v = brightness * sum.x / max_amplitude;
        rgb = (float3)(v, 0.0f, -v);
    } else if (plot_mode == 2) {
        rgb = hsv_to_rgb(hue, 1.0f, 1.0f);
    } else if (plot_mode == 1) {
        rgb = hsv_to_rgb(hue, 1.0f, brightness * intensity / max_intensity);
    } else {
        rgb = (float3)(brightness * intensity / max_intensity);
    }
    rgb = clamp(rgb, 0.0f, 1.0f);
    out[idx] = (uchar4)(convert_uchar3_sat_rte(rgb * 255.0f), (uchar)255);
}`

// openCLBackend sums the sources on an OpenCL device. Surface points are
// found on the CPU and uploaded each frame; sources are uploaded only when
// they change.
type openCLBackend struct {
	context  *cl.Context
	queue    *cl.CommandQueue
	program  *cl.Program
	kernel   *cl.Kernel
	pointBuf *cl.MemObject
	posBuf   *cl.MemObject
	ampBuf   *cl.MemObject
	outBuf   *cl.MemObject

	width, height int
	deviceName    string
	points        *raster.Renderer
	pixels        []byte

	sourcesSynced    bool
	sourceGeneration uint64
	debugVerify      bool
}

func newOpenCLBackend(width, height, workers int) (fieldBackend, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	b := &openCLBackend{
		width:       width,
		height:      height,
		deviceName:  device.Name(),
		pixels:      make([]byte, width*height*4),
		debugVerify: *verifyOpenCLFlag,
	}
	if err := b.init(device); err != nil {
		b.Close()
		return nil, err
	}
	b.points = raster.New(width, height, workers)
	log.Printf("OpenCL device: %s", b.deviceName)
	return b, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// init creates the OpenCL objects. Whatever was created before a failure is
// released by Close.
func (b *openCLBackend) init(device *cl.Device) error {
	var err error
	if b.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	if b.queue, err = b.context.CreateCommandQueue(device, 0); err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if b.program, err = b.context.CreateProgramWithSource([]string{interferenceKernelSource}); err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := b.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	if b.kernel, err = b.program.CreateKernel("interference"); err != nil {
		return fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	f32 := int(unsafe.Sizeof(float32(0)))
	size := b.width * b.height
	if b.pointBuf, err = b.context.CreateEmptyBuffer(cl.MemReadOnly, size*4*f32); err != nil {
		return fmt.Errorf("allocating point buffer: %w", err)
	}
	if b.posBuf, err = b.context.CreateEmptyBuffer(cl.MemReadOnly, wavefield.MaxSources*4*f32); err != nil {
		return fmt.Errorf("allocating source position buffer: %w", err)
	}
	if b.ampBuf, err = b.context.CreateEmptyBuffer(cl.MemReadOnly, wavefield.MaxSources*2*f32); err != nil {
		return fmt.Errorf("allocating source amplitude buffer: %w", err)
	}
	if b.outBuf, err = b.context.CreateEmptyBuffer(cl.MemWriteOnly, size*4); err != nil {
		return fmt.Errorf("allocating output buffer: %w", err)
	}
	return nil
}

func (b *openCLBackend) Name() string { return "opencl" }

func (b *openCLBackend) Draw(screen *ebiten.Image, frame *frameInput) error {
	snap := frame.snap
	if !b.sourcesSynced || snap.SourceGeneration != b.sourceGeneration {
		if _, err := b.queue.EnqueueWriteBufferFloat32(b.posBuf, true, 0, snap.Sources.Float32Positions(4), nil); err != nil {
			return fmt.Errorf("writing source positions: %w", err)
		}
		if _, err := b.queue.EnqueueWriteBufferFloat32(b.ampBuf, true, 0, snap.Sources.Float32Amplitudes(), nil); err != nil {
			return fmt.Errorf("writing source amplitudes: %w", err)
		}
		b.sourcesSynced = true
		b.sourceGeneration = snap.SourceGeneration
	}

	points := b.points.Points(&frame.scene, &frame.view)
	if _, err := b.queue.EnqueueWriteBufferFloat32(b.pointBuf, true, 0, points, nil); err != nil {
		return fmt.Errorf("writing surface points: %w", err)
	}

	p := snap.Params
	sky := int32(scene.Sky.R) | int32(scene.Sky.G)<<8 | int32(scene.Sky.B)<<16
	if err := b.kernel.SetArgs(
		b.pointBuf,
		b.posBuf,
		b.ampBuf,
		int32(snap.Sources.Count),
		float32(p.Wavenumber),
		float32(wrapPhase(p.TimePhase)),
		int32(p.PlotMode),
		float32(p.Brightness),
		float32(p.MaxAmplitude),
		float32(p.MaxIntensity),
		sky,
		b.outBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := b.queue.EnqueueNDRangeKernel(b.kernel, nil, []int{b.width * b.height}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := b.queue.EnqueueReadBuffer(b.outBuf, true, 0, len(b.pixels), unsafe.Pointer(&b.pixels[0]), nil); err != nil {
		return fmt.Errorf("reading pixels: %w", err)
	}
	if b.debugVerify {
		if err := compareSampled(b.pixels, b.width, b.height, frame, verifyTolerance); err != nil {
			return err
		}
	}
	screen.WritePixels(b.pixels)
	return nil
}

func (b *openCLBackend) Close() {
	if b.points != nil {
		b.points.Close()
		b.points = nil
	}
	for _, buf := range []**cl.MemObject{&b.outBuf, &b.ampBuf, &b.posBuf, &b.pointBuf} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
	if b.kernel != nil {
		b.kernel.Release()
		b.kernel = nil
	}
	if b.program != nil {
		b.program.Release()
		b.program = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.context != nil {
		b.context.Release()
		b.context = nil
	}
}
