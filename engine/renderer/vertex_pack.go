package renderer

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-pcv/engine/scene"
)

const (
	// pointVertexStride is position (float32x3, 12 bytes) followed by color (unorm8x4, 4 bytes).
	pointVertexStride = 16

	// packChunkPoints is the smallest number of points handed to one pack task.
	packChunkPoints = 1 << 16

	// packMaxTasks keeps one pack within the worker pool's queue.
	packMaxTasks = 256
)

// packPoints interleaves scene positions and colors into the GPU vertex layout. Scenes
// without colors get scene.FallbackColor. Large scenes are split into chunks packed on the
// worker pool; a nil pool packs on the calling goroutine.
//
// Parameters:
//   - s: the scene to pack
//   - pool: the worker pool to spread chunks across, or nil
//
// Returns:
//   - []byte: PointCount × pointVertexStride bytes
func packPoints(s *scene.Scene, pool worker.DynamicWorkerPool) []byte {
	n := int(s.PointCount)
	out := make([]byte, n*pointVertexStride)
	if n == 0 {
		return out
	}

	chunk := max(packChunkPoints, (n+packMaxTasks-1)/packMaxTasks)
	if pool == nil || n <= chunk {
		packRange(out, s, 0, n)
		return out
	}

	// Chunks write disjoint byte ranges of out, so tasks share it without locking.
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < n; start += chunk {
		lo, hi := start, min(start+chunk, n)
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				packRange(out, s, lo, hi)
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
	return out
}

// packRange writes vertices [lo, hi) of s into out.
func packRange(out []byte, s *scene.Scene, lo, hi int) {
	hasColor := s.HasColor()
	for i := lo; i < hi; i++ {
		v := out[i*pointVertexStride : (i+1)*pointVertexStride]
		binary.LittleEndian.PutUint32(v[0:], math.Float32bits(s.Positions[i*3]))
		binary.LittleEndian.PutUint32(v[4:], math.Float32bits(s.Positions[i*3+1]))
		binary.LittleEndian.PutUint32(v[8:], math.Float32bits(s.Positions[i*3+2]))
		if hasColor {
			copy(v[12:15], s.Colors[i*3:i*3+3])
		} else {
			copy(v[12:15], scene.FallbackColor[:])
		}
		v[15] = 0xFF
	}
}
