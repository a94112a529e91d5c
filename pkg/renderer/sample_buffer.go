package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// SampleBuffer holds the averaged radiance of every pixel. Row 0 is the top
// of the image.
type SampleBuffer struct {
	Width, Height int
	data          []core.Vec3
}

// NewSampleBuffer creates a black buffer
func NewSampleBuffer(width, height int) *SampleBuffer {
	b := &SampleBuffer{}
	b.Resize(width, height)
	return b
}

// Resize changes the buffer dimensions and clears it
func (b *SampleBuffer) Resize(width, height int) {
	b.Width, b.Height = max(0, width), max(0, height)
	b.data = make([]core.Vec3, b.Width*b.Height)
}

// Clear sets every pixel to black
func (b *SampleBuffer) Clear() {
	clear(b.data)
}

// Get returns the radiance stored for pixel (x, y)
func (b *SampleBuffer) Get(x, y int) core.Vec3 {
	return b.data[y*b.Width+x]
}

// Set stores the radiance of pixel (x, y)
func (b *SampleBuffer) Set(x, y int, radiance core.Vec3) {
	b.data[y*b.Width+x] = radiance
}

// LogAverageLuminance returns exp(mean(log(delta + L))) over all pixels,
// the scene key estimate used by ToneMap
func (b *SampleBuffer) LogAverageLuminance() float64 {
	if len(b.data) == 0 {
		return 0
	}
	const delta = 1e-7
	sum := 0.0
	for _, c := range b.data {
		sum += math.Log(delta + math.Max(0, c.Luminance()))
	}
	return math.Exp(sum / float64(len(b.data)))
}

// ToImage tone maps the buffer into an 8-bit image
func (b *SampleBuffer) ToImage(tm ToneMap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	avg := b.LogAverageLuminance()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetRGBA(x, y, tm.Color(b.Get(x, y), avg))
		}
	}
	return img
}

// SampleCountBuffer holds the number of samples spent on every pixel
type SampleCountBuffer struct {
	Width, Height int
	counts        []int
}

// NewSampleCountBuffer creates a zeroed buffer
func NewSampleCountBuffer(width, height int) *SampleCountBuffer {
	b := &SampleCountBuffer{}
	b.Resize(width, height)
	return b
}

// Resize changes the buffer dimensions and clears it
func (b *SampleCountBuffer) Resize(width, height int) {
	b.Width, b.Height = max(0, width), max(0, height)
	b.counts = make([]int, b.Width*b.Height)
}

// Clear zeroes every count
func (b *SampleCountBuffer) Clear() {
	clear(b.counts)
}

// Get returns the sample count of pixel (x, y)
func (b *SampleCountBuffer) Get(x, y int) int {
	return b.counts[y*b.Width+x]
}

// Set stores the sample count of pixel (x, y)
func (b *SampleCountBuffer) Set(x, y, n int) {
	b.counts[y*b.Width+x] = n
}

// RateImage renders the counts as a heat map: blue for pixels that
// converged early, red for pixels that used maxSamples
func (b *SampleCountBuffer) RateImage(maxSamples int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			rate := 0.0
			if maxSamples > 0 {
				rate = math.Min(1, float64(b.Get(x, y))/float64(maxSamples))
			}
			img.SetRGBA(x, y, rateColor(rate))
		}
	}
	return img
}

// rateColor maps [0,1] through blue, green and red
func rateColor(rate float64) color.RGBA {
	var r, g, bl float64
	if rate < 0.5 {
		g = rate * 2
		bl = 1 - g
	} else {
		r = (rate - 0.5) * 2
		g = 1 - r
	}
	return color.RGBA{R: toByte(r), G: toByte(g), B: toByte(bl), A: 255}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
