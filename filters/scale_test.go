package filters

import (
	"testing"

	"github.com/matryer/is"
	"github.com/richinsley/avgraph/frame"
)

func TestNearestResizeUpscalesPixels(t *testing.T) {
	is := is.New(t)

	src := frame.NewVideoFrame(2, 2, 0)
	// top-left red, top-right green, bottom-left blue, bottom-right white.
	setPixel(src, 0, 0, 255, 0, 0, 255)
	setPixel(src, 1, 0, 0, 255, 0, 255)
	setPixel(src, 0, 1, 0, 0, 255, 255)
	setPixel(src, 1, 1, 255, 255, 255, 255)

	dst := frame.NewVideoFrame(4, 4, 0)
	nearestResize(dst, src)

	is.Equal(getPixel(dst, 0, 0), [4]byte{255, 0, 0, 255})
	is.Equal(getPixel(dst, 3, 0), [4]byte{0, 255, 0, 255})
	is.Equal(getPixel(dst, 0, 3), [4]byte{0, 0, 255, 255})
	is.Equal(getPixel(dst, 3, 3), [4]byte{255, 255, 255, 255})
}

func TestNearestResizeNoopOnEmptySource(t *testing.T) {
	is := is.New(t)
	src := &frame.Frame{}
	dst := frame.NewVideoFrame(4, 4, 0)
	nearestResize(dst, src) // must not panic
	is.Equal(getPixel(dst, 0, 0), [4]byte{0, 0, 0, 0})
}

func setPixel(f *frame.Frame, x, y int, r, g, b, a byte) {
	stride := f.Linesize[0]
	off := y*stride + x*4
	copy(f.Data[0][off:off+4], []byte{r, g, b, a})
}

func getPixel(f *frame.Frame, x, y int) [4]byte {
	stride := f.Linesize[0]
	off := y*stride + x*4
	var p [4]byte
	copy(p[:], f.Data[0][off:off+4])
	return p
}
