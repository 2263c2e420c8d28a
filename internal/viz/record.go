package viz

import (
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
)

const (
	charW = 8
	charH = 16
)

// Recorder rasterizes canvas frames for a GIF capture.
type Recorder struct {
	frames []*image.Paletted
}

func NewRecorder() *Recorder {
	return &Recorder{frames: make([]*image.Paletted, 0)}
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	cw, ch := c.SubSize()
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	return gif.EncodeAll(w, &anim)
}

// Save writes the capture to path. An empty capture writes nothing.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Encode(f)
}
