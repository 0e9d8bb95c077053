package view

import (
	"image"

	"github.com/soocke/facelog-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Preview is the single image area used by both the live viewfinder and the
// reviewed photo.
type Preview interface {
	Show(png []byte)
	Reset()
}

type preview struct {
	label     *LabelWidget
	prevPhoto *Img // last Tk photo image instance
	w, h      int
}

// NewPreview creates the preview label and grids it at row spanning cols columns.
func NewPreview(row, cols, w, h int) Preview {
	if w < 50 {
		w = 50
	}
	if h < 50 {
		h = 50
	}
	p := &preview{w: w, h: h}
	p.prevPhoto = NewPhoto(Data(p.placeholder()))
	p.label = Label(Image(p.prevPhoto), Borderwidth(1), Relief("sunken"))
	Grid(p.label, Row(row), Column(0), Columnspan(cols), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return p
}

func (p *preview) placeholder() []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, p.w, p.h)))
}

// Show replaces the displayed image. Empty data resets to the placeholder.
func (p *preview) Show(png []byte) {
	if p == nil || p.label == nil {
		return
	}
	if len(png) == 0 {
		p.Reset()
		return
	}
	p.replace(png)
}

func (p *preview) Reset() {
	if p == nil || p.label == nil {
		return
	}
	p.replace(p.placeholder())
}

// replace disposes the previous photo so obsolete pixel buffers are not retained.
func (p *preview) replace(png []byte) {
	if p.prevPhoto != nil {
		p.prevPhoto.Delete()
	}
	p.prevPhoto = NewPhoto(Data(png))
	p.label.Configure(Image(p.prevPhoto))
}
