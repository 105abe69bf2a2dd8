package vlc

import "fmt"

// ScaleMode decides how SizedBufferFormat maps the source size onto a
// requested size.
type ScaleMode int

const (
	// ScaleStretch renders at exactly the requested size (may distort).
	ScaleStretch ScaleMode = iota
	// ScaleFit renders at the largest size within the requested one that
	// keeps the source aspect ratio.
	ScaleFit
)

func (m ScaleMode) String() string {
	switch m {
	case ScaleStretch:
		return "stretch"
	case ScaleFit:
		return "fit"
	default:
		return fmt.Sprintf("ScaleMode(%d)", int(m))
	}
}

// ParseScaleMode maps "stretch" and "fit" to a ScaleMode. The empty string
// is ScaleStretch.
func ParseScaleMode(s string) (ScaleMode, bool) {
	switch s {
	case "", "stretch":
		return ScaleStretch, true
	case "fit":
		return ScaleFit, true
	default:
		return ScaleStretch, false
	}
}

// scaledSize returns the buffer size for a srcW x srcH picture rendered into
// maxW x maxH. Fitted sizes are even, as chroma converters expect.
func scaledSize(srcW, srcH, maxW, maxH int, mode ScaleMode) (w, h int) {
	if mode != ScaleFit || srcW <= 0 || srcH <= 0 {
		return maxW, maxH
	}

	srcAspect := float64(srcW) / float64(srcH)
	dstAspect := float64(maxW) / float64(maxH)
	if srcAspect > dstAspect {
		w = maxW
		h = int(float64(maxW) / srcAspect)
	} else {
		h = maxH
		w = int(float64(maxH) * srcAspect)
	}
	w, h = max(w&^1, 2), max(h&^1, 2)
	return w, h
}
