package layout

import "image"

// InsetVertical shrinks rect by paddingPx at the top and bottom only.
func InsetVertical(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	if 2*paddingPx > rect.Dy() {
		paddingPx = rect.Dy() / 2
	}
	return image.Rect(rect.Min.X, rect.Min.Y+paddingPx, rect.Max.X, rect.Max.Y-paddingPx)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Center returns a rectangle of size (widthPx,heightPx) centred in rect.
// The size is clamped to rect.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = clamp(widthPx, 0, rect.Dx())
	heightPx = clamp(heightPx, 0, rect.Dy())
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// Fit returns the largest rectangle with the aspect ratio of
// (widthPx,heightPx) centred in rect.
func Fit(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	if widthPx <= 0 || heightPx <= 0 || rect.Empty() {
		return image.Rectangle{Min: rect.Min, Max: rect.Min}
	}
	w, h := rect.Dx(), rect.Dy()
	if widthPx*h >= heightPx*w {
		h = heightPx * w / widthPx
	} else {
		w = widthPx * h / heightPx
	}
	return Center(rect, w, h)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
