package media

// Dimensions is the pixel geometry of a source video stream.
type Dimensions struct {
	Width  float64
	Height float64
}

// AspectRatio returns width divided by height.
func (d Dimensions) AspectRatio() float64 {
	return d.Width / d.Height
}
