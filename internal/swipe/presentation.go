package swipe

import "github.com/olivier-w/swipe/internal/util"

// Transform positions the top card.
type Transform struct {
	TranslateX float64
	TranslateY float64
	RotateZ    string
}

// Opacity holds the two decision overlays, each in [0, 1].
type Opacity struct {
	Accept float64
	Reject float64
}

// Interpolate maps x from [in0, in1] onto [out0, out1], clamping outside the
// input domain.
func Interpolate(x, in0, in1, out0, out1 float64) float64 {
	if in1 == in0 {
		if x < in0 {
			return out0
		}
		return out1
	}
	t := (x - in0) / (in1 - in0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return out0 + t*(out1-out0)
}

// Rotation returns the card tilt in degrees for a horizontal translation.
func Rotation(translateX, width, tilt float64) float64 {
	return Interpolate(translateX, -width/2, width/2, tilt, -tilt)
}

// AcceptOpacity returns the LIKE overlay opacity for a horizontal translation.
func AcceptOpacity(translateX, width float64) float64 {
	return Interpolate(translateX, 0, width/2, 0, 1)
}

// RejectOpacity returns the NOPE overlay opacity for a horizontal translation.
func RejectOpacity(translateX, width float64) float64 {
	return Interpolate(translateX, -width/2, 0, 1, 0)
}

func present(tx, ty, width, tilt float64) (Transform, Opacity, float64) {
	rot := Rotation(tx, width, tilt)
	return Transform{
			TranslateX: tx,
			TranslateY: ty,
			RotateZ:    util.FormatDegrees(rot),
		}, Opacity{
			Accept: AcceptOpacity(tx, width),
			Reject: RejectOpacity(tx, width),
		}, rot
}
