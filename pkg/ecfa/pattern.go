package ecfa

import(
	"fmt"
	"strings"

	"github.com/abworrall/demosaic/pkg/eimage"
)

// A Pattern is a color filter array layout: which single channel a
// sensor records at each pixel.
type Pattern int

const(
	Bayer  Pattern = iota // 2x2 GRBG
	XTrans                // Fujifilm 6x6
)

var Patterns = []Pattern{Bayer, XTrans}

func (p Pattern)String() string {
	switch p {
	case Bayer:  return "bayer"
	case XTrans: return "xtrans"
	}
	return fmt.Sprintf("pattern(%d)", int(p))
}

func ParsePattern(s string) (Pattern, error) {
	switch strings.ToLower(s) {
	case "bayer":          return Bayer, nil
	case "xtrans", "fuji": return XTrans, nil
	default:
		return Bayer, fmt.Errorf("no CFA pattern named '%s'", s)
	}
}

// PatternFromCamera guesses the sensor layout from the EXIF Make.
func PatternFromCamera(cameraMake string) Pattern {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(cameraMake)), "FUJIFILM") {
		return XTrans
	}
	return Bayer
}

var bayerTile = [2]string{
	"GR",
	"BG",
}

var xtransTile = [6]string{
	"GBRGRB",
	"RGGBGG",
	"BGGRGG",
	"GRBGBR",
	"BGGRGG",
	"RGGBGG",
}

func tileChannel(b byte) eimage.Channel {
	switch b {
	case 'R': return eimage.Red
	case 'B': return eimage.Blue
	}
	return eimage.Green
}

// ChannelAt is the channel the sensor records at pixel (x,y).
func (p Pattern)ChannelAt(x, y int) eimage.Channel {
	if p == XTrans {
		return tileChannel(xtransTile[y%6][x%6])
	}
	return tileChannel(bayerTile[y%2][x%2])
}
