package fonts

import (
	"fmt"
	"log"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	HUD   FontName = "hud"
	Label FontName = "label"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var (
	fonts = map[FontName]font.Face{}
)

// LoadDefaults registers the HUD and label faces from the bundled Go font.
func LoadDefaults() {
	LoadFontWithSize(HUD, goregular.TTF, 13)
	LoadFontWithSize(Label, goregular.TTF, 10)
}

// LoadFontWithSize parses ttf and registers it under name. If the data
// cannot be parsed the fixed basicfont face is registered instead.
func LoadFontWithSize(name FontName, ttf []byte, size float64) {
	fontData, err := truetype.Parse(ttf)
	if err != nil {
		log.Printf("[fonts] %s: %v, using basic face", name, err)
		fonts[name] = basicfont.Face7x13
		return
	}
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
}

func getFont(name FontName) font.Face {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
