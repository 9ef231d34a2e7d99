package assets

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/unicycle/common"
)

const (
	TextureWheel      = "wheel"
	TextureBody       = "body"
	TextureHead       = "head"
	TextureBackground = "background"
	TextureTutorial   = "tutorial"
	TextureFinish     = "finish"
)

var (
	rubber = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	rim    = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb8, A: 0xff}
	shirt  = color.NRGBA{R: 0xd9, G: 0x4f, B: 0x3d, A: 0xff}
	skin   = color.NRGBA{R: 0xf2, G: 0xc8, B: 0x9b, A: 0xff}
	hills  = color.NRGBA{R: 0x7c, G: 0xb3, B: 0x6b, A: 0xff}
	white  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black  = color.NRGBA{A: 0xff}
)

// newTextures draws every sprite the game uses. Sizes follow the physics
// shapes at common.PhysicsScale pixels per unit.
func newTextures(sky color.Color) map[string]*ebiten.Image {
	return map[string]*ebiten.Image{
		TextureWheel:      wheelTexture(),
		TextureBody:       bodyTexture(),
		TextureHead:       headTexture(),
		TextureBackground: backgroundTexture(sky),
		TextureTutorial:   tutorialTexture(),
		TextureFinish:     finishTexture(),
	}
}

func wheelTexture() *ebiten.Image {
	r := float32(common.WheelRadius * common.PhysicsScale)
	size := int(2 * r)
	img := ebiten.NewImage(size, size)
	vector.DrawFilledCircle(img, r, r, r, rubber, true)
	vector.DrawFilledCircle(img, r, r, r-5, rim, true)
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		x := r + float32(math.Cos(a))*(r-5)
		y := r + float32(math.Sin(a))*(r-5)
		vector.StrokeLine(img, r, r, x, y, 2, rubber, true)
	}
	vector.DrawFilledCircle(img, r, r, 4, rubber, true)
	return img
}

func bodyTexture() *ebiten.Image {
	r := float32(common.BodyRadius * common.PhysicsScale)
	length := float32(common.BodyLength * common.PhysicsScale)
	w, h := int(2*r), int(length+2*r)
	img := ebiten.NewImage(w, h)
	vector.DrawFilledRect(img, 0, r, 2*r, length, shirt, true)
	vector.DrawFilledCircle(img, r, r, r, shirt, true)
	vector.DrawFilledCircle(img, r, r+length, r, shirt, true)
	return img
}

func headTexture() *ebiten.Image {
	r := float32(common.HeadRadius * common.PhysicsScale)
	size := int(2 * r)
	img := ebiten.NewImage(size, size)
	vector.DrawFilledCircle(img, r, r, r, skin, true)
	vector.DrawFilledCircle(img, r+5, r-3, 2.5, black, true)
	vector.StrokeLine(img, r, r+7, r+8, r+6, 1.5, black, true)
	return img
}

func backgroundTexture(sky color.Color) *ebiten.Image {
	img := ebiten.NewImage(common.BaseWidth, common.BaseHeight)
	img.Fill(sky)
	for i := 0; i < 4; i++ {
		cx := float32(i)*common.BaseWidth/3 + 60
		vector.DrawFilledCircle(img, cx, common.BaseHeight+120, 260, hills, true)
	}
	return img
}

func tutorialTexture() *ebiten.Image {
	img := ebiten.NewImage(360, 120)
	img.Fill(color.NRGBA{R: 0xff, G: 0xf4, B: 0xd6, A: 0xee})
	vector.StrokeRect(img, 1, 1, 358, 118, 2, black, false)
	ebitenutil.DebugPrintAt(img, "W / S     paddle forward / back", 16, 16)
	ebitenutil.DebugPrintAt(img, "A / D     lean the head", 16, 40)
	ebitenutil.DebugPrintAt(img, "SPACE     jump", 16, 64)
	ebitenutil.DebugPrintAt(img, "R         restart the level", 16, 88)
	return img
}

func finishTexture() *ebiten.Image {
	img := ebiten.NewImage(40, 96)
	vector.DrawFilledRect(img, 0, 0, 4, 96, black, false)
	const cell = 9
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			c := white
			if (row+col)%2 == 0 {
				c = black
			}
			vector.DrawFilledRect(img, float32(4+col*cell), float32(row*cell), cell, cell, c, false)
		}
	}
	return img
}
