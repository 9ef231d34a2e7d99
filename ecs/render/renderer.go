package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
)

// platformLayer separates sprites drawn behind the ground from those in front.
const platformLayer = 1

type Palette struct {
	Clear    color.Color
	Platform color.Color
	Overlay  color.Color
}

type Renderer struct {
	palette Palette
	sprites []ecs.Entity
}

func NewRenderer(p Palette) *Renderer {
	return &Renderer{palette: p}
}

// Draw renders the world: back sprites, platforms, front sprites and the
// overlay backdrop.
func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(r.palette.Clear)
	view := CameraView(w)

	r.sprites = ecs.Query(w, component.SpriteComponent.Kind().ID(), component.TransformComponent.Kind().ID())
	layer := func(e ecs.Entity) int {
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			return s.Layer
		}
		return 0
	}
	sort.SliceStable(r.sprites, func(i, j int) bool {
		li, lj := layer(r.sprites[i]), layer(r.sprites[j])
		if li != lj {
			return li < lj
		}
		return uint64(r.sprites[i]) < uint64(r.sprites[j])
	})

	split := sort.Search(len(r.sprites), func(i int) bool { return layer(r.sprites[i]) >= platformLayer })
	r.drawSprites(w, screen, view, r.sprites[:split])
	r.drawPlatforms(w, screen, view)
	r.drawSprites(w, screen, view, r.sprites[split:])
	r.drawOverlay(w, screen)
}

func (r *Renderer) drawSprites(w *ecs.World, screen *ebiten.Image, view View, entities []ecs.Entity) {
	for _, e := range entities {
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		img := GetImage(s.Texture)
		if img == nil {
			continue
		}

		bounds := img.Bounds()
		ox, oy := s.OriginX, s.OriginY
		if ox == 0 && oy == 0 {
			ox, oy = float64(bounds.Dx())/2, float64(bounds.Dy())/2
		}
		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-ox, -oy)
		op.GeoM.Scale(sx, sy)
		// world rotation is counter-clockwise with y up
		op.GeoM.Rotate(-t.Rotation)
		x, y := view.ToScreen(t.X, t.Y)
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}

func (r *Renderer) drawPlatforms(w *ecs.World, screen *ebiten.Image, view View) {
	ecs.ForEach3(w, component.PlatformTagComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, _ *component.PlatformTag, pb *component.PhysicsBody, t *component.Transform) {
			hw := common.ToPixels(pb.HalfWidth)
			hh := common.ToPixels(pb.HalfHeight)
			sin, cos := math.Sincos(t.Rotation)

			var path vector.Path
			corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
			for i, c := range corners {
				x, y := view.ToScreen(t.X+c[0]*cos-c[1]*sin, t.Y+c[0]*sin+c[1]*cos)
				if i == 0 {
					path.MoveTo(float32(x), float32(y))
					continue
				}
				path.LineTo(float32(x), float32(y))
			}
			path.Close()
			fillPath(screen, &path, r.palette.Platform)
		})
}

func (r *Renderer) drawOverlay(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach(w, component.OverlayComponent.Kind(), func(_ ecs.Entity, o *component.Overlay) {
		if o.Alpha <= 0 {
			return
		}
		cr, cg, cb, _ := r.palette.Overlay.RGBA()
		c := color.NRGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: uint8(common.Clamp(o.Alpha, 0, 1) * 255)}
		vector.DrawFilledRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, c, false)
	})
}

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(img.Bounds().Inset(1)).(*ebiten.Image)
}()

func fillPath(dst *ebiten.Image, path *vector.Path, c color.Color) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(cr) / 0xffff
		vs[i].ColorG = float32(cg) / 0xffff
		vs[i].ColorB = float32(cb) / 0xffff
		vs[i].ColorA = float32(ca) / 0xffff
	}
	dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
