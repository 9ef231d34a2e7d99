package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"golang.org/x/image/font/basicfont"
)

// overlayUI shows the Lost/Finished button and writes the cursor interaction
// back into the Button component. The core picks the material.
type overlayUI struct {
	face ebtext.Face

	ui       *ebitenui.UI
	button   *widget.Button
	entity   ecs.Entity
	material component.ButtonMaterial

	hovered bool
	clicked bool
}

func newOverlayUI() *overlayUI {
	return &overlayUI{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (o *overlayUI) Update(w *ecs.World) {
	e, ok := ecs.First(w, component.ButtonComponent.Kind())
	if !ok {
		o.ui, o.button, o.entity = nil, nil, 0
		return
	}
	b, _ := ecs.Get(w, e, component.ButtonComponent.Kind())
	if o.ui == nil || e != o.entity {
		o.build(e, b)
	}
	if b.Material != o.material {
		o.material = b.Material
		o.button.SetImage(buttonImage(o.material))
	}

	o.clicked = false
	o.ui.Update()

	switch {
	case o.clicked:
		b.Interaction = component.InteractionClicked
	case o.hovered:
		b.Interaction = component.InteractionHovered
	default:
		b.Interaction = component.InteractionNone
	}
}

func (o *overlayUI) Draw(screen *ebiten.Image) {
	if o.ui != nil {
		o.ui.Draw(screen)
	}
}

func (o *overlayUI) build(e ecs.Entity, b *component.Button) {
	o.entity = e
	o.material = b.Material
	o.hovered = false

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	o.button = widget.NewButton(
		widget.ButtonOpts.Image(buttonImage(o.material)),
		widget.ButtonOpts.Text(b.Label, &o.face, &widget.ButtonTextColor{Idle: white, Hover: white, Pressed: white}),
		widget.ButtonOpts.TextPadding(&widget.Insets{Top: 12, Bottom: 12, Left: 40, Right: 40}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(150, 65),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ButtonOpts.CursorEnteredHandler(func(*widget.ButtonHoverEventArgs) { o.hovered = true }),
		widget.ButtonOpts.CursorExitedHandler(func(*widget.ButtonHoverEventArgs) { o.hovered = false }),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { o.clicked = true }),
	)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(o.button)
	o.ui = &ebitenui.UI{Container: root}
}

func buttonImage(m component.ButtonMaterial) *widget.ButtonImage {
	v := uint8(m.Grey * 255)
	img := imageui.NewNineSliceColor(color.NRGBA{R: v, G: v, B: v, A: 0xff})
	return &widget.ButtonImage{Idle: img, Hover: img, Pressed: img}
}
