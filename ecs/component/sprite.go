package component

// Sprite references a texture registered with the renderer by name.
type Sprite struct {
	Texture string
	OriginX float64
	OriginY float64
	Layer   int
}

var SpriteComponent = NewComponent[Sprite]()
