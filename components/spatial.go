package components

// Position is a cell's location in the toroidal world.
type Position struct {
	X, Y float32 `inspect:"label,fmt:%.1f"`
}
