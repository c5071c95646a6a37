package components

// Body holds the drawn and placement radius, derived from cell size each tick.
type Body struct {
	Radius float32 `inspect:"label,fmt:%.1f"`
}
