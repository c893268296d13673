package chart

// Point is a position on a Surface. The origin is the top-left corner.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in Surface units.
type Size struct {
	Width  float64
	Height float64
}

// LineStyle describes a stroke.
type LineStyle struct {
	Color     string    `yaml:"color" default:"#e1e1e1"`
	Thickness float64   `yaml:"thickness" default:"1" validate:"gte=0"`
	DashSize  []float64 `yaml:"dashSize" default:"[8,3]" validate:"omitempty,len=2,dive,gte=0"`
}

// LabelStyle describes text.
type LabelStyle struct {
	Color string `yaml:"color" default:"#727272"`
	Font  string `yaml:"font" default:"12px Arial"`
}

// Surface is the drawing target a chart renders into. Implementations are
// provided by the host; the chart never draws outside Width x Height.
type Surface interface {
	DrawLine(from, to Point, style LineStyle)
	DrawDashedLine(from, to Point, style LineStyle)
	DrawText(text string, pos Point, style LabelStyle)
	DrawRect(pos Point, size Size, color string)
	Clear()
	Width() float64
	Height() float64
}
