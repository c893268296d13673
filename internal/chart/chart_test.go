package chart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/candleview/internal/dataset"
)

type drawCall struct {
	op    string
	from  Point
	to    Point
	size  Size
	text  string
	color string
}

// recorder is a Surface that records every primitive.
type recorder struct {
	w, h  float64
	calls []drawCall
	clear int
}

func (r *recorder) DrawLine(from, to Point, s LineStyle) {
	r.calls = append(r.calls, drawCall{op: "line", from: from, to: to, color: s.Color})
}

func (r *recorder) DrawDashedLine(from, to Point, s LineStyle) {
	r.calls = append(r.calls, drawCall{op: "dashed", from: from, to: to, color: s.Color})
}

func (r *recorder) DrawText(text string, pos Point, s LabelStyle) {
	r.calls = append(r.calls, drawCall{op: "text", from: pos, text: text, color: s.Color})
}

func (r *recorder) DrawRect(pos Point, size Size, color string) {
	r.calls = append(r.calls, drawCall{op: "rect", from: pos, size: size, color: color})
}

func (r *recorder) Clear() {
	r.calls = nil
	r.clear++
}

func (r *recorder) Width() float64 { return r.w }
func (r *recorder) Height() float64 { return r.h }

func (r *recorder) ops(op string) []drawCall {
	var out []drawCall
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

// testOptions fit 7 bars of step 5 in an 85x230 surface.
func testOptions() Options {
	o := DefaultOptions()
	o.CanvasPaddingLeft = 0
	return o
}

func sevenBars(t *testing.T) *dataset.Dataset {
	t.Helper()
	mk := func(start int64, base float64) dataset.Chunk {
		c := dataset.Chunk{StartDate: start}
		for i := 0; i < 5; i++ {
			v := base + float64(i)
			open, closePrice := v, v+0.5
			if i%2 == 1 {
				open, closePrice = closePrice, open
			}
			c.Bars = append(c.Bars, dataset.Bar{Time: int64(i * 60), Open: open, High: v + 1, Low: v - 1, Close: closePrice})
		}
		return c
	}
	d, err := dataset.New([]dataset.Chunk{mk(1_700_000_000, 10), mk(1_700_000_300, 15)})
	require.NoError(t, err)
	return d
}

func TestNewRequiresSurface(t *testing.T) {
	_, err := New(KindCandlestick, nil, sevenBars(t), testOptions(), nil)
	assert.ErrorIs(t, err, ErrSurfaceUnavailable)
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(Kind("pie"), &recorder{w: 85, h: 230}, sevenBars(t), testOptions(), nil)
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseKind("pie")
	assert.ErrorIs(t, err, ErrUnknownKind)

	k, err := ParseKind("line")
	require.NoError(t, err)
	assert.Equal(t, KindLine, k)
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	o := testOptions()
	o.MaxZoomLevel = 0.5
	_, err := New(KindBars, &recorder{w: 85, h: 230}, sevenBars(t), o, nil)
	assert.Error(t, err)

	o = testOptions()
	o.TimeZone = "Nowhere/Atlantis"
	_, err = New(KindBars, &recorder{w: 85, h: 230}, sevenBars(t), o, nil)
	assert.Error(t, err)
}

func TestCandlestickRender(t *testing.T) {
	surface := &recorder{w: 85, h: 230}
	c, err := New(KindCandlestick, surface, sevenBars(t), testOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, c.Initialize())

	assert.Equal(t, 7, c.Engine().State().VisibleCount)
	assert.Len(t, surface.ops("rect"), 7)
	assert.Len(t, surface.ops("line"), 7)
	assert.Len(t, surface.ops("text"), (xAxisSteps-1)+(yAxisSteps+1))
	assert.Len(t, surface.ops("dashed"), (xAxisSteps-1)+(yAxisSteps+1))

	rects := surface.ops("rect")
	for i, r := range rects {
		assert.InDelta(t, float64(i)*5, r.from.X, 1e-9)
		assert.InDelta(t, 4, r.size.Width, 1e-9)
	}
	// bar 0 rises, bar 1 falls
	assert.Equal(t, "#10B981", rects[0].color)
	assert.Equal(t, "#EF4444", rects[1].color)
}

func TestRenderValueToPixel(t *testing.T) {
	surface := &recorder{w: 85, h: 230}
	c, err := New(KindCandlestick, surface, sevenBars(t), testOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, c.Render())

	bars, err := c.Engine().VisibleBars()
	require.NoError(t, err)
	lo, hi, err := ValueRange(bars)
	require.NoError(t, err)
	assert.Equal(t, 9.0, lo)
	assert.Equal(t, 17.0, hi)

	// chart height 200, padding 10 on both sides
	wick := surface.ops("line")[0]
	assert.InDelta(t, 200-10-(11-9)*180.0/8, wick.from.Y, 1e-9)
	assert.InDelta(t, 190, wick.to.Y, 1e-9)

	// y axis labels run bottom to top, min first
	labels := surface.ops("text")[xAxisSteps-1:]
	assert.Equal(t, "9.00000", labels[0].text)
	assert.Equal(t, "17.00000", labels[yAxisSteps].text)
}

func TestXAxisLabels(t *testing.T) {
	surface := &recorder{w: 85, h: 230}
	c, err := New(KindCandlestick, surface, sevenBars(t), testOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, c.Render())

	bars, _ := c.Engine().VisibleBars()
	labels := surface.ops("text")[:xAxisSteps-1]
	for i, l := range labels {
		idx := (i + 1) * (len(bars) - 1) / xAxisSteps
		want := time.Unix(bars[idx].Time, 0).UTC().Format("2 Jan 15:04")
		assert.Equal(t, want, l.text)
	}
	assert.Equal(t, "14 Nov 22:14", labels[0].text)
}

func TestFlatWindowHasFiniteScale(t *testing.T) {
	flat := dataset.Chunk{StartDate: 1000}
	for i := 0; i < 10; i++ {
		flat.Bars = append(flat.Bars, dataset.Bar{Time: int64(i), Open: 1.25, High: 1.25, Low: 1.25, Close: 1.25})
	}
	d, err := dataset.New([]dataset.Chunk{flat})
	require.NoError(t, err)

	surface := &recorder{w: 85, h: 230}
	c, err := New(KindCandlestick, surface, d, testOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, c.Render())

	for _, call := range surface.calls {
		for _, v := range []float64{call.from.X, call.from.Y, call.to.X, call.to.Y, call.size.Width, call.size.Height} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s produced %v", call.op, v)
		}
	}

	lo, hi, err := ValueRange(d.Chunk(0).Bars)
	require.NoError(t, err)
	assert.Less(t, lo, 1.25)
	assert.Greater(t, hi, 1.25)
	assert.False(t, math.IsInf(Scale(180, lo, hi), 0))
}

func TestZeroFlatRange(t *testing.T) {
	lo, hi := widenFlatRange(0, 0)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)

	lo, hi = widenFlatRange(math.NaN(), 3)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestRenderEmptyDataset(t *testing.T) {
	d, err := dataset.New(nil)
	require.NoError(t, err)

	surface := &recorder{w: 85, h: 230}
	c, err := New(KindCandlestick, surface, d, testOptions(), nil)
	require.NoError(t, err)

	err = c.Render()
	assert.ErrorIs(t, err, ErrNoVisibleData)
	assert.Equal(t, 1, surface.clear)
	assert.Empty(t, surface.calls)

	_, _, err = ValueRange(nil)
	assert.ErrorIs(t, err, ErrNoVisibleData)
}

func TestVariantsDrawElements(t *testing.T) {
	tests := []struct {
		kind  Kind
		lines int
		rects int
	}{
		{KindCandlestick, 7, 7},
		{KindBars, 21, 0},
		{KindLine, 6, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			surface := &recorder{w: 85, h: 230}
			c, err := New(tt.kind, surface, sevenBars(t), testOptions(), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, c.Kind())
			require.NoError(t, c.Render())

			assert.Len(t, surface.ops("line"), tt.lines)
			assert.Len(t, surface.ops("rect"), tt.rects)
		})
	}
}

func TestResizeRecomputesVisibleCount(t *testing.T) {
	surface := &recorder{w: 85, h: 230}
	c, err := New(KindCandlestick, surface, sevenBars(t), testOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, c.Initialize())

	surface.w = 70
	require.NoError(t, c.Resize())
	assert.Equal(t, 4, c.Engine().State().VisibleCount)
	assert.Len(t, surface.ops("rect"), 4)
}
