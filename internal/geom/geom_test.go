package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignSizeWithinRect(t *testing.T) {
	rect := XYWH(100, 100, 200, 100)
	size := V2(50, 20)

	tests := []struct {
		name  string
		align Align2
		want  Rect
	}{
		{"left top", LeftTop, XYWH(100, 100, 50, 20)},
		{"center top", CenterTop, XYWH(175, 100, 50, 20)},
		{"right top", RightTop, XYWH(250, 100, 50, 20)},
		{"center center", CenterCenter, XYWH(175, 140, 50, 20)},
		{"left bottom", LeftBottom, XYWH(100, 180, 50, 20)},
		{"right bottom", RightBottom, XYWH(250, 180, 50, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.align.AlignSizeWithinRect(size, rect))
		})
	}
}

func TestPosInRect(t *testing.T) {
	rect := XYWH(0, 0, 10, 20)
	assert.Equal(t, V2(0, 0), LeftTop.PosInRect(rect))
	assert.Equal(t, V2(5, 10), CenterCenter.PosInRect(rect))
	assert.Equal(t, V2(10, 20), RightBottom.PosInRect(rect))
	assert.Equal(t, V2(5, 20), CenterBottom.PosInRect(rect))
}

func TestRectOps(t *testing.T) {
	r := XYWH(10, 20, 30, 40)

	assert.Equal(t, XYWH(12, 22, 26, 36), r.Shrink2(Splat(2)))
	assert.Equal(t, XYWH(5, 10, 15, 20), r.Scale(0.5))
	assert.Equal(t, XYWH(11, 21, 30, 40), r.Translate(V2(1, 1)))
	assert.Equal(t, XYWH(0, 0, 40, 60), r.Union(XYWH(0, 0, 1, 1)))
	assert.Equal(t, V2(25, 40), r.Center())
}

func TestFitAspect(t *testing.T) {
	t.Run("wide image into tall box", func(t *testing.T) {
		assert.Equal(t, V2(100, 50), FitAspect(V2(200, 100), V2(100, 100)))
	})
	t.Run("16:9 into 4:3", func(t *testing.T) {
		got := FitAspect(V2(16, 9), V2(1024, 768))
		assert.InDelta(t, 1024, got.X, 1e-9)
		assert.InDelta(t, 576, got.Y, 1e-9)
	})
	t.Run("degenerate natural size", func(t *testing.T) {
		assert.Equal(t, V2(30, 40), FitAspect(Vec2{}, V2(30, 40)))
	})
}

func TestDivVecZero(t *testing.T) {
	assert.Equal(t, V2(2, 0), V2(4, 4).DivVec(V2(2, 0)))
}
