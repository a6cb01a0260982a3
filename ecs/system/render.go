package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"sightline/ecs"
	"sightline/ecs/component"
)

// RenderSystem draws the arena, characters, beams and nameplates in
// camera space. Beams draw over world geometry (no occlusion) and under
// the UI.
type RenderSystem struct {
	arenaW float64
	arenaH float64
	face   text.Face
}

func NewRenderSystem(arenaW, arenaH float64) *RenderSystem {
	return &RenderSystem{
		arenaW: arenaW,
		arenaH: arenaH,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := cameraView(w)

	// arena floor
	vector.FillRect(screen,
		float32((0-camX)*zoom), float32((0-camY)*zoom),
		float32(r.arenaW*zoom), float32(r.arenaH*zoom),
		color.NRGBA{R: 28, G: 30, B: 34, A: 255}, false)

	r.drawShapes(w, screen, camX, camY, zoom)
	r.drawBeams(w, screen, camX, camY, zoom)
	r.drawNameplates(w, screen, camX, camY, zoom)
}

func (r *RenderSystem) drawShapes(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	entities := w.Query(component.TransformComponent.Kind(), component.ShapeComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := 0, 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind())
		if !ok {
			continue
		}

		sx := float32((t.X - camX) * zoom)
		sy := float32((t.Y - camY) * zoom)

		switch shape.Kind {
		case component.ShapeCircle:
			radius := float32(shape.Radius * zoom)
			if shape.Fill != nil {
				vector.FillCircle(screen, sx, sy, radius, shape.Fill, true)
			}
			if shape.Outline != nil {
				vector.StrokeCircle(screen, sx, sy, radius, 1.5, shape.Outline, true)
			}
		case component.ShapeRect:
			hw := float32(shape.W / 2 * zoom)
			hh := float32(shape.H / 2 * zoom)
			if shape.Fill != nil {
				vector.FillRect(screen, sx-hw, sy-hh, hw*2, hh*2, shape.Fill, false)
			}
			if shape.Outline != nil {
				vector.StrokeRect(screen, sx-hw, sy-hh, hw*2, hh*2, 1.5, shape.Outline, false)
			}
		case component.ShapeSegment:
			ex := float32((t.X + shape.DX - camX) * zoom)
			ey := float32((t.Y + shape.DY - camY) * zoom)
			c := shape.Outline
			if c == nil {
				c = shape.Fill
			}
			if c != nil {
				vector.StrokeLine(screen, sx, sy, ex, ey, float32(3*zoom), c, true)
			}
		}
	}
}

// drawBeams renders each beam as a layered stroke: a wide low-alpha glow
// pass scaled by emission under a core pass.
func (r *RenderSystem) drawBeams(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	ecs.ForEach(w, component.BeamComponent.Kind(), func(_ ecs.Entity, beam *component.Beam) {
		from, ok := ecs.Get(w, ecs.Entity(beam.From), component.AttachmentComponent.Kind())
		if !ok || !from.Resolved {
			return
		}
		to, ok := ecs.Get(w, ecs.Entity(beam.To), component.AttachmentComponent.Kind())
		if !ok || !to.Resolved {
			return
		}

		x0 := float32((from.WorldX - camX) * zoom)
		y0 := float32((from.WorldY - camY) * zoom)
		x1 := float32((to.WorldX - camX) * zoom)
		y1 := float32((to.WorldY - camY) * zoom)

		width := float32(beam.Width * zoom)
		if width < 0.5 {
			width = 0.5
		}

		glow := beam.Color
		glow.A = uint8(255 * 0.35 * beam.Emission)
		if glow.A > 0 {
			vector.StrokeLine(screen, x0, y0, x1, y1, width*3, glow, true)
		}

		core := beam.Color
		core.A = uint8(255 * (0.25 + 0.75*beam.Emission))
		vector.StrokeLine(screen, x0, y0, x1, y1, width, core, true)
	})
}

func (r *RenderSystem) drawNameplates(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	ecs.ForEach2(w, component.NameplateComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, plate *component.Nameplate, t *component.Transform) {
			if plate.Text == "" {
				return
			}
			tw, _ := text.Measure(plate.Text, r.face, 0)
			op := &text.DrawOptions{}
			op.GeoM.Translate((t.X-camX)*zoom-tw/2, (t.Y+plate.OffsetY-camY)*zoom)
			c := plate.Color
			if c == nil {
				c = color.White
			}
			op.ColorScale.ScaleWithColor(c)
			text.Draw(screen, plate.Text, r.face, op)
		})
}
