package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	fovY      = math.Pi / 3
	nearPlane = 0.1
	farPlane  = 200
	ringSides = 32
)

// projector maps world points to screen pixels through the main camera.
type projector struct {
	viewProj      mgl32.Mat4
	width, height float32
}

func newProjector(camera component.Transform, width, height float32) projector {
	proj := mgl32.Perspective(fovY, width/height, nearPlane, farPlane)
	eye := camera.Translation
	view := camera.Rotation.Inverse().Mat4().Mul4(mgl32.Translate3D(-eye.X(), -eye.Y(), -eye.Z()))
	return projector{viewProj: proj.Mul4(view), width: width, height: height}
}

func (p projector) project(v mgl32.Vec3) (float32, float32, bool) {
	clip := p.viewProj.Mul4x1(v.Vec4(1))
	if clip.W() <= nearPlane {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return (ndc.X() + 1) / 2 * p.width, (1 - ndc.Y()) / 2 * p.height, true
}

func (p projector) line(dst *ebiten.Image, a, b mgl32.Vec3, clr color.Color) {
	x0, y0, ok0 := p.project(a)
	x1, y1, ok1 := p.project(b)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(dst, x0, y0, x1, y1, 1.5, clr, true)
}

func (p projector) ring(dst *ebiten.Image, center mgl32.Vec3, radius float32, clr color.Color) {
	prev := center.Add(mgl32.Vec3{radius, 0, 0})
	for i := 1; i <= ringSides; i++ {
		a := float64(i) / ringSides * 2 * math.Pi
		next := center.Add(mgl32.Vec3{radius * float32(math.Cos(a)), 0, radius * float32(math.Sin(a))})
		p.line(dst, prev, next, clr)
		prev = next
	}
}

// drawWorld outlines every collider and the focus body's heading.
func drawWorld(dst *ebiten.Image, w *ecs.World, focus ecs.Entity, debug bool) {
	camEntity, ok := w.First(component.MainCameraComponent.ID(), component.TransformComponent.ID())
	if !ok {
		return
	}
	camera, _ := ecs.Get(w, camEntity, component.TransformComponent)
	b := dst.Bounds()
	p := newProjector(camera, float32(b.Dx()), float32(b.Dy()))

	for _, e := range w.Query(component.ColliderComponent.ID(), component.TransformComponent.ID()) {
		col, _ := ecs.Get(w, e, component.ColliderComponent)
		t, _ := ecs.Get(w, e, component.TransformComponent)
		bottom, top := col.Extent()
		base := t.Translation

		clr := color.Color(colornames.Slategray)
		if e == focus {
			clr = colornames.Limegreen
		}

		if col.Shape == component.ShapeCylinder {
			p.ring(dst, base.Add(mgl32.Vec3{0, top, 0}), col.Radius, clr)
			if debug {
				p.ring(dst, base.Add(mgl32.Vec3{0, bottom, 0}), col.Radius, colornames.Dimgray)
			}
			continue
		}

		a := base.Add(t.Rotation.Rotate(col.A))
		c := base.Add(t.Rotation.Rotate(col.B))
		p.ring(dst, a, col.Radius, clr)
		p.ring(dst, c, col.Radius, clr)
		for _, side := range []mgl32.Vec3{{col.Radius, 0, 0}, {-col.Radius, 0, 0}, {0, 0, col.Radius}, {0, 0, -col.Radius}} {
			p.line(dst, a.Add(side), c.Add(side), clr)
		}

		// Heading arrow at mid height.
		mid := base.Add(mgl32.Vec3{0, (bottom + top) / 2, 0})
		p.line(dst, mid, mid.Add(t.Rotation.Rotate(common.Forward.Mul(-1))), colornames.Orange)

		if debug {
			if vel, ok := ecs.Get(w, e, component.LinearVelocityComponent); ok {
				p.line(dst, mid, mid.Add(vel.Vec3.Mul(0.2)), colornames.Deepskyblue)
			}
		}
	}
}
