// Package camera provides the free-flying camera used for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Clip planes shared by every projection in the engine.
const (
	NearPlane = 0.0625
	FarPlane  = 100000.0
)

// DefaultFovY is the vertical field of view in radians.
const DefaultFovY = float32(gomath.Pi / 2)

// Pitch stays short of the poles so the view basis never degenerates.
const (
	minPitch = float32(-gomath.Pi/2 + 0.01)
	maxPitch = float32(gomath.Pi/2 - 0.01)
)

// FlyCamera is a free camera in a Z-up world.
type FlyCamera struct {
	Position mgl32.Vec3

	// Orientation (radians). Yaw rotates around world Z with zero
	// facing +X; pitch is the elevation above the horizon.
	Yaw   float32
	Pitch float32

	// Projection
	FovY float32

	// Movement speed in world units per second.
	Speed float32

	// Sensitivity
	LookSensitivity float32
}

// NewFlyCamera creates a fly camera with default settings.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Position:        mgl32.Vec3{0.0, -8.0, 5.5},
		Yaw:             float32(gomath.Pi / 2),
		Pitch:           -0.63,
		FovY:            DefaultFovY,
		Speed:           5.0,
		LookSensitivity: 0.002,
	}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return mgl32.Vec3{
		cp * float32(gomath.Cos(float64(c.Yaw))),
		cp * float32(gomath.Sin(float64(c.Yaw))),
		float32(gomath.Sin(float64(c.Pitch))),
	}
}

// Right returns the unit vector to the camera's right on the horizontal plane.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(gomath.Sin(float64(c.Yaw))),
		-float32(gomath.Cos(float64(c.Yaw))),
		0,
	}
}

// Up returns the camera's local up vector.
func (c *FlyCamera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward())
}

// ViewMatrix returns the world-to-view transform.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 0, 1})
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *FlyCamera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, NearPlane, FarPlane)
}

// HandleLook updates orientation from a mouse delta in pixels.
func (c *FlyCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.LookSensitivity
	c.Pitch -= deltaY * c.LookSensitivity

	// Clamp pitch
	if c.Pitch < minPitch {
		c.Pitch = minPitch
	}
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
}

// HandleMovement translates the camera along its local basis. The axis
// inputs are in [-1, 1] and dt is the frame time in seconds.
func (c *FlyCamera) HandleMovement(forward, right, up float32, dt float32) {
	step := c.Speed * dt
	c.Position = c.Position.Add(c.Forward().Mul(forward * step))
	c.Position = c.Position.Add(c.Right().Mul(right * step))
	c.Position = c.Position.Add(c.Up().Mul(up * step))
}
