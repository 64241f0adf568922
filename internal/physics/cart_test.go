package physics

import (
	"math"
	"testing"

	"github.com/san-kum/pushcart/internal/dynamo"
)

func testCart() Cart {
	return Cart{X: 100, HalfWidth: 10, Top: 0, Bottom: 5, HitboxRatio: 0.5, MaxForce: 25}
}

func TestPushForce(t *testing.T) {
	tests := []struct {
		name    string
		pointer dynamo.Pointer
		want    float64
	}{
		{"left zone midpoint", dynamo.Pointer{X: 95, Y: 2, Active: true}, 12.5},
		{"left outer edge", dynamo.Pointer{X: 90, Y: 2, Active: true}, 0},
		{"center takes left precedence", dynamo.Pointer{X: 100, Y: 2, Active: true}, 25},
		{"right zone midpoint", dynamo.Pointer{X: 105, Y: 2, Active: true}, -12.5},
		{"right outer edge", dynamo.Pointer{X: 110, Y: 2, Active: true}, 0},
		{"right inner", dynamo.Pointer{X: 101, Y: 2, Active: true}, -22.5},
		{"left of cart", dynamo.Pointer{X: 80, Y: 2, Active: true}, 0},
		{"right of cart", dynamo.Pointer{X: 120, Y: 2, Active: true}, 0},
		{"above band", dynamo.Pointer{X: 95, Y: -1, Active: true}, 0},
		{"below band", dynamo.Pointer{X: 95, Y: 6, Active: true}, 0},
		{"band top inclusive", dynamo.Pointer{X: 95, Y: 0, Active: true}, 12.5},
		{"band bottom inclusive", dynamo.Pointer{X: 95, Y: 5, Active: true}, 12.5},
		{"inactive pointer", dynamo.Pointer{X: 95, Y: 2}, 0},
	}

	c := testCart()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.PushForce(tt.pointer)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PushForce() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPushForceNarrowZones(t *testing.T) {
	c := testCart()
	c.HitboxRatio = 0.25

	// zones are [90,95] and [105,110]; the middle is dead
	if f := c.PushForce(dynamo.Pointer{X: 100, Y: 1, Active: true}); f != 0 {
		t.Errorf("expected dead center, got %f", f)
	}
	if f := c.PushForce(dynamo.Pointer{X: 92.5, Y: 1, Active: true}); math.Abs(f-12.5) > 1e-12 {
		t.Errorf("expected 12.5, got %f", f)
	}
	if f := c.PushForce(dynamo.Pointer{X: 107.5, Y: 1, Active: true}); math.Abs(f+12.5) > 1e-12 {
		t.Errorf("expected -12.5, got %f", f)
	}
}

func TestPushForceOverlappingZonesPreferLeft(t *testing.T) {
	c := testCart()
	c.HitboxRatio = 0.75

	// x=104 lies in both [90,105] and [95,110]
	f := c.PushForce(dynamo.Pointer{X: 104, Y: 1, Active: true})
	if f <= 0 {
		t.Errorf("expected left-zone push, got %f", f)
	}
}

func TestPushForceZeroWidthZone(t *testing.T) {
	for _, c := range []Cart{
		{X: 100, HalfWidth: 10, Bottom: 5, HitboxRatio: 0, MaxForce: 25},
		{X: 100, HalfWidth: 0, Bottom: 5, HitboxRatio: 0.5, MaxForce: 25},
	} {
		f := c.PushForce(dynamo.Pointer{X: 100 - c.HalfWidth, Y: 1, Active: true})
		if f != 0 || math.IsNaN(f) {
			t.Errorf("expected zero force for zero-width zone, got %f", f)
		}
	}
}

func TestZone(t *testing.T) {
	c := testCart()
	if z := c.Zone(dynamo.Pointer{X: 96, Y: 1, Active: true}); z != 1 {
		t.Errorf("expected left zone, got %d", z)
	}
	if z := c.Zone(dynamo.Pointer{X: 104, Y: 1, Active: true}); z != -1 {
		t.Errorf("expected right zone, got %d", z)
	}
	if z := c.Zone(dynamo.Pointer{X: 50, Y: 1, Active: true}); z != 0 {
		t.Errorf("expected no zone, got %d", z)
	}
}

func TestEffectiveForce(t *testing.T) {
	tests := []struct {
		force, velocity, want float64
	}{
		{10, 2, 10},
		{10, -2, -10},
		{-10, -2, 10},
		{-10, 2, -10},
		{10, 0, 0},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := EffectiveForce(tt.force, tt.velocity); got != tt.want {
			t.Errorf("EffectiveForce(%f, %f) = %f, want %f", tt.force, tt.velocity, got, tt.want)
		}
	}
}

func TestKineticEnergy(t *testing.T) {
	k := dynamo.Kinematics{Velocity: -3, Mass: 5}
	if e := KineticEnergy(k); e != 22.5 {
		t.Errorf("expected 22.5, got %f", e)
	}
}
