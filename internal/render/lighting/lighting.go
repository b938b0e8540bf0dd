// Package lighting computes how lit a point of the corridor is. It is purely
// presentational: the simulation never reads it.
package lighting

import (
	"image/color"
	"math"
)

// LightSource represents a single light source in the world
type LightSource struct {
	X         float64     // World X position (in pixels)
	Y         float64     // World Y position (in pixels)
	Radius    float64     // Light radius (in pixels)
	Intensity float64     // Light intensity (0.0 to 1.0)
	Color     color.NRGBA // Light color
}

// flash is a short-lived light that fades out linearly
type flash struct {
	light    LightSource
	life     float64
	duration float64
}

// Manager handles all light sources of a run
type Manager struct {
	ambientLight  float64 // 0.0 = pitch black, 1.0 = fully lit
	playerLight   LightSource
	playerLightOn bool
	fixed         map[string]LightSource // Keyed by owner, e.g. "exit"
	flashes       []flash
}

// Lantern is the default light carried by the player
var Lantern = LightSource{Radius: 220, Intensity: 0.85, Color: color.NRGBA{255, 214, 150, 255}}

// NewManager creates a manager with a dim ambient level
func NewManager() *Manager {
	return &Manager{
		ambientLight:  0.15,
		playerLight:   Lantern,
		playerLightOn: true,
		fixed:         make(map[string]LightSource),
	}
}

// SetAmbientLight sets the global ambient light level
func (m *Manager) SetAmbientLight(level float64) {
	m.ambientLight = clamp01(level)
}

// AmbientLight returns the current ambient light level
func (m *Manager) AmbientLight() float64 {
	return m.ambientLight
}

// EnablePlayerLight turns the player's lantern on or off
func (m *Manager) EnablePlayerLight(enabled bool) {
	m.playerLightOn = enabled
}

// UpdatePlayerLightPosition moves the lantern with the player
func (m *Manager) UpdatePlayerLightPosition(x, y float64) {
	m.playerLight.X = x
	m.playerLight.Y = y
}

// SetLight adds or replaces a fixed light
func (m *Manager) SetLight(key string, l LightSource) {
	m.fixed[key] = l
}

// RemoveLight removes a fixed light, e.g. when its prop breaks
func (m *Manager) RemoveLight(key string) {
	delete(m.fixed, key)
}

// Flash adds a light that fades out over duration seconds
func (m *Manager) Flash(l LightSource, duration float64) {
	if duration <= 0 {
		return
	}
	m.flashes = append(m.flashes, flash{light: l, life: duration, duration: duration})
}

// Update fades and expires flashes
func (m *Manager) Update(dt float64) {
	kept := m.flashes[:0]
	for _, f := range m.flashes {
		f.life -= dt
		if f.life > 0 {
			kept = append(kept, f)
		}
	}
	m.flashes = kept
}

// Reset drops every fixed light and flash, called when a run starts. The
// lantern keeps its on/off state.
func (m *Manager) Reset() {
	clear(m.fixed)
	m.flashes = m.flashes[:0]
}

// Lights returns all active light sources, flashes at their current intensity
func (m *Manager) Lights() []LightSource {
	lights := make([]LightSource, 0, len(m.fixed)+len(m.flashes)+1)
	if m.playerLightOn {
		lights = append(lights, m.playerLight)
	}
	for _, l := range m.fixed {
		lights = append(lights, l)
	}
	for _, f := range m.flashes {
		l := f.light
		l.Intensity *= f.life / f.duration
		lights = append(lights, l)
	}
	return lights
}

// Brightness returns the light level at a world point in [ambient, 1].
// Each source falls off quadratically to zero at its radius.
func (m *Manager) Brightness(x, y float64) float64 {
	level := m.ambientLight
	for _, l := range m.Lights() {
		if l.Radius <= 0 {
			continue
		}
		d := math.Hypot(x-l.X, y-l.Y)
		if d >= l.Radius {
			continue
		}
		k := 1 - d/l.Radius
		level += l.Intensity * k * k
	}
	return clamp01(level)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
