// Package menu provides the start menu (avatar and mission selection, with
// the local leaderboard) and the end-of-run result screen.
package menu

import (
	"fmt"
	"image/color"

	"chosenoffset.com/nightcorridor/internal/mission"
	"chosenoffset.com/nightcorridor/internal/render"
	"chosenoffset.com/nightcorridor/internal/score"
	"chosenoffset.com/nightcorridor/internal/ui"
)

// Selection is what the player picked
type Selection struct {
	Avatar  string
	Mission mission.ID
}

type row int

const (
	rowAvatar row = iota
	rowMission
	rowStart
	rowCount
)

const (
	menuX      = 80
	firstRowY  = 140
	rowHeight  = 40
	rowWidth   = 360
	maxLeaders = 5
)

// MainMenu is the start screen
type MainMenu struct {
	avatars   []string
	missions  []mission.ID
	avatar    int
	mission   int
	focus     row
	leaders   []score.Submission
	player    string
	notice    string
	lastClick bool
}

// NewMainMenu creates a menu offering the given avatar presets
func NewMainMenu(avatars []string, player string) *MainMenu {
	if len(avatars) == 0 {
		avatars = []string{""}
	}
	return &MainMenu{
		avatars:  avatars,
		missions: mission.IDs,
		player:   player,
	}
}

// SetLeaderboard replaces the displayed top scores
func (m *MainMenu) SetLeaderboard(top []score.Submission) {
	if len(top) > maxLeaders {
		top = top[:maxLeaders]
	}
	m.leaders = top
}

// SetNotice shows a one-line status, e.g. a leaderboard failure
func (m *MainMenu) SetNotice(text string) {
	m.notice = text
}

// Current returns the highlighted selection
func (m *MainMenu) Current() Selection {
	return Selection{Avatar: m.avatars[m.avatar], Mission: m.missions[m.mission]}
}

// Update handles input. It returns true when the player starts a run.
func (m *MainMenu) Update(in render.InputManager) (Selection, bool) {
	if in.IsKeyJustPressed(render.KeyUp) || in.IsKeyJustPressed(render.KeyW) {
		m.focus = (m.focus - 1 + rowCount) % rowCount
	}
	if in.IsKeyJustPressed(render.KeyDown) || in.IsKeyJustPressed(render.KeyS) {
		m.focus = (m.focus + 1) % rowCount
	}
	if in.IsKeyJustPressed(render.KeyLeft) || in.IsKeyJustPressed(render.KeyA) {
		m.cycle(m.focus, -1)
	}
	if in.IsKeyJustPressed(render.KeyRight) || in.IsKeyJustPressed(render.KeyD) {
		m.cycle(m.focus, 1)
	}
	if in.IsKeyJustPressed(render.KeyEnter) || in.IsKeyJustPressed(render.KeySpace) {
		return m.Current(), true
	}

	// Mouse: a click on a row cycles it, a click on start starts
	pressed := in.IsMouseButtonPressed(render.MouseButtonLeft)
	clicked := pressed && !m.lastClick
	m.lastClick = pressed
	if clicked {
		cx, cy := in.GetCursorPosition()
		for r := row(0); r < rowCount; r++ {
			x, y := menuX, firstRowY+int(r)*rowHeight
			if cx < x || cx >= x+rowWidth || cy < y || cy >= y+rowHeight-8 {
				continue
			}
			m.focus = r
			if r == rowStart {
				return m.Current(), true
			}
			m.cycle(r, 1)
		}
	}
	return Selection{}, false
}

func (m *MainMenu) cycle(r row, delta int) {
	switch r {
	case rowAvatar:
		m.avatar = (m.avatar + delta + len(m.avatars)) % len(m.avatars)
	case rowMission:
		m.mission = (m.mission + delta + len(m.missions)) % len(m.missions)
	}
}

// Draw renders the menu
func (m *MainMenu) Draw(r render.Renderer, dst render.Image) {
	dst.Fill(ui.Background)
	r.DrawText(dst, "NIGHT CORRIDOR", menuX, 50, ui.Highlight, 2.2)
	r.DrawText(dst, "Playing as "+m.player, menuX, 100, ui.Dim, 1)

	labels := [rowCount]string{
		rowAvatar:  "Avatar   < " + m.avatars[m.avatar] + " >",
		rowMission: "Mission  < " + m.missions[m.mission].Title() + " >",
		rowStart:   "Begin",
	}
	for i, label := range labels {
		y := firstRowY + i*rowHeight
		var clr color.Color = ui.Text
		if row(i) == m.focus {
			r.FillRect(dst, menuX-8, float32(y-6), rowWidth, rowHeight-8, ui.PanelFill)
			r.StrokeRect(dst, menuX-8, float32(y-6), rowWidth, rowHeight-8, 1, ui.Border)
			clr = ui.Highlight
		}
		r.DrawText(dst, label, menuX, y, clr, 1.2)
	}

	hint := "Arrows or WASD to choose, Enter to start, Esc returns here during a run"
	r.DrawText(dst, hint, menuX, firstRowY+int(rowCount)*rowHeight+10, ui.Dim, 0.9)

	lx := menuX + rowWidth + 80
	r.DrawText(dst, "Longest nights", lx, firstRowY, ui.Highlight, 1.2)
	if len(m.leaders) == 0 {
		r.DrawText(dst, "No scores yet", lx, firstRowY+rowHeight, ui.Dim, 1)
	}
	for i, s := range m.leaders {
		line := fmt.Sprintf("%d. %-14s %6d  %s", i+1, s.Name, s.Score, s.Mission)
		r.DrawText(dst, line, lx, firstRowY+rowHeight+i*24, ui.Text, 1)
	}

	if m.notice != "" {
		_, h := dst.Size()
		r.DrawText(dst, m.notice, menuX, h-40, ui.Warning, 1)
	}
}
