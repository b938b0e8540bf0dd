package menu

import (
	"fmt"
	"math"

	"chosenoffset.com/nightcorridor/internal/game"
	"chosenoffset.com/nightcorridor/internal/render"
	"chosenoffset.com/nightcorridor/internal/ui"
)

// minResultTime keeps a held fire or jump key from skipping the screen
const minResultTime = 0.6

// ResultScreen shows how a run ended until the player continues
type ResultScreen struct {
	end    game.RunEnd
	notice string
	shown  float64
}

// NewResultScreen creates the screen for a finished run
func NewResultScreen(end game.RunEnd) *ResultScreen {
	return &ResultScreen{end: end, notice: "Sending score..."}
}

// SetNotice replaces the leaderboard status line
func (s *ResultScreen) SetNotice(text string) {
	s.notice = text
}

// Update returns true when the player dismisses the screen
func (s *ResultScreen) Update(dt float64, in render.InputManager) bool {
	s.shown += dt
	if s.shown < minResultTime {
		return false
	}
	return in.IsKeyJustPressed(render.KeyEnter) ||
		in.IsKeyJustPressed(render.KeySpace) ||
		in.IsKeyJustPressed(render.KeyEscape)
}

// Draw renders the summary
func (s *ResultScreen) Draw(r render.Renderer, dst render.Image) {
	dst.Fill(ui.Background)
	w, _ := dst.Size()

	title := "THE NIGHT ENDS"
	clr := ui.Health
	if s.end.Outcome == game.Win {
		title = "DAWN"
		clr = ui.Highlight
	}
	tw, _ := r.MeasureText(title, 2.2)
	r.DrawText(dst, title, (w-tw)/2, 70, clr, 2.2)

	mw, _ := r.MeasureText(s.end.Message, 1.2)
	r.DrawText(dst, s.end.Message, (w-mw)/2, 140, ui.Text, 1.2)

	lines := []string{
		fmt.Sprintf("Score      %d", s.end.Score),
		fmt.Sprintf("Distance   %dm", int(s.end.Distance/10)),
		fmt.Sprintf("Kills      %d", s.end.Kills),
		fmt.Sprintf("Time       %s", clock(s.end.Elapsed)),
		fmt.Sprintf("Mission    %s (%s)", s.end.Mission.Title(), s.end.Tag),
	}
	y := 200
	for _, l := range lines {
		r.DrawText(dst, l, w/2-140, y, ui.Text, 1)
		y += 24
	}

	if s.notice != "" {
		nw, _ := r.MeasureText(s.notice, 1)
		r.DrawText(dst, s.notice, (w-nw)/2, y+24, ui.Dim, 1)
	}
	if s.shown >= minResultTime {
		hint := "Enter to return"
		hw, _ := r.MeasureText(hint, 0.9)
		r.DrawText(dst, hint, (w-hw)/2, y+64, ui.Dim, 0.9)
	}
}

func clock(secs float64) string {
	total := int(math.Floor(max(0, secs)))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
