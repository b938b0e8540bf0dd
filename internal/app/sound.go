package app

import (
	"chosenoffset.com/nightcorridor/internal/game"
	"chosenoffset.com/nightcorridor/internal/render"
)

// Tones for each cue kind
var cueTones = map[game.CueKind]render.Tone{
	game.CueShoot: {Duration: 0.08, Noise: true},
	game.CueHit:   {Freq: 110, Duration: 0.12},
	game.CueLaser: {Freq: 620, Duration: 0.22},
}

// playCues forwards a frame's cues to the audio sink. A nil sink is silent.
func playCues(a render.AudioPlayer, cues []game.Cue) {
	if a == nil {
		return
	}
	for _, c := range cues {
		tone, ok := cueTones[c.Kind]
		if !ok {
			continue
		}
		a.Play(tone, c.Amplitude)
	}
}
