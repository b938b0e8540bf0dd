package ebiten

import (
	"encoding/binary"
	"math"
	"math/rand"
	"slices"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"chosenoffset.com/nightcorridor/internal/render"
)

const (
	sampleRate = 44100
	maxVoices  = 16
	attack     = 0.005 // Seconds of fade-in to avoid clicks
)

// EbitenAudio implements render.AudioPlayer by synthesizing tones into
// 16-bit stereo PCM and playing them through an ebiten audio context.
type EbitenAudio struct {
	ctx    *audio.Context
	pcm    map[render.Tone][]byte
	voices []*audio.Player
}

// NewAudio creates the audio sink. Only one may exist per process.
func NewAudio() *EbitenAudio {
	return &EbitenAudio{
		ctx: audio.NewContext(sampleRate),
		pcm: make(map[render.Tone][]byte),
	}
}

// Play starts a tone at the given volume. Excess voices are dropped.
func (a *EbitenAudio) Play(t render.Tone, volume float64) {
	a.voices = slices.DeleteFunc(a.voices, func(p *audio.Player) bool {
		if p.IsPlaying() {
			return false
		}
		p.Close()
		return true
	})
	if len(a.voices) >= maxVoices {
		return
	}

	data, ok := a.pcm[t]
	if !ok {
		data = synthesize(t)
		a.pcm[t] = data
	}
	p := a.ctx.NewPlayerFromBytes(data)
	p.SetVolume(max(0, min(1, volume)))
	p.Play()
	a.voices = append(a.voices, p)
}

// synthesize renders a tone with a short attack and exponential decay
func synthesize(t render.Tone) []byte {
	n := int(t.Duration * sampleRate)
	buf := make([]byte, n*4)
	noise := rand.New(rand.NewSource(int64(t.Freq*1000) + int64(n)))
	for i := range n {
		ts := float64(i) / sampleRate
		env := math.Exp(-5 * ts / t.Duration)
		if ts < attack {
			env *= ts / attack
		}
		var v float64
		if t.Noise {
			v = noise.Float64()*2 - 1
		} else {
			v = math.Sin(2 * math.Pi * t.Freq * ts)
		}
		s := uint16(int16(v * env * 0.8 * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
