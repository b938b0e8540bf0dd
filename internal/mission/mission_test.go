package mission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/nightcorridor/internal/config"
)

func TestExitTriggersOnceAtReach(t *testing.T) {
	cfg := config.DefaultTuning().Mission
	m := New(Exit, cfg)
	s := State{PlayerX: 1000 - cfg.ExitReach - 1, ExitX: 1000}

	_, ended := m.Update(0.016, s)
	assert.False(t, ended)
	assert.True(t, m.Active())

	s.PlayerX = 1000 - cfg.ExitReach
	res, ended := m.Update(0.016, s)
	require.True(t, ended)
	assert.True(t, res.Won)
	assert.Equal(t, MsgEscaped, res.Message)
	assert.True(t, m.Done)

	_, ended = m.Update(0.016, s)
	assert.False(t, ended, "the result is emitted exactly once")
}

func TestSurviveCountsDown(t *testing.T) {
	cfg := config.MissionConfig{SurviveDuration: 1}
	m := New(Survive, cfg)
	assert.Equal(t, "0:01", m.TimerText())

	_, ended := m.Update(0.6, State{})
	assert.False(t, ended)

	res, ended := m.Update(0.6, State{})
	require.True(t, ended)
	assert.True(t, res.Won)
	assert.Equal(t, 0.0, m.TimeLeft)
	assert.Equal(t, "0:00", m.TimerText())
}

func TestRescueCompletesWhenSaved(t *testing.T) {
	m := New(Rescue, config.DefaultTuning().Mission)
	assert.Empty(t, m.TimerText())

	_, ended := m.Update(0.016, State{})
	assert.False(t, ended)

	res, ended := m.Update(0.016, State{DaughterSaved: true})
	require.True(t, ended)
	assert.Equal(t, MsgRescued, res.Message)
}

func TestFailureBeatsSuccess(t *testing.T) {
	m := New(Exit, config.DefaultTuning().Mission)

	res, ended := m.Update(0.016, State{PlayerX: 5000, ExitX: 100, PlayerDead: true})
	require.True(t, ended)
	assert.False(t, res.Won)
	assert.True(t, m.Failed)
	assert.False(t, m.Done)

	broken := New(Survive, config.DefaultTuning().Mission)
	res, _ = broken.Update(0.016, State{PlayerBroken: true})
	assert.Equal(t, MsgBroken, res.Message)
}

func TestFailIsOneWay(t *testing.T) {
	m := New(Rescue, config.DefaultTuning().Mission)
	assert.True(t, m.Fail())
	assert.False(t, m.Fail())

	_, ended := m.Update(0.016, State{DaughterSaved: true})
	assert.False(t, ended)
	assert.False(t, m.Done)
}

func TestParseID(t *testing.T) {
	for _, id := range IDs {
		got, ok := ParseID(id.String())
		assert.True(t, ok)
		assert.Equal(t, id, got)
	}
	_, ok := ParseID("escort")
	assert.False(t, ok)
}
