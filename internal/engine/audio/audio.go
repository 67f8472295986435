// Package audio provides sound effect playback: synthesized blips for taps
// and bounces, decoded WAV effects and an optional ambient loop.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// fadeOut is the release applied to synthesized tones so they do not click.
const fadeOut = 15 * time.Millisecond

// Manager handles audio playback.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Ambient loop
	loopStreamer beep.StreamSeekCloser
	loopCtrl     *beep.Ctrl
	loopVolume   *effects.Volume

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sfxMixer:     &beep.Mixer{},
	}
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLoopInternal()
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateLoopVolume()
}

// SetSFXVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences all output without touching the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.updateLoopVolume()
}

// Muted reports whether output is silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the effect volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

func (m *Manager) updateLoopVolume() {
	if m.loopVolume == nil {
		return
	}
	vol := m.masterVolume
	speaker.Lock()
	m.loopVolume.Silent = m.muted || vol <= 0
	m.loopVolume.Volume = dbToBase2(volumeToDb(vol))
	speaker.Unlock()
}

// sfxGain returns the effective effect level, or false when nothing should
// be played.
func (m *Manager) sfxGain() (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.initialized || m.muted {
		return 0, false
	}
	vol := m.masterVolume * m.sfxVolLevel
	return vol, vol > 0
}

// volumeToDb converts a 0-1 volume to decibels: 1 is 0dB, 0.5 about -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(vol)
}

// dbToBase2 converts decibels to the base-2 exponent effects.Volume uses.
func dbToBase2(db float64) float64 {
	return db / (20 * math.Log10(2))
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Blip plays a short sine tone. Silently does nothing before Init or while
// muted.
func (m *Manager) Blip(freq float64, dur time.Duration) error {
	vol, ok := m.sfxGain()
	if !ok {
		return nil
	}
	s, err := tone(m.sampleRate, freq, dur)
	if err != nil {
		return err
	}
	m.play(s, vol*0.5)
	return nil
}

// Chirp plays a sequence of blips back to back.
func (m *Manager) Chirp(freqs []float64, each time.Duration) error {
	vol, ok := m.sfxGain()
	if !ok || len(freqs) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		t, err := tone(m.sampleRate, f, each)
		if err != nil {
			return err
		}
		parts = append(parts, t)
	}
	m.play(beep.Seq(parts...), vol*0.5)
	return nil
}

func tone(sr beep.SampleRate, freq float64, dur time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.0fHz: %w", freq, err)
	}
	total := sr.N(dur)
	release := sr.N(fadeOut)
	if release > total {
		release = total
	}
	body := beep.Take(total-release, sine)
	tail := &fader{s: beep.Take(release, sine), n: release}
	return beep.Seq(body, tail), nil
}

// fader ramps its source linearly down to silence over n samples.
type fader struct {
	s    beep.Streamer
	n, i int
}

func (f *fader) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for j := 0; j < n; j++ {
		g := 0.0
		if f.i < f.n {
			g = 1 - float64(f.i)/float64(f.n)
		}
		samples[j][0] *= g
		samples[j][1] *= g
		f.i++
	}
	return n, ok
}

func (f *fader) Err() error {
	return f.s.Err()
}

// PlayWAV plays a sound effect from WAV data.
func (m *Manager) PlayWAV(data []byte) error {
	vol, ok := m.sfxGain()
	if !ok {
		return nil
	}

	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	m.play(m.resample(format.SampleRate, streamer), vol)
	return nil
}

func (m *Manager) resample(from beep.SampleRate, s beep.Streamer) beep.Streamer {
	if from == m.sampleRate {
		return s
	}
	return beep.Resample(4, from, m.sampleRate, s)
}

func (m *Manager) play(s beep.Streamer, vol float64) {
	v := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   dbToBase2(volumeToDb(vol)),
	}
	speaker.Lock()
	m.sfxMixer.Add(v)
	speaker.Unlock()
}

// PlayLoop starts an ambient WAV loop, replacing any current one.
func (m *Manager) PlayLoop(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}
	m.stopLoopInternal()

	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	looped, err := beep.Loop2(streamer)
	if err != nil {
		streamer.Close()
		return fmt.Errorf("loop: %w", err)
	}

	m.loopCtrl = &beep.Ctrl{Streamer: m.resample(format.SampleRate, looped)}
	m.loopVolume = &effects.Volume{Streamer: m.loopCtrl, Base: 2}
	m.loopStreamer = streamer
	m.updateLoopVolume()

	speaker.Lock()
	m.sfxMixer.Add(m.loopVolume)
	speaker.Unlock()
	return nil
}

// StopLoop stops the ambient loop.
func (m *Manager) StopLoop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLoopInternal()
}

func (m *Manager) stopLoopInternal() {
	if m.loopCtrl != nil {
		speaker.Lock()
		m.loopCtrl.Streamer = nil
		speaker.Unlock()
	}
	if m.loopStreamer != nil {
		m.loopStreamer.Close()
		m.loopStreamer = nil
	}
	m.loopCtrl = nil
	m.loopVolume = nil
}

// LoopPlaying returns whether an ambient loop is active.
func (m *Manager) LoopPlaying() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loopCtrl != nil
}
