// Package audio plays the game's sound cues through the system speaker.
package audio

import (
	"bytes"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const (
	sampleRate = beep.SampleRate(44100)
	// resampleQuality is the beep.Resample quality for files at other rates
	resampleQuality = 4
)

// Source reads raw sound files
type Source interface {
	ReadSound(file string) ([]byte, error)
}

// output is where mixed audio goes
type output struct {
	init   func(sr beep.SampleRate, bufferSize int) error
	play   func(s ...beep.Streamer)
	lock   func()
	unlock func()
}

var speakerOutput = output{
	init:   speaker.Init,
	play:   speaker.Play,
	lock:   speaker.Lock,
	unlock: speaker.Unlock,
}

// Player holds decoded cues and mixes them onto the speaker
type Player struct {
	mu          sync.Mutex
	out         output
	mixer       *beep.Mixer
	buffers     map[string]*beep.Buffer
	missing     map[string]bool
	initialized bool
}

// NewPlayer decodes every cue file. cues maps a cue name to a wav file.
func NewPlayer(src Source, cues map[string]string) (*Player, error) {
	p := &Player{
		out:     speakerOutput,
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer, len(cues)),
		missing: make(map[string]bool),
	}

	names := make([]string, 0, len(cues))
	for name := range cues {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := src.ReadSound(cues[name])
		if err != nil {
			return nil, err
		}
		buf, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode sound %s: %w", name, err)
		}
		p.buffers[name] = buf
	}
	return p, nil
}

// decode reads a wav file into memory at the speaker sample rate
func decode(data []byte) (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	if format.SampleRate == sampleRate {
		buf.Append(streamer)
	} else {
		buf.Append(beep.Resample(resampleQuality, format.SampleRate, sampleRate, streamer))
	}
	return buf, nil
}

// Initialize opens the speaker
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := p.out.init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("failed to open speaker: %w", err)
	}
	p.out.play(p.mixer)
	p.initialized = true
	return nil
}

// Has reports whether a cue is loaded
func (p *Player) Has(cue string) bool {
	_, ok := p.buffers[cue]
	return ok
}

// Play starts a cue. Unknown cues are logged once and otherwise ignored.
func (p *Player) Play(cue string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, ok := p.buffers[cue]
	if !ok {
		if !p.missing[cue] {
			p.missing[cue] = true
			log.Printf("audio: no sound for cue %q", cue)
		}
		return
	}
	if !p.initialized {
		return
	}

	p.out.lock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
	p.out.unlock()
}

// Cues returns the loaded cue names, sorted
func (p *Player) Cues() []string {
	names := make([]string, 0, len(p.buffers))
	for name := range p.buffers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Playing returns the number of cues still sounding
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return 0
	}
	p.out.lock()
	defer p.out.unlock()
	return p.mixer.Len()
}

// Close stops every sound
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.out.lock()
	p.mixer.Clear()
	p.out.unlock()
	p.initialized = false
}
