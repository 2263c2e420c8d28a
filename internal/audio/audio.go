package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// BaseFreq is the pitch of a fully ordered gas. Full disorder sits two
	// octaves higher.
	BaseFreq = 110.0
)

// Processor sonifies the simulation: a soft pad whose pitch follows entropy
// and whose brightness follows temperature.
type Processor struct {
	Stream *portaudio.Stream

	Time        float64
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int

	mu          sync.Mutex
	entropy     float64
	temperature float64

	// smoothed copies, touched only by the audio callback
	entropySmooth, tempSmooth float64

	Active bool
}

func NewProcessor() *Processor {
	delayLen := int(float64(SampleRate) * 0.6)

	return &Processor{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}

	// Output only; duplex streams often fail on Linux when devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("start stream: %w", err)
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.Active {
		return
	}
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
}

// UpdateThermo hands the latest readings to the audio callback.
func (a *Processor) UpdateThermo(entropy, temperature float64) {
	a.mu.Lock()
	a.entropy = entropy
	a.temperature = temperature
	a.mu.Unlock()
}

// Pitch maps normalized entropy onto BaseFreq..4*BaseFreq.
func Pitch(entropy float64) float64 {
	return BaseFreq * math.Pow(2, 2*math.Min(math.Max(entropy, 0), 1))
}

// Cutoff opens the low-pass filter as the gas heats up, 300 Hz to 1200 Hz.
func Cutoff(temperature float64) float64 {
	return 300.0 + math.Min(math.Max(temperature, 0)/2.0, 900.0)
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (a *Processor) ProcessAudio(out [][]float32) {
	a.mu.Lock()
	targetS, targetT := a.entropy, a.temperature
	a.mu.Unlock()

	// Slow morphing to prevent jumps.
	a.entropySmooth = a.entropySmooth*0.99 + targetS*0.01
	a.tempSmooth = a.tempSmooth*0.995 + targetT*0.005

	root := Pitch(a.entropySmooth)
	// root, fifth, octave
	ratios := []float64{1, 1.5, 2}
	cutoff := Cutoff(a.tempSmooth)
	dt := 1.0 / float64(SampleRate)
	vol := 0.252

	for i := 0; i < len(out[0]); i++ {
		sampleL := 0.0
		sampleR := 0.0

		for j, r := range ratios {
			f := root * r
			oscL := triangle(a.Time * (f * 0.999))
			oscR := triangle(a.Time * (f * 1.001))

			g := 1.0 / float64(len(ratios))
			lfo := math.Sin(a.Time*0.2 + float64(j))

			sampleL += oscL * g * (0.7 + 0.3*lfo)
			sampleR += oscR * g * (0.7 + 0.3*lfo)
		}

		var outL, outR float64
		outL, a.FilterState[0] = lpf(sampleL, cutoff, dt, a.FilterState[0])
		outR, a.FilterState[1] = lpf(sampleR, cutoff, dt, a.FilterState[1])

		delayL := a.DelayLine[0][a.DelayHead]
		delayR := a.DelayLine[1][a.DelayHead]

		// ping-pong feedback
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		a.DelayLine[0][a.DelayHead] = mixL * 0.7
		a.DelayLine[1][a.DelayHead] = mixR * 0.7

		a.DelayHead = (a.DelayHead + 1) % len(a.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		a.Time += dt
	}
}
