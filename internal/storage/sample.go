package storage

import (
	"encoding/json"
	"errors"
	"io"
	"math"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/sim"
)

// Sample is one particle position at one recorded frame.
type Sample struct {
	Frame    int     `csv:"frame" json:"frame"`
	Time     float64 `csv:"time" json:"time"`
	Particle int     `csv:"particle" json:"particle"`
	X        float64 `csv:"x" json:"x"`
	Y        float64 `csv:"y" json:"y"`
	Z        float64 `csv:"z" json:"z"`
}

func (s Sample) State() dynamo.Vec3 { return dynamo.Vec3{X: s.X, Y: s.Y, Z: s.Z} }

type sampleJSON struct {
	Frame    int      `json:"frame"`
	Time     float64  `json:"time"`
	Particle int      `json:"particle"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Z        *float64 `json:"z"`
}

// MarshalJSON writes non-finite coordinates of a diverged particle as null.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(sampleJSON{
		Frame:    s.Frame,
		Time:     s.Time,
		Particle: s.Particle,
		X:        finite(s.X),
		Y:        finite(s.Y),
		Z:        finite(s.Z),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func WriteCSV(w io.Writer, samples []Sample) error {
	if samples == nil {
		samples = []Sample{}
	}
	return gocsv.Marshal(samples, w)
}

func ReadCSV(r io.Reader) ([]Sample, error) {
	var samples []Sample
	if err := gocsv.Unmarshal(r, &samples); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []Sample{}, nil
		}
		return nil, err
	}
	return samples, nil
}

// Trajectory extracts one particle's times and states in recorded order.
func Trajectory(samples []Sample, particle int) ([]float64, []dynamo.Vec3) {
	var times []float64
	var states []dynamo.Vec3
	for _, s := range samples {
		if s.Particle != particle {
			continue
		}
		times = append(times, s.Time)
		states = append(states, s.State())
	}
	return times, states
}

// Recorder is a sim.Observer that samples particle positions every Every
// frames. Only the first Particles particles are recorded; zero means all.
type Recorder struct {
	Every     int
	Particles int
	samples   []Sample
}

func NewRecorder(every, particles int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Every: every, Particles: particles}
}

func (r *Recorder) OnFrame(e *sim.Engine) {
	frame := int(e.Frame())
	if frame%r.Every != 0 {
		return
	}
	ps := e.Particles()
	n := len(ps)
	if r.Particles > 0 && r.Particles < n {
		n = r.Particles
	}
	t := e.Time()
	for i := 0; i < n; i++ {
		s := ps[i].State
		r.samples = append(r.samples, Sample{Frame: frame, Time: t, Particle: i, X: s.X, Y: s.Y, Z: s.Z})
	}
}

func (r *Recorder) Samples() []Sample { return r.samples }

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Count   int         `json:"count"`
	Samples []Sample    `json:"samples"`
}

// ExportJSON writes the run and its samples as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []Sample) error {
	data := ExportData{
		Run:     *meta,
		Count:   len(samples),
		Samples: samples,
	}
	if data.Samples == nil {
		data.Samples = []Sample{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
