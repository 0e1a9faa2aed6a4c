package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/grainfall/grain"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Config   grain.Config
	Rows     int
	Cols     int

	// Results
	TotalTicks    int64
	CompletedRuns int
	TotalTime     time.Duration
	TickTime      Stats
	Systems       []grain.SystemStats
	Particles     int
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// MergeSystems folds one run's scheduler stats into the report. Systems are
// matched by position, which is stable for a simulation.
func (r *Report) MergeSystems(stats *grain.SchedulerStats) {
	for i, system := range stats.Systems {
		if system.ExecutionCount == 0 {
			continue
		}
		for len(r.Systems) <= i {
			r.Systems = append(r.Systems, grain.SystemStats{})
		}

		total := &r.Systems[i]
		total.Name = system.Name
		if total.ExecutionCount == 0 || system.MinDuration < total.MinDuration {
			total.MinDuration = system.MinDuration
		}
		total.MaxDuration = max(total.MaxDuration, system.MaxDuration)
		total.ExecutionCount += system.ExecutionCount
		total.TotalDuration += system.TotalDuration
		total.AvgDuration = total.TotalDuration / time.Duration(total.ExecutionCount)
		total.LastDuration = system.LastDuration
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Grainfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Area:** {{.Config.Width}}x{{.Config.Height}} px, block {{.Config.BlockSize}} px ({{.Rows}} rows, {{.Cols}} cols)
- **Update Delay:** {{.Config.UpdateDelay}}
- **New Delay:** {{.Config.NewDelay}}
- **Big Probability:** {{.Config.BigProbability}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Completed Runs:** {{.CompletedRuns}}
- **Particles In Last Run:** {{.Particles}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **P99:** {{.TickTime.P99}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Systems
| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- Total GC Pause: {{ns .MemStatsEnd.PauseTotalNs}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
