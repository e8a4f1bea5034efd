package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pomodoro/internal/core/timer"
)

// ErrInvalidScript indicates a simulate script that cannot be parsed.
var ErrInvalidScript = errors.New("invalid script")

// step is one parsed script token.
type step struct {
	name  string
	count int
}

// AddSimulateCommand adds the simulate command to the root command.
func AddSimulateCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(&cobra.Command{
		Use:   "simulate SCRIPT",
		Short: "Replay a command script against a timer on virtual time",
		Long: `Replay a comma-separated script against a timer driven by virtual ticks.

Tokens: start, pause, resume, stop, reset, skip, break, break:SECONDS, tick:N.
Each tick is one second of timer time.`,
		Example: `  pomodoro simulate --work 3s --short-break 2s --rollover 2s "start,tick:3,break,tick:2"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseScript(args[0])
			if err != nil {
				return err
			}
			settings, _, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			scheduler := timer.NewManualScheduler()
			engine := timer.New(settings.TimerConfig(), timer.Config{
				Scheduler: scheduler,
				Logger:    GetLogger(),
			})
			defer engine.Destroy()

			return simulate(engine, scheduler, steps, cmd.OutOrStdout(), flags.Output == OutputJSON)
		},
	})
}

func parseScript(script string) ([]step, error) {
	var steps []step
	for _, raw := range strings.Split(script, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}

		name, arg, hasArg := strings.Cut(token, ":")
		s := step{name: name, count: -1}
		switch name {
		case "start", "pause", "resume", "stop", "reset", "skip":
			if hasArg {
				return nil, fmt.Errorf("%w: %q takes no argument", ErrInvalidScript, token)
			}
		case "tick", "break":
			if !hasArg {
				if name == "tick" {
					s.count = 1
				}
				break
			}
			count, err := strconv.Atoi(arg)
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: %q needs a non-negative integer", ErrInvalidScript, token)
			}
			s.count = count
		default:
			return nil, fmt.Errorf("%w: unknown token %q", ErrInvalidScript, token)
		}
		steps = append(steps, s)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty script", ErrInvalidScript)
	}
	return steps, nil
}

// simulate runs steps and prints phase changes (text) or every event (JSON lines).
func simulate(engine *timer.Engine, scheduler *timer.ManualScheduler, steps []step, out io.Writer, asJSON bool) error {
	elapsed := 0
	var writeErr error
	encoder := json.NewEncoder(out)

	unsubscribe := engine.SubscribeEvents(func(event timer.Event) {
		if writeErr != nil {
			return
		}
		if asJSON {
			writeErr = encoder.Encode(event)
			return
		}
		if event.Type == timer.EventProgress {
			return
		}
		_, writeErr = fmt.Fprintln(out, describe(elapsed, event))
	})
	defer unsubscribe()

	for _, s := range steps {
		switch s.name {
		case "start":
			engine.Start()
		case "pause":
			engine.Pause()
		case "resume":
			engine.Resume()
		case "stop":
			engine.Stop()
		case "reset":
			engine.Reset()
		case "skip":
			engine.SkipBreak()
		case "break":
			if s.count < 0 {
				engine.TakeBreak()
			} else {
				engine.TakeBreakFor(s.count)
			}
		case "tick":
			for range s.count {
				elapsed++
				scheduler.Advance(1)
			}
		}
		if writeErr != nil {
			return writeErr
		}
	}
	return writeErr
}

func describe(elapsed int, event timer.Event) string {
	state := event.State
	var change string
	switch {
	case event.Type == timer.EventSnapshot:
		change = string(state.Phase)
	case event.PhaseChanged():
		change = fmt.Sprintf("%s -> %s", event.Previous.Phase, state.Phase)
	default:
		change = string(state.Phase)
	}
	if state.Paused {
		change += " (paused)"
	}
	return fmt.Sprintf("t=%-5d %-11s %-22s remaining=%s deficit=%s done=%d",
		elapsed, event.Trigger, change, state.Clock(), timer.FormatSeconds(state.BreakDeficit), state.CompletedWorkSessions)
}
