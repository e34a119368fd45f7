package pso

import (
	"context"
	"log/slog"
)

type EventKind int

const (
	// Greeting is sent by Swarm.Greet.
	Greeting EventKind = iota
	// GlobalBestImproved is sent at the end of a tick in which the swarm's
	// best known position changed.  Value holds the new objective value.
	GlobalBestImproved
	// NumericOverflow is sent at most once per tick when a position or
	// velocity coordinate became NaN or infinite.  The swarm keeps running.
	NumericOverflow
	// RecordFailed is sent when the attached History could not record a
	// tick.  Msg holds the error text.
	RecordFailed
)

func (k EventKind) String() string {
	switch k {
	case Greeting:
		return "greeting"
	case GlobalBestImproved:
		return "global-best-improved"
	case NumericOverflow:
		return "numeric-overflow"
	case RecordFailed:
		return "record-failed"
	}
	return "unknown"
}

type Event struct {
	Kind  EventKind
	Tick  int
	Value float64
	Msg   string
}

// Notifier receives diagnostic events from a swarm.  Notify is called
// synchronously from the swarm's methods and must not call back into the
// swarm.
type Notifier interface {
	Notify(ev Event)
}

type NotifierFunc func(ev Event)

func (fn NotifierFunc) Notify(ev Event) { fn(ev) }

type logNotifier struct {
	log *slog.Logger
}

// LogNotifier writes events to log.  Overflows and recording failures are
// logged at warn level, everything else at debug.
func LogNotifier(log *slog.Logger) Notifier {
	return logNotifier{log: log}
}

func (n logNotifier) Notify(ev Event) {
	level := slog.LevelDebug
	if ev.Kind == NumericOverflow || ev.Kind == RecordFailed {
		level = slog.LevelWarn
	}
	n.log.Log(context.Background(), level, "swarm event",
		"kind", ev.Kind.String(),
		"tick", ev.Tick,
		"value", ev.Value,
		"msg", ev.Msg,
	)
}
