package mesh

import (
	"fmt"
	"strconv"
	"time"

	"github.com/DistributedClocks/GoVector/govec"
)

// Level is a log verbosity level, following the teacher's convention that
// each level includes everything below it.
type Level int

const (
	// LevelNone disables all logging.
	LevelNone Level = iota
	// LevelError logs only node drivers that stop with an error.
	LevelError
	// LevelInfo additionally logs node and aggregator lifecycle events.
	LevelInfo
	// LevelMsg additionally logs every exchange sub-step send/receive.
	LevelMsg
	// LevelDebug additionally logs each completed relaxation step and each
	// snapshot the aggregator receives.
	LevelDebug
)

// logger is the per-run logging facility. It funnels every call through a
// single buffered channel drained by one printer goroutine, exactly like
// the teacher's hivemind.LogChan / DumpLog pair, so that concurrent node
// goroutines never contend on stdout directly.
type logger struct {
	level  Level
	runID  string
	lines  chan string
	done   chan struct{}
	causal bool
	vlogs  []*govec.GoLog // one per node, indexed by linear node id; nil if causal logging is off
}

func newLogger(level Level, runID string, nrNodes int, causal bool) *logger {
	l := &logger{
		level: level,
		runID: runID,
		lines: make(chan string, 256),
		done:  make(chan struct{}),
	}
	if causal {
		l.causal = true
		l.vlogs = make([]*govec.GoLog, nrNodes)
		for i := range l.vlogs {
			process := fmt.Sprintf("meshrelax-%s-node%d", runID, i)
			l.vlogs[i] = govec.InitGoVector(process, process, govec.GetDefaultConfig())
		}
	}
	go l.drain()
	return l
}

func (l *logger) drain() {
	for line := range l.lines {
		fmt.Print(line)
	}
	close(l.done)
}

// close stops accepting new lines and waits for the printer goroutine to
// flush what is already queued.
func (l *logger) close() {
	close(l.lines)
	<-l.done
}

func (l *logger) log(level Level, nodeID int, format string, args ...interface{}) {
	if l.level < level {
		return
	}
	s := fmt.Sprintf("[%s/%d] ", l.runID, nodeID) + fmt.Sprintf(format, args...) + "\n"
	l.lines <- s
}

func (l *logger) errorf(nodeID int, format string, args ...interface{}) {
	l.log(LevelError, nodeID, format, args...)
}

func (l *logger) infof(nodeID int, format string, args ...interface{}) {
	l.log(LevelInfo, nodeID, format, args...)
}

func (l *logger) msgf(nodeID int, format string, args ...interface{}) {
	l.log(LevelMsg, nodeID, format, args...)
}

func (l *logger) debugf(nodeID int, format string, args ...interface{}) {
	l.log(LevelDebug, nodeID, format, args...)
}

// causalEvent records a local causal event for nodeID (an exchange
// sub-step or a parity update) when causal logging is enabled. It is a
// no-op otherwise, so it is cheap to call unconditionally from hot loops.
func (l *logger) causalEvent(nodeID int, event string) {
	if !l.causal {
		return
	}
	l.vlogs[nodeID].LogLocalEvent(event+" "+strconv.FormatInt(time.Now().UnixNano(), 10), govec.GetDefaultLogOptions())
}

func linearNodeID(q, ni, nj int) int {
	return (ni-1)*q + (nj - 1)
}
