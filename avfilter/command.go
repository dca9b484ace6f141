package avfilter

// scheduledCommand is one entry in a filter instance's command queue, per
// spec §4.10: applied once the PTS of a frame flowing through reaches its
// scheduled time.
type scheduledCommand struct {
	Time    float64
	Command string
	Arg     string
	Flags   int
}

// commandQueue is a FIFO ordered by Time ascending; QueueCommand inserts
// in sorted position so Pop always returns the earliest-due entry.
type commandQueue struct {
	entries []scheduledCommand
}

func newCommandQueue() *commandQueue {
	return &commandQueue{}
}

// QueueCommand schedules cmd/arg to be applied once a frame with PTS at or
// after time flows through.
func (q *commandQueue) QueueCommand(time float64, cmd, arg string, flags int) {
	e := scheduledCommand{Time: time, Command: cmd, Arg: arg, Flags: flags}
	i := 0
	for ; i < len(q.entries); i++ {
		if q.entries[i].Time > time {
			break
		}
	}
	q.entries = append(q.entries, scheduledCommand{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = e
}

// due pops and returns every entry whose Time is <= t, in ascending order.
func (q *commandQueue) due(t float64) []scheduledCommand {
	i := 0
	for i < len(q.entries) && q.entries[i].Time <= t {
		i++
	}
	if i == 0 {
		return nil
	}
	out := q.entries[:i]
	q.entries = q.entries[i:]
	return out
}

// pongResult is the result string ProcessCommand returns for the built-in
// "ping" command, distinct enough from a filter-supplied answer to be
// recognizable in tests.
const pongResult = "pong"

// ProcessCommand applies a command to inst, handling the built-in "ping"
// itself and delegating anything else to the filter kind's ProcessCommand
// hook. See spec §4.10.
func ProcessCommand(inst *FilterInstance, cmd, arg string, flags int) (string, error) {
	if cmd == "ping" {
		return pongResult, nil
	}
	if inst.Kind.ProcessCommand == nil {
		return "", newOperationNotSupported("process_command "+cmd, nil)
	}
	return inst.Kind.ProcessCommand(inst, cmd, arg, flags)
}

// QueueCommand schedules a command on inst for later application as frames
// are delivered to it across its input links.
func (inst *FilterInstance) QueueCommand(time float64, cmd, arg string, flags int) {
	inst.commands.QueueCommand(time, cmd, arg, flags)
}

// applyDueCommands drains and applies every command on inst due at pts
// (expressed in seconds), logging and continuing past any handler failure
// per spec §7's partial-failure tolerance for command application.
func applyDueCommands(inst *FilterInstance, ptsSeconds float64) {
	for _, e := range inst.commands.due(ptsSeconds) {
		if _, err := ProcessCommand(inst, e.Command, e.Arg, e.Flags); err != nil {
			inst.logf("avfilter: %s: command %q failed: %v", inst.Name, e.Command, err)
		}
	}
}
