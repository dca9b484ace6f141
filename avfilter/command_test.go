package avfilter

import (
	"testing"

	"github.com/matryer/is"
)

func TestCommandQueueOrdersByTimeAscending(t *testing.T) {
	is := is.New(t)
	q := newCommandQueue()
	q.QueueCommand(2.0, "b", "", 0)
	q.QueueCommand(0.5, "a", "", 0)
	q.QueueCommand(1.0, "c", "", 0)

	due := q.due(1.5)
	is.Equal(len(due), 2)
	is.Equal(due[0].Command, "a")
	is.Equal(due[1].Command, "c")

	rest := q.due(10)
	is.Equal(len(rest), 1)
	is.Equal(rest[0].Command, "b")
}

func TestCommandQueueDueReturnsNilWhenNothingDue(t *testing.T) {
	is := is.New(t)
	q := newCommandQueue()
	q.QueueCommand(5.0, "later", "", 0)
	is.True(q.due(1.0) == nil)
}

func TestProcessCommandBuiltinPing(t *testing.T) {
	is := is.New(t)
	inst, err := Alloc(&FilterKind{Name: "pingable"}, "p")
	is.NoErr(err)

	result, err := ProcessCommand(inst, "ping", "", 0)
	is.NoErr(err)
	is.Equal(result, pongResult)
}

func TestProcessCommandDelegatesToKindHook(t *testing.T) {
	is := is.New(t)
	kind := &FilterKind{
		Name: "custom",
		ProcessCommand: func(inst *FilterInstance, cmd, arg string, flags int) (string, error) {
			return "handled:" + cmd + ":" + arg, nil
		},
	}
	inst, err := Alloc(kind, "c")
	is.NoErr(err)

	result, err := ProcessCommand(inst, "gain", "3", 0)
	is.NoErr(err)
	is.Equal(result, "handled:gain:3")
}

func TestProcessCommandUnsupportedWithoutHook(t *testing.T) {
	is := is.New(t)
	inst, err := Alloc(&FilterKind{Name: "nohook"}, "n")
	is.NoErr(err)

	_, err = ProcessCommand(inst, "gain", "3", 0)
	is.True(err != nil)
	is.True(IsOperationNotSupported(err))
}

func TestApplyDueCommandsDrainsQueue(t *testing.T) {
	is := is.New(t)
	applied := []string{}
	kind := &FilterKind{
		Name: "drainer",
		ProcessCommand: func(inst *FilterInstance, cmd, arg string, flags int) (string, error) {
			applied = append(applied, cmd)
			return "", nil
		},
	}
	inst, err := Alloc(kind, "d")
	is.NoErr(err)

	inst.QueueCommand(1.0, "first", "", 0)
	inst.QueueCommand(2.0, "second", "", 0)

	applyDueCommands(inst, 1.5)
	is.Equal(len(applied), 1)
	is.Equal(applied[0], "first")

	applyDueCommands(inst, 3.0)
	is.Equal(len(applied), 2)
	is.Equal(applied[1], "second")
}
