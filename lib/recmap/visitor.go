package recmap

// --------------------------------------------------------------------------
// Visitor Commands
// --------------------------------------------------------------------------

type cmdOp uint8

const (
	cmdContinue cmdOp = iota
	cmdRemove
	cmdReplace
	cmdRestart
	cmdReturn
)

// Command tells the traversal loop what to do after a visit. Commands are
// built with the constructors below; the zero value behaves like
// Continue(nil).
type Command struct {
	op          cmdOp
	result      any
	replacement any
}

// Continue carries the accumulated result into the next visit.
func Continue(result any) Command {
	return Command{op: cmdContinue, result: result}
}

// RemoveCurrent deletes the currently visited pair in place and carries the
// accumulated result into the next visit. The traversal fails with ReadOnly
// if the map is sealed.
func RemoveCurrent(result any) Command {
	return Command{op: cmdRemove, result: result}
}

// ReplaceValue overwrites only the value slot of the currently visited pair
// with the (boxed) replacement and carries the accumulated result into the
// next visit. The traversal fails with ReadOnly if the map is sealed.
func ReplaceValue(newValue, result any) Command {
	return Command{op: cmdReplace, result: result, replacement: newValue}
}

// Restart signals that the visitor itself mutated the map through some other
// path. If the mutation compacted the store (the slot array identity
// changed), the scan restarts from the beginning of the new array; otherwise
// it simply continues. This heuristic cannot detect in-place content
// changes, which is a documented limitation.
func Restart(result any) Command {
	return Command{op: cmdRestart, result: result}
}

// ReturnNow aborts the traversal immediately; the carried value becomes the
// final result of ForEach.
func ReturnNow(value any) Command {
	return Command{op: cmdReturn, result: value}
}

// --------------------------------------------------------------------------
// Traversal Engine
// --------------------------------------------------------------------------

// Visitor is called once per live pair with the visited view, the unboxed
// key and value, the accumulated result of the previous visit and a flag
// marking the last visit. It returns a Command steering the traversal or an
// error that aborts the scan wrapped in VisitorFailed.
type Visitor func(m *Map, key, value, result any, isLast bool) (Command, error)

// ForEach performs a single synchronous full scan over the map's current
// slot array, threading the result value through every visit. The scan runs
// to completion on the caller's goroutine, there are no suspension points.
//
// As long as the visitor only mutates through RemoveCurrent, no pair is
// visited twice. Any other mutation pattern (Restart after external
// modification) gives best-effort semantics only: pairs may be revisited or
// skipped after a compaction, and isLast may fire on an earlier pair if
// removals shrank the map mid-scan.
func (m *Map) ForEach(initial any, visitor Visitor) (any, error) {
	data := m.data
	if data == nil || data.size == 0 {
		return initial, nil
	}

	result := initial
	size := data.size

restart:
	for {
		slots := data.slots
		visited := 0
		for i := 0; i < len(slots); i += 2 {
			key := slots[i]
			if key == nil {
				continue
			}
			visited++
			cmd, err := visitor(m, m.unboxKey(key), m.unboxValue(slots[i+1]), result, visited == size)
			if err != nil {
				return result, errVisitorFailed(err)
			}
			switch cmd.op {
			case cmdContinue:
				result = cmd.result
			case cmdRemove:
				if m.IsReadOnly() {
					return result, errReadOnly("forEach")
				}
				slots[i] = nil
				slots[i+1] = nil
				data.size--
				size--
				result = cmd.result
			case cmdReplace:
				if m.IsReadOnly() {
					return result, errReadOnly("forEach")
				}
				slots[i+1] = m.boxValue(Canonical(cmd.replacement))
				result = cmd.result
			case cmdRestart:
				result = cmd.result
				if len(slots) != len(data.slots) || &slots[0] != &data.slots[0] {
					// the pairs were re-indexed, scan the new array
					continue restart
				}
			case cmdReturn:
				return cmd.result, nil
			}
		}
		return result, nil
	}
}
