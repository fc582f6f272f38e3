package layout

import (
	"fmt"
	"runtime"
)

// InternalBug is raised for the defects §7 classifies as "internal
// bug": conditions that indicate a problem elsewhere in the compiler,
// not a recoverable layout query. The oracle panics with this type
// rather than returning an error, since there is no sensible value a
// caller could receive and continue with. Where carries a coarse
// file:line for the panic site, mirroring mrustc's BUG(sp, ...) taking
// a source location alongside its message.
type InternalBug struct {
	Msg   string
	Where string
}

func (e *InternalBug) Error() string {
	if e.Where == "" {
		return "layout: internal bug: " + e.Msg
	}
	return fmt.Sprintf("layout: internal bug at %s: %s", e.Where, e.Msg)
}

func bug(msg string) {
	where := ""
	if _, file, line, ok := runtime.Caller(1); ok {
		where = fmt.Sprintf("%s:%d", file, line)
	}
	panic(&InternalBug{Msg: msg, Where: where})
}
