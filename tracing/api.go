// Package tracing turns the hook invocations of components into task records.
package tracing

import (
	"log"

	"github.com/sarchlab/sumpaxi/sim/hooking"
	"github.com/sarchlab/sumpaxi/sim/modeling"
)

// NamedHookable represent something both have a name and can be hooked.
type NamedHookable interface {
	modeling.Named
	hooking.Hookable
	InvokeHook(hooking.HookCtx)
}

// A list of hook poses for the hooks to apply to.
var (
	HookPosTaskStart = &hooking.HookPos{Name: "HookPosTaskStart"}
	HookPosTaskStep  = &hooking.HookPos{Name: "HookPosTaskStep"}
	HookPosTaskEnd   = &hooking.HookPos{Name: "HookPosTaskEnd"}
)

// StartTask notifies the hooks that hook to the domain about the start of a
// task. The task location is the name of the domain.
func StartTask(
	id string,
	parentID string,
	domain NamedHookable,
	kind string,
	what string,
	detail any,
) {
	if domain.NumHooks() == 0 {
		return
	}

	requiredFieldsMustBeSet(id, domain, kind, what)

	task := Task{
		ID:       id,
		ParentID: parentID,
		Kind:     kind,
		What:     what,
		Location: domain.Name(),
		Detail:   detail,
	}
	domain.InvokeHook(hooking.HookCtx{
		Domain: domain,
		Item:   task,
		Pos:    HookPosTaskStart,
	})
}

func requiredFieldsMustBeSet(
	id string,
	domain NamedHookable,
	kind string,
	what string,
) {
	switch {
	case id == "":
		log.Panic("task id must not be empty")
	case kind == "":
		log.Panic("task kind must not be empty")
	case what == "":
		log.Panic("task what must not be empty")
	case domain.Name() == "":
		log.Panic("domain must have a name")
	}
}

// AddTaskStep marks that a milestone has been reached when processing a task.
func AddTaskStep(
	id string,
	domain NamedHookable,
	what string,
) {
	if domain.NumHooks() == 0 {
		return
	}

	task := Task{
		ID:    id,
		Steps: []TaskStep{{What: what}},
	}
	domain.InvokeHook(hooking.HookCtx{
		Domain: domain,
		Item:   task,
		Pos:    HookPosTaskStep,
	})
}

// EndTask notifies the hooks about the end of a task and how it ended.
func EndTask(
	id string,
	domain NamedHookable,
	outcome string,
) {
	if domain.NumHooks() == 0 {
		return
	}

	task := Task{
		ID:      id,
		Outcome: outcome,
	}
	domain.InvokeHook(hooking.HookCtx{
		Domain: domain,
		Item:   task,
		Pos:    HookPosTaskEnd,
	})
}
