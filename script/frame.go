// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package script

import "github.com/dop251/goja"

// GameFrame is the default FrameContext: it looks up the script-defined
// update(deltaTime) and render() globals and calls them in order, exactly
// as §4.1 describes. Either global is optional; a script that defines only
// one of them is legal.
type GameFrame struct{}

// RunFrame invokes update(deltaTime) then render(), reporting each phase's
// exception through report independently: §4.1 (iii) requires that an
// exception in one phase "does not prevent the other phase from running",
// so render always runs even if update just threw.
func (GameFrame) RunFrame(vm *goja.Runtime, deltaTime float64, report func(phase string, err error)) {
	if update, ok := goja.AssertFunction(vm.Get("update")); ok {
		if _, err := update(goja.Undefined(), vm.ToValue(deltaTime)); err != nil {
			report("update", err)
		}
	}
	if render, ok := goja.AssertFunction(vm.Get("render")); ok {
		if _, err := render(goja.Undefined()); err != nil {
			report("render", err)
		}
	}
}
