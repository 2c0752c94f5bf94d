// ringbuf/section_irq.go

//go:build atmega || esp || nrf || sam || sifive || stm32 || k210 || nxp || rp2040 || rp2350

package ringbuf

import "runtime/interrupt"

// Interrupts masks every interrupt for the duration of the section. Exit
// restores the mask captured by Enter, so sections nest and a section
// entered from an interrupt handler leaves interrupts masked on Exit.
type Interrupts struct{}

func (Interrupts) Enter() State { return State(interrupt.Disable()) }

func (Interrupts) Exit(s State) { interrupt.Restore(interrupt.State(s)) }

// localSection is the default section of a Buffer on bare-metal targets.
type localSection = Interrupts

// MCUs here have no data cache lines worth separating.
type pad struct{}
