// ringbuf/section_host.go

//go:build !(atmega || esp || nrf || sam || sifive || stm32 || k210 || nxp || rp2040 || rp2350)

package ringbuf

import "golang.org/x/sys/cpu"

// localSection is the default section of a Buffer on hosted targets.
type localSection = Mutex

// pad keeps the counter word, written by both sides, off the cache line
// holding the read-mostly geometry fields.
type pad = cpu.CacheLinePad
