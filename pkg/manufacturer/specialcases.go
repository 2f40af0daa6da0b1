package manufacturer

import (
	"fmt"
	"strings"

	"github.com/coolbeans/mpnclass/pkg/mpn"
)

// Prefixes that belong to exactly one manufacturer.
var prefixRules = []struct {
	prefix string
	id     ID
}{
	{"STM32", "st"},
	{"STM8", "st"},
	{"ESP32", "espressif"},
	{"ESP8266", "espressif"},
	{"ESP8285", "espressif"},
	{"GD32", "gigadevice"},
	{"ATMEGA", "microchip"},
	{"ATTINY", "microchip"},
	{"ATSAM", "microchip"},
	{"DSPIC", "microchip"},
	{"AS72", "ams"},
	{"AS73", "ams"},
	{"NRF5", "nordic"},
	{"NRF91", "nordic"},
	{"MSP430", "ti"},
	{"LPC", "nxp"},
	{"MIMXRT", "nxp"},
	{"BME", "bosch"},
	{"BMP", "bosch"},
}

// JEDEC 1N numbers whose dominant source is known. Ranges are inclusive.
var jedec1NRules = []struct {
	lo, hi int
	id     ID
}{
	{914, 914, "vishay"},
	{4148, 4148, "vishay"},
	{4448, 4448, "vishay"},
	{4001, 4007, "onsemi"},
	{5817, 5819, "diodes"},
	{4728, 4764, "vishay"},
	{5221, 5281, "onsemi"},
}

type hit struct {
	id     ID
	reason string
}

// specialCases returns the High tier hits for a normalized MPN, prefix rules
// first, in table order.
func (d *Directory) specialCases(p string) []hit {
	var hits []hit
	for _, r := range prefixRules {
		if strings.HasPrefix(p, r.prefix) && d.byID[r.id] != nil {
			hits = append(hits, hit{r.id, fmt.Sprintf("prefix %q", r.prefix)})
		}
	}
	if n, _, ok := mpn.RegistrationNumber(p, "1N"); ok {
		for _, r := range jedec1NRules {
			if n < r.lo || n > r.hi || d.byID[r.id] == nil {
				continue
			}
			reason := fmt.Sprintf("1N%d", r.lo)
			if r.hi != r.lo {
				reason = fmt.Sprintf("1N%d-1N%d", r.lo, r.hi)
			}
			hits = append(hits, hit{r.id, "numeric range " + reason})
		}
	}
	return hits
}
