package ruleset

import (
	"regexp"
	"strconv"
)

// Cortex-M ordering codes share one layout across ST and its second sources:
// <prefix><family><core><line><pins><flash><package><temp>, e.g. STM32F103C8T6.
var mcuOrderingCode = regexp.MustCompile(`^(STM32|GD32)([A-Z]{1,2})(\d)(\d{1,2})([A-Z])([0-9A-Z])([A-Z])(\d)?`)

var stm8OrderingCode = regexp.MustCompile(`^STM8([A-Z]{1,2})(\d{3})([A-Z])(\d)([A-Z])(\d)?`)

var mcuPinCount = map[byte]int{
	'D': 14, 'Y': 18, 'F': 20, 'E': 25, 'G': 28, 'K': 32, 'T': 36, 'S': 44,
	'C': 48, 'U': 63, 'R': 64, 'J': 72, 'M': 81, 'O': 90, 'V': 100,
	'Q': 132, 'Z': 144, 'A': 169, 'I': 176, 'B': 208, 'N': 216,
}

var mcuPackage = map[byte]string{
	'T': "LQFP",
	'H': "TFBGA",
	'U': "UFQFPN",
	'Y': "WLCSP",
	'P': "TSSOP",
	'I': "UFBGA",
	'K': "UFBGA",
	'V': "VFQFPN",
	'M': "SO",
	'B': "SDIP",
}

type mcuCode struct {
	prefix string
	family string
	core   string
	pins   int
	pkg    string
}

func decodeMCU(s string) (mcuCode, bool) {
	m := mcuOrderingCode.FindStringSubmatch(s)
	if m == nil {
		return mcuCode{}, false
	}
	pins, ok := mcuPinCount[m[5][0]]
	if !ok {
		return mcuCode{}, false
	}
	return mcuCode{
		prefix: m[1],
		family: m[2],
		core:   m[3],
		pins:   pins,
		pkg:    mcuPackage[m[7][0]],
	}, true
}

func (c mcuCode) series() string {
	return c.prefix + c.family + c.core
}

func (c mcuCode) packageCode() string {
	if c.pkg == "" {
		return ""
	}
	return c.pkg + strconv.Itoa(c.pins)
}

func decodeSTM8(s string) (mcuCode, bool) {
	m := stm8OrderingCode.FindStringSubmatch(s)
	if m == nil {
		return mcuCode{}, false
	}
	pins, ok := mcuPinCount[m[3][0]]
	if !ok {
		return mcuCode{}, false
	}
	return mcuCode{
		prefix: "STM8",
		family: m[1],
		pins:   pins,
		pkg:    mcuPackage[m[5][0]],
	}, true
}
