// Package category defines the closed set of electronic component categories
// and their base/specialization hierarchy.
package category

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned by Parse for tags outside the closed set.
var ErrUnknownCategory = errors.New("unknown category")

// Category is a component-type tag. Base categories are generic kinds of
// parts; specializations narrow a base to one manufacturer's product line.
type Category string

// Base categories.
const (
	Resistor         Category = "RESISTOR"
	Capacitor        Category = "CAPACITOR"
	Inductor         Category = "INDUCTOR"
	Diode            Category = "DIODE"
	Transistor       Category = "TRANSISTOR"
	MOSFET           Category = "MOSFET"
	IGBT             Category = "IGBT"
	LED              Category = "LED"
	IC               Category = "IC"
	Microcontroller  Category = "MICROCONTROLLER"
	Memory           Category = "MEMORY"
	OpAmp            Category = "OPAMP"
	VoltageRegulator Category = "VOLTAGE_REGULATOR"
	Sensor           Category = "SENSOR"
	Crystal          Category = "CRYSTAL"
	Connector        Category = "CONNECTOR"
	RFModule         Category = "RF_MODULE"
	InterfaceIC      Category = "INTERFACE_IC"
	ADC              Category = "ADC"
	DAC              Category = "DAC"
	LogicIC          Category = "LOGIC_IC"
	Generic          Category = "GENERIC"
)

// Manufacturer specializations.
const (
	MicrocontrollerST        Category = "MICROCONTROLLER_ST"
	MicrocontrollerMicrochip Category = "MICROCONTROLLER_MICROCHIP"
	MicrocontrollerNXP       Category = "MICROCONTROLLER_NXP"
	MicrocontrollerTI        Category = "MICROCONTROLLER_TI"
	MicrocontrollerEspressif Category = "MICROCONTROLLER_ESPRESSIF"
	MicrocontrollerNordic    Category = "MICROCONTROLLER_NORDIC"
	MicrocontrollerGD        Category = "MICROCONTROLLER_GIGADEVICE"
	MemoryGigaDevice         Category = "MEMORY_GIGADEVICE"
	MemoryWinbond            Category = "MEMORY_WINBOND"
	MemoryMicrochip          Category = "MEMORY_MICROCHIP"
	SensorSpectralAMS        Category = "SENSOR_SPECTRAL_AMS"
	SensorHallAllegro        Category = "SENSOR_HALL_ALLEGRO"
	SensorBosch              Category = "SENSOR_BOSCH"
	SensorTemperatureTI      Category = "SENSOR_TEMPERATURE_TI"
	DiodeVishay              Category = "DIODE_VISHAY"
	DiodeOnsemi              Category = "DIODE_ONSEMI"
	DiodeNexperia            Category = "DIODE_NEXPERIA"
	DiodeDiodesInc           Category = "DIODE_DIODES_INC"
	MOSFETInfineon           Category = "MOSFET_INFINEON"
	MOSFETVishay             Category = "MOSFET_VISHAY"
	MOSFETOnsemi             Category = "MOSFET_ONSEMI"
	TransistorNexperia       Category = "TRANSISTOR_NEXPERIA"
	OpAmpTI                  Category = "OPAMP_TI"
	OpAmpADI                 Category = "OPAMP_ADI"
	VoltageRegulatorTI       Category = "VOLTAGE_REGULATOR_TI"
	VoltageRegulatorST       Category = "VOLTAGE_REGULATOR_ST"
	CapacitorMurata          Category = "CAPACITOR_MURATA"
	CapacitorKemet           Category = "CAPACITOR_KEMET"
	ResistorYageo            Category = "RESISTOR_YAGEO"
	ResistorVishay           Category = "RESISTOR_VISHAY"
	LEDRohm                  Category = "LED_ROHM"
)

// bases maps each specialization to the base it narrows. Categories absent
// from the map are bases.
var bases = map[Category]Category{
	MicrocontrollerST:        Microcontroller,
	MicrocontrollerMicrochip: Microcontroller,
	MicrocontrollerNXP:       Microcontroller,
	MicrocontrollerTI:        Microcontroller,
	MicrocontrollerEspressif: Microcontroller,
	MicrocontrollerNordic:    Microcontroller,
	MicrocontrollerGD:        Microcontroller,
	MemoryGigaDevice:         Memory,
	MemoryWinbond:            Memory,
	MemoryMicrochip:          Memory,
	SensorSpectralAMS:        Sensor,
	SensorHallAllegro:        Sensor,
	SensorBosch:              Sensor,
	SensorTemperatureTI:      Sensor,
	DiodeVishay:              Diode,
	DiodeOnsemi:              Diode,
	DiodeNexperia:            Diode,
	DiodeDiodesInc:           Diode,
	MOSFETInfineon:           MOSFET,
	MOSFETVishay:             MOSFET,
	MOSFETOnsemi:             MOSFET,
	TransistorNexperia:       Transistor,
	OpAmpTI:                  OpAmp,
	OpAmpADI:                 OpAmp,
	VoltageRegulatorTI:       VoltageRegulator,
	VoltageRegulatorST:       VoltageRegulator,
	CapacitorMurata:          Capacitor,
	CapacitorKemet:           Capacitor,
	ResistorYageo:            Resistor,
	ResistorVishay:           Resistor,
	LEDRohm:                  LED,
}

var all = []Category{
	Resistor, Capacitor, Inductor, Diode, Transistor, MOSFET, IGBT, LED, IC,
	Microcontroller, Memory, OpAmp, VoltageRegulator, Sensor, Crystal,
	Connector, RFModule, InterfaceIC, ADC, DAC, LogicIC, Generic,

	MicrocontrollerST, MicrocontrollerMicrochip, MicrocontrollerNXP,
	MicrocontrollerTI, MicrocontrollerEspressif, MicrocontrollerNordic,
	MicrocontrollerGD, MemoryGigaDevice, MemoryWinbond, MemoryMicrochip,
	SensorSpectralAMS, SensorHallAllegro, SensorBosch, SensorTemperatureTI,
	DiodeVishay, DiodeOnsemi, DiodeNexperia, DiodeDiodesInc, MOSFETInfineon,
	MOSFETVishay, MOSFETOnsemi, TransistorNexperia, OpAmpTI, OpAmpADI,
	VoltageRegulatorTI, VoltageRegulatorST, CapacitorMurata, CapacitorKemet,
	ResistorYageo, ResistorVishay, LEDRohm,
}

var known = func() map[Category]bool {
	m := make(map[Category]bool, len(all))
	for _, c := range all {
		m[c] = true
	}
	return m
}()

// All returns every category in declaration order, bases first.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Parse resolves a tag case-insensitively. Hyphens and spaces are accepted
// in place of underscores.
func Parse(s string) (Category, error) {
	tag := strings.ToUpper(strings.TrimSpace(s))
	tag = strings.NewReplacer("-", "_", " ", "_").Replace(tag)
	c := Category(tag)
	if !known[c] {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	return known[c]
}

// Base returns the base category c specializes. A base is its own base.
func (c Category) Base() Category {
	if b, ok := bases[c]; ok {
		return b
	}
	return c
}

// IsBase reports whether c is a base category.
func (c Category) IsBase() bool {
	_, specialized := bases[c]
	return !specialized
}

// Specializes reports whether c is base or a specialization of it.
func (c Category) Specializes(base Category) bool {
	return c.Base() == base
}

func (c Category) String() string {
	return string(c)
}
