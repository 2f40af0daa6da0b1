package manufacturer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coolbeans/mpnclass/pkg/category"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		id   ID
		mpn  string
		want category.Category
	}{
		{"ams", "AS7262-BLGT", category.SensorSpectralAMS},
		{"ams", "AS7262-B", category.Sensor},
		{"st", "STM32F103C8T6", category.MicrocontrollerST},
		{"st", "L7805CV", category.VoltageRegulatorST},
		{"gigadevice", "GD25Q128CSIG", category.MemoryGigaDevice},
		{"gigadevice", "GD25Q99CSIG", ""},
		{"gigadevice", "GD5F1GQ4UBYIG", category.MemoryGigaDevice},
		{"st", "GD25Q128CSIG", ""},
		{Unknown, "LM358", ""},
		{"nope", "LM358", ""},
	}

	d := Default()
	for _, tt := range tests {
		t.Run(string(tt.id)+"/"+tt.mpn, func(t *testing.T) {
			assert.Equal(t, tt.want, d.DetectCategory(tt.id, tt.mpn))
		})
	}
}

func TestIdentify(t *testing.T) {
	d := Default()

	got := d.Identify(" gd25q128csig ")
	assert.Equal(t, Identification{
		MPN:          " gd25q128csig ",
		Normalized:   "GD25Q128CSIG",
		Manufacturer: "gigadevice",
		Name:         "GigaDevice",
		Tier:         TierMedium,
		Category:     category.MemoryGigaDevice,
		BaseCategory: category.Memory,
		Series:       "GD25Q",
		Package:      "SOP8",
	}, got)

	got = d.Identify("STM32F103C8T6")
	assert.Equal(t, ID("st"), got.Manufacturer)
	assert.Equal(t, TierHigh, got.Tier)
	assert.Equal(t, category.Microcontroller, got.BaseCategory)
	assert.Equal(t, "STM32F1", got.Series)
	assert.Equal(t, "LQFP48", got.Package)

	got = d.Identify("AS7262-BLGT")
	assert.Equal(t, "BGA", got.Package)
	assert.Equal(t, "AS72", got.Series)

	got = d.Identify("QQQ999")
	assert.Equal(t, Identification{
		MPN:          "QQQ999",
		Normalized:   "QQQ999",
		Manufacturer: Unknown,
		Name:         "Unknown",
	}, got)
}
