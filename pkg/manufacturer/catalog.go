package manufacturer

import "github.com/coolbeans/mpnclass/pkg/ruleset"

func embedded(id string) func() (ruleset.RuleSet, error) {
	return func() (ruleset.RuleSet, error) {
		return ruleset.New(id)
	}
}

// Catalog returns the bundled manufacturers in priority order. Each call
// returns a fresh slice.
func Catalog() []Entry {
	return []Entry{
		{
			ID:         "ams",
			Name:       "ams OSRAM",
			Priority:   `(AS7\d{3}|AS5\d{3}|TSL\d{4}|TMD\d{4}|TCS\d{4}|ENS\d{3}).*`,
			Indicators: []string{"AMS", "OSRAM"},
			New:        embedded("ams"),
		},
		{
			ID:         "gigadevice",
			Name:       "GigaDevice",
			Priority:   `(GD25|GD32|GD5F).*`,
			Indicators: []string{"GD", "GIGADEVICE"},
			New:        embedded("gigadevice"),
		},
		{
			ID:         "st",
			Name:       "STMicroelectronics",
			Priority:   `(STM32|STM8|L78M?\d{2}|L79M?\d{2}|LD1117|LD39\d|LIS\d|LSM\d|LPS\d|HTS\d|TSV\d|STP\d|STD\d|STF\d).*`,
			Indicators: []string{"ST", "STM", "STMICRO"},
			New:        embedded("st"),
		},
		{
			ID:         "microchip",
			Name:       "Microchip Technology",
			Priority:   `(ATMEGA|ATTINY|ATSAM|AT24C|AT25|PIC\d|DSPIC|AVR\d|MCP\d|24[A-Z]{1,2}\d|25[A-Z]{2}\d|93[A-Z]{2}\d|SST\d).*`,
			Indicators: []string{"MCHP", "MICROCHIP", "ATMEL"},
			New:        embedded("microchip"),
		},
		{
			ID:         "nxp",
			Name:       "NXP Semiconductors",
			Priority:   `(LPC\d|MKL?\d{2}|MIMXRT|S32K|TJA\d|PCA\d|PCF\d|PTN\d).*`,
			Indicators: []string{"NXP"},
			New:        embedded("nxp"),
		},
		{
			ID:         "espressif",
			Name:       "Espressif Systems",
			Priority:   `(ESP32|ESP8266|ESP8285|ESP-).*`,
			Indicators: []string{"ESPRESSIF"},
			New:        embedded("espressif"),
		},
		{
			ID:         "nordic",
			Name:       "Nordic Semiconductor",
			Priority:   `NRF\d.*`,
			Indicators: []string{"NORDIC"},
			New:        embedded("nordic"),
		},
		{
			ID:         "bosch",
			Name:       "Bosch Sensortec",
			Priority:   `(BM[EPIAGMX]\d{3}|BNO\d{3}|BHI\d{3}).*`,
			Indicators: []string{"BOSCH"},
			New:        embedded("bosch"),
		},
		{
			ID:         "winbond",
			Name:       "Winbond Electronics",
			Priority:   `(W25[A-Z]|W29[A-Z]|W9\d{3}).*`,
			Indicators: []string{"WINBOND"},
			New:        embedded("winbond"),
		},
		{
			ID:         "ti",
			Name:       "Texas Instruments",
			Priority:   `(LM\d|TL0\d|TLV[29]\d|TPS\d|OPA\d|MSP430|TMP\d|SN74|SN65|CD4\d{3}|INA\d|UCC\d|DRV\d|ADS\d|BQ\d|NE555|UA78|CC(13|25|26|32|33)\d{2}|TM4C|HDC\d|TCAN\d|TUSB\d).*`,
			Indicators: []string{"TI", "TEXAS"},
			New:        embedded("ti"),
		},
		{
			ID:         "analogdevices",
			Name:       "Analog Devices",
			Priority:   `(AD\d|ADA\d|ADP\d|ADM\d|ADXL|ADT\d|ADUM|LTC?\d|MAX\d|DS\d{2}|OP\d{2}).*`,
			Indicators: []string{"ADI", "MAXIM", "LINEAR"},
			New:        embedded("analogdevices"),
		},
		{
			ID:         "infineon",
			Name:       "Infineon Technologies",
			Priority:   `(IRF|IRL|IRG|IPP|IPB|IPD|IKW|IGW|BSC|BSZ|BSS|XMC|TLE|TLI|BTS|TLV493|ICE\d|TC[23]\d{2}|DPS3).*`,
			Indicators: []string{"IFX", "INFINEON", "IR"},
			New:        embedded("infineon"),
		},
		{
			ID:         "murata",
			Name:       "Murata Manufacturing",
			Priority:   `(GRM|GCM|GJM|GRT|KCM|LQH|LQW|LQM|BLM|DFE|NCP1[58][A-Z]|NCU1[58]|XRCGB|CST[A-Z]{2}|LBAA|LBEE).*`,
			Indicators: []string{"MURATA"},
			New:        embedded("murata"),
		},
		{
			ID:         "nexperia",
			Name:       "Nexperia",
			Priority:   `(BC\d{3}|BCX|PBSS|PMBT|PDTC|BAS\d|BAT\d|BZX\d{2}-|PMEG|PESD|PZU|PMV|PSMN|2N7002|74(HC|HCT|LVC|AHC|AHCT|LV|ABT)\d).*`,
			Indicators: []string{"NEXPERIA", "NXP"},
			New:        embedded("nexperia"),
		},
		{
			ID:         "onsemi",
			Name:       "onsemi",
			Priority:   `(1N\d|2N\d|MBR|MMBT|MMSZ|MMBD|BAV\d|MUR\d|NCP\d|NCV\d|NTD|NTR|NVD|FDN|FQP|FDS|NDS|MC7[89]|MC74|MJE|TIP\d).*`,
			Indicators: []string{"ON", "ONSEMI", "FAIRCHILD"},
			New:        embedded("onsemi"),
		},
		{
			ID:         "vishay",
			Name:       "Vishay",
			Priority:   `(1N\d|SI\d{4}[A-Z]{2}|SIR\d|SUD\d|SQ[A-Z]?\d|CRCW|TNPW|RN55|CMF55|WSL\d|BZX[58]5|SS\d{2}|S[1-3][A-M]|GF1|BYV|VS-|TZM|TSOP\d|VEML|VCNL|NTCLE|TLH[A-Z]|VLM[A-Z]).*`,
			Indicators: []string{"VISHAY", "VSH"},
			New:        embedded("vishay"),
		},
		{
			ID:         "diodes",
			Name:       "Diodes Incorporated",
			Priority:   `(1N58\d|1N4148W|B\d{3,4}[A-C]|SBR\d|DFLS|SDM\d|DMG|DMN|DMP|DMT|ZXM|AP\d{4}|AZ1117|PAM\d|AL\d{4}).*`,
			Indicators: []string{"DIODES", "DIO"},
			New:        embedded("diodes"),
		},
		{
			ID:         "rohm",
			Name:       "ROHM Semiconductor",
			Priority:   `(SML|SLR|SLI|MCR\d{2}|ESR\d{2}|PMR\d{2}|LTR\d{2}|BD\d{4}|BD\d[A-Z]\d{3}|BU\d{2}[A-Z]|RB\d{3}|RBR|RFN|KDZ|UDZ|RQ\d|RSQ|RTR\d).*`,
			Indicators: []string{"ROHM"},
			New:        embedded("rohm"),
		},
		{
			ID:         "allegro",
			Name:       "Allegro MicroSystems",
			Priority:   `(A[1345]\d{3}|A8\d{3}|ACS\d|ATS\d|APS\d).*`,
			Indicators: []string{"ALLEGRO"},
			New:        embedded("allegro"),
		},
		{
			ID:         "kemet",
			Name:       "KEMET",
			Priority:   `(C(0201|0402|0603|0805|1206|1210|1812)C|T4\d{2}[A-Z]|T5\d{2}[A-Z]).*`,
			Indicators: []string{"KEMET"},
			New:        embedded("kemet"),
		},
		{
			ID:         "yageo",
			Name:       "YAGEO",
			Priority:   `(RC|RT|AC|RL|CC)(0201|0402|0603|0805|1206|1210|1812|2010|2512).*`,
			Indicators: []string{"YAGEO"},
			New:        embedded("yageo"),
		},
	}
}
