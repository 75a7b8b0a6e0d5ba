package model

// Method identifies the inspection technique an entry's hours were logged under.
type Method string

const (
	MethodET    Method = "ET"
	MethodRFT   Method = "RFT"
	MethodMT    Method = "MT"
	MethodPT    Method = "PT"
	MethodRT    Method = "RT"
	MethodUTThk Method = "UT_THK"
	MethodUTSW  Method = "UTSW"
	MethodPMI   Method = "PMI"
	MethodLSI   Method = "LSI"
)

// Methods lists every method in display order. Totals are keyed on this
// set so consumers always see a stable column set.
var Methods = []Method{
	MethodET,
	MethodRFT,
	MethodMT,
	MethodPT,
	MethodRT,
	MethodUTThk,
	MethodUTSW,
	MethodPMI,
	MethodLSI,
}

// Valid reports whether m is one of the known methods.
func (m Method) Valid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// Display returns the label used on printed reports.
func (m Method) Display() string {
	if m == MethodUTThk {
		return "UT Thk."
	}
	return string(m)
}
