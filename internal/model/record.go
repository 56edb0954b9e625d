// Package model defines shared data structures for TeleinfoBridge.
// It includes the decoded meter record and the root configuration.
package model

// TeleinfoRecord is one fully assembled historical-mode frame. Every field
// is mandatory: the decoder only emits a record once all ten labels have
// been observed within the same frame.
type TeleinfoRecord struct {
	Adco     string `json:"adco"`     // meter address
	Optarif  string `json:"optarif"`  // tariff option
	Isousc   string `json:"isousc"`   // subscribed current, A
	Base     string `json:"base"`     // base index, Wh
	Ptec     string `json:"ptec"`     // current tariff period
	Iinst    string `json:"iinst"`    // instantaneous current, A
	Imax     string `json:"imax"`     // peak current, A
	Papp     string `json:"papp"`     // apparent power, VA
	Hhphc    string `json:"hhphc"`    // peak/off-peak schedule
	Motdetat string `json:"motdetat"` // meter status word
}
