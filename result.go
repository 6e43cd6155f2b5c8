package qrdecode

// Result is one decoded QR symbol.
type Result struct {
	// Bytes is the raw payload, the concatenation of every data segment.
	Bytes []byte `json:"bytes" yaml:"bytes"`
	// Text is Bytes interpreted through the ECI designator or a guessed charset.
	Text string `json:"text" yaml:"text"`

	Version   int    `json:"version" yaml:"version"`
	Dimension int    `json:"dimension" yaml:"dimension"`
	ECLevel   string `json:"ecLevel" yaml:"ecLevel"`
	Mask      int    `json:"mask" yaml:"mask"`
	// ECI is the last ECI designator seen in the bitstream, or -1.
	ECI int `json:"eci" yaml:"eci"`
	// ErrorsCorrected is the total number of codewords repaired across all blocks.
	ErrorsCorrected int `json:"errorsCorrected" yaml:"errorsCorrected"`

	// Finders holds the top-left, top-right and bottom-left finder centres.
	Finders [3]Point `json:"finders" yaml:"finders"`
	// Alignment is the bottom-right alignment centre when one was used.
	Alignment *Point `json:"alignment,omitempty" yaml:"alignment,omitempty"`
}
