package serialtone

const (
	sof0       = 0xAA
	sof1       = 0x55
	cmdSetTone = 0x21
)

// Frame is one tone command for the microcontroller: the full (frequency,
// duty) state, not a delta, so a dropped frame only delays the next
// change instead of corrupting it.
type Frame struct {
	Freq uint16
	Duty uint16
	Seq  byte
}

// Encode builds the on-wire representation:
//
//	[SOF0][SOF1][LEN][CMD][freqHi][freqLo][dutyHi][dutyLo][Seq][CKS]
//
// LEN counts the CMD byte plus the payload. CKS is the XOR of LEN, CMD
// and every payload byte.
func (f Frame) Encode() []byte {
	payload := []byte{
		byte(f.Freq >> 8), byte(f.Freq),
		byte(f.Duty >> 8), byte(f.Duty),
		f.Seq,
	}

	length := byte(len(payload) + 1)
	cks := length ^ cmdSetTone
	for _, b := range payload {
		cks ^= b
	}

	out := []byte{sof0, sof1, length, cmdSetTone}
	out = append(out, payload...)
	out = append(out, cks)
	return out
}
