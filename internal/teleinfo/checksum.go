package teleinfo

// Checksum computes the historical-mode checksum for a label/value pair:
// the sum of every byte of the label, the separating tab and the value,
// truncated to 6 bits and offset into the printable ASCII range.
func Checksum(label, value string) byte {
	sum := int(ht)
	for i := 0; i < len(label); i++ {
		sum += int(label[i])
	}
	for i := 0; i < len(value); i++ {
		sum += int(value[i])
	}
	return byte(sum&0x3F) + 0x20
}
